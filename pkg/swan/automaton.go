package swan

import (
	"fmt"
	"strings"
)

// StateMachine is an **automaton** equation defining flows by case over
// states.
type StateMachine struct {
	Base
	LHS    *EquationLHS // nil for an anonymous automaton
	Name   string       // optional $name tag
	States []*State
}

// NewStateMachine builds the automaton and adopts its states.
func NewStateMachine(lhs *EquationLHS, name string, states ...*State) *StateMachine {
	sm := &StateMachine{LHS: lhs, Name: name, States: states}
	if lhs != nil {
		lhs.SetOwner(sm)
	}
	Adopt(sm, states...)
	return sm
}

func (*StateMachine) equation() {}

func (sm *StateMachine) String() string {
	var b strings.Builder
	if sm.LHS != nil {
		fmt.Fprintf(&b, "%s : ", sm.LHS)
	}
	b.WriteString("automaton")
	if sm.Name != "" {
		fmt.Fprintf(&b, " $%s", sm.Name)
	}
	for _, st := range sm.States {
		b.WriteString("\n")
		b.WriteString(st.String())
	}
	b.WriteString(";")
	return b.String()
}

// State returns the state with the given name, or nil.
func (sm *StateMachine) State(name string) *State {
	for _, st := range sm.States {
		if st.ID.Value == name {
			return st
		}
	}
	return nil
}

// State is a state of an automaton, with its transitions and scope
// sections as body.
type State struct {
	Base
	ID       *Identifier
	Initial  bool
	Strong   []*Transition // unless transitions
	Weak     []*Transition // until transitions
	Sections []Section
}

// NewState builds the state and adopts its transitions and sections.
func NewState(id *Identifier, initial bool, sections ...Section) *State {
	st := &State{ID: id, Initial: initial, Sections: sections}
	Adopt(st, id)
	Adopt(st, sections...)
	return st
}

// AddTransition appends a transition, strong (unless) or weak (until).
func (st *State) AddTransition(t *Transition, strong bool) {
	t.SetOwner(st)
	if strong {
		st.Strong = append(st.Strong, t)
	} else {
		st.Weak = append(st.Weak, t)
	}
}

func (st *State) String() string {
	var b strings.Builder
	if st.Initial {
		b.WriteString("initial ")
	}
	fmt.Fprintf(&b, "state %s:", st.ID)
	writeTransitions(&b, "unless", st.Strong)
	for _, sec := range st.Sections {
		b.WriteString("\n")
		b.WriteString(sec.String())
	}
	writeTransitions(&b, "until", st.Weak)
	return b.String()
}

func writeTransitions(b *strings.Builder, keyword string, ts []*Transition) {
	if len(ts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s", keyword)
	for _, t := range ts {
		fmt.Fprintf(b, "\n%s", t)
	}
}

// Transition guards a state change: if the condition holds, control
// moves to the target state (restart or resume).
type Transition struct {
	Base
	Condition Expr
	Target    *Identifier
	Restart   bool
}

func (t *Transition) String() string {
	kind := "resume"
	if t.Restart {
		kind = "restart"
	}
	return fmt.Sprintf("if %s %s %s", t.Condition, kind, t.Target)
}
