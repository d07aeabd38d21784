package swan

import (
	"sort"

	"github.com/matzehuels/swanview/pkg/errors"
)

// Link is one hop of the connectivity graph: the object on the other
// end of a wire, plus the group adaptation carried by the endpoint the
// wire attaches there (nil when the endpoint has none).
type Link struct {
	Object     Object
	Adaptation *GroupAdaptation
}

// navigation is the consolidated connectivity index of one diagram.
// It flattens locals onto their enclosing object and records, per
// block LUID, the wires reading from and writing to it.
type navigation struct {
	// blocks maps every addressable LUID to the top-level object that
	// answers for it. A local's LUID maps to the object that nests it.
	blocks map[Luid]Object
	// bySource and byTarget index wires by the block LUIDs of their
	// source and target endpoints. Self and disconnected endpoints are
	// never registered.
	bySource map[Luid][]*Wire
	byTarget map[Luid][]*Wire
	// order gives each wire its declaration position, so query results
	// collected across several LUIDs come back in a stable order.
	order map[*Wire]int
}

func (d *Diagram) navigate() *navigation {
	if d.nav != nil {
		return d.nav
	}
	nav := &navigation{
		blocks:   make(map[Luid]Object),
		bySource: make(map[Luid][]*Wire),
		byTarget: make(map[Luid][]*Wire),
		order:    make(map[*Wire]int),
	}
	for i, obj := range d.Objects {
		w, ok := obj.(*Wire)
		if !ok {
			nav.addBlock(obj)
			continue
		}
		nav.order[w] = i
		if c := w.Source; c.Connected() && !c.Port.Self {
			nav.bySource[c.Port.Luid] = append(nav.bySource[c.Port.Luid], w)
		}
		for _, c := range w.Targets {
			if c.Connected() && !c.Port.Self {
				nav.byTarget[c.Port.Luid] = append(nav.byTarget[c.Port.Luid], w)
			}
		}
	}
	d.nav = nav
	return nav
}

// addBlock registers obj under its own LUID and under the LUIDs of all
// its locals, recursively. Wires to a local resolve to obj itself.
func (n *navigation) addBlock(obj Object) {
	if luid := obj.Luid(); luid != "" {
		n.blocks[luid] = obj
	}
	var flatten func(owner Object, locals []Object)
	flatten = func(owner Object, locals []Object) {
		for _, l := range locals {
			if luid := l.Luid(); luid != "" {
				n.blocks[luid] = owner
			}
			flatten(owner, l.Locals())
		}
	}
	flatten(obj, obj.Locals())
}

// queryLuids returns the LUIDs under which obj collects wires: its
// locals' LUIDs when it has locals, otherwise its own.
func queryLuids(obj Object) []Luid {
	locals := obj.Locals()
	if len(locals) == 0 {
		if obj.Luid() == "" {
			return nil
		}
		return []Luid{obj.Luid()}
	}
	var luids []Luid
	var walk func([]Object)
	walk = func(objs []Object) {
		for _, l := range objs {
			if l.Luid() != "" {
				luids = append(luids, l.Luid())
			}
			walk(l.Locals())
		}
	}
	walk(locals)
	return luids
}

func checkWireable(obj Object, op string) error {
	switch obj.(type) {
	case *Wire, *SectionBlock:
		return errors.New(errors.ErrCodeStructuralMisuse,
			"%s: %T is not a wireable object", op, obj)
	}
	return nil
}

// Sources returns the objects feeding obj, one [Link] per wire whose
// target list reaches obj or one of its locals. Results follow wire
// declaration order; wires whose source endpoint is self or
// disconnected contribute nothing.
//
// Asking about a [Wire] or [SectionBlock] is a caller bug and fails
// with STRUCTURAL_MISUSE.
func (d *Diagram) Sources(obj Object) ([]Link, error) {
	if err := checkWireable(obj, "sources"); err != nil {
		return nil, err
	}
	nav := d.navigate()

	seen := make(map[*Wire]bool)
	var wires []*Wire
	for _, luid := range queryLuids(obj) {
		for _, w := range nav.byTarget[luid] {
			if !seen[w] {
				seen[w] = true
				wires = append(wires, w)
			}
		}
	}
	sort.Slice(wires, func(i, j int) bool {
		return nav.order[wires[i]] < nav.order[wires[j]]
	})

	var links []Link
	for _, w := range wires {
		c := w.Source
		if !c.Connected() || c.Port.Self {
			continue
		}
		if feeder, ok := nav.blocks[c.Port.Luid]; ok {
			links = append(links, Link{Object: feeder, Adaptation: c.Adaptation})
		}
	}
	return links, nil
}

// Targets returns the objects fed by obj, one [Link] per connected
// non-self target endpoint of each wire reading from obj, in wire then
// endpoint declaration order.
//
// Unlike [Diagram.Sources], the lookup uses obj's own LUID only:
// wires read from a grouping object through the object itself, not
// through its locals.
//
// Asking about a [Wire] or [SectionBlock] fails with STRUCTURAL_MISUSE.
func (d *Diagram) Targets(obj Object) ([]Link, error) {
	if err := checkWireable(obj, "targets"); err != nil {
		return nil, err
	}
	nav := d.navigate()

	var links []Link
	for _, w := range nav.bySource[obj.Luid()] {
		for _, c := range w.Targets {
			if !c.Connected() || c.Port.Self {
				continue
			}
			if fed, ok := nav.blocks[c.Port.Luid]; ok {
				links = append(links, Link{Object: fed, Adaptation: c.Adaptation})
			}
		}
	}
	return links, nil
}
