package swan

import (
	"github.com/matzehuels/swanview/pkg/errors"
)

// Item is the base interface implemented by every Swan construct.
// The owner link points to the enclosing construct and is set once,
// right after children are built. It is a navigation aid, not an
// ownership relation: parents hold their children in struct fields.
type Item interface {
	// Owner returns the enclosing construct, or nil for a top-level
	// module or the model container itself.
	Owner() Item
	// SetOwner installs the owner back-link. Called once during tree
	// construction; re-parenting an installed tree is not supported.
	SetOwner(Item)
}

// Base provides the owner back-link for embedding in concrete nodes.
// The zero value is ready to use.
type Base struct {
	owner Item
}

// Owner returns the enclosing construct, or nil.
func (b *Base) Owner() Item { return b.owner }

// SetOwner installs the owner back-link.
func (b *Base) SetOwner(o Item) { b.owner = o }

// Adopt sets owner as the owner of every non-nil item in children.
// It is the construction-time helper used by every container node.
func Adopt[T Item](owner Item, children ...T) {
	for _, c := range children {
		if any(c) == nil {
			continue
		}
		c.SetOwner(owner)
	}
}

// Declaration is implemented by every named declaration a resolver can
// return: variables, types, constants, sensors, groups, operators and
// signatures.
type Declaration interface {
	Item
	// Ident returns the declared identifier.
	Ident() *Identifier
}

// FullPath computes the '::'-separated path of a declaration from its
// enclosing module, e.g. "Utils::Regulation". It climbs owner links up
// to the module; a detached declaration yields an ORPHAN_NODE error.
func FullPath(decl Declaration) (string, error) {
	mod, err := EnclosingModule(decl)
	if err != nil {
		return "", err
	}
	return mod.Name.String() + "::" + decl.Ident().Value, nil
}

// EnclosingModule climbs the owner chain from it and returns the module
// containing it. It returns an ORPHAN_NODE error when the chain ends
// before a module is reached.
func EnclosingModule(it Item) (*Module, error) {
	for cur := it; cur != nil; cur = cur.Owner() {
		if m, ok := cur.(*Module); ok {
			return m, nil
		}
	}
	return nil, errors.New(errors.ErrCodeOrphanNode, "item has no enclosing module")
}
