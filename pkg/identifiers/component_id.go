// Package identifiers provides validated, interned names for the components
// of a message-driven system.
//
// A ComponentID is a single pointer word wrapping an interned string. Values
// built from equal strings are == regardless of when they were built, so they
// can be used directly as map keys and in sorted collections.
package identifiers

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/sufield/identifiers/pkg/correctness"
	"github.com/sufield/identifiers/pkg/intern"
)

// ComponentID names an addressable component such as "RiskEngine".
// The zero value is not a valid identifier; see IsZero.
type ComponentID struct {
	h intern.Handle
}

// NewComponentIDChecked creates a ComponentID after running the shared
// correctness predicate. The returned error is a *correctness.ValidationError
// naming the field and the rejected value.
func NewComponentIDChecked(value string) (ComponentID, error) {
	if err := correctness.Check(value, "value"); err != nil {
		return ComponentID{}, err
	}
	return ComponentID{h: intern.Intern(value)}, nil
}

// NewComponentID creates a ComponentID from a value known to be valid.
// It panics if value fails the correctness predicate.
func NewComponentID(value string) ComponentID {
	id, err := NewComponentIDChecked(value)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", correctness.FAILED, err))
	}
	return id
}

// setInner replaces the wrapped handle. Callers validate value first and
// must not race it against reads of id.
func (id *ComponentID) setInner(value string) {
	id.h = intern.Intern(value)
}

// Inner returns the interned handle.
func (id ComponentID) Inner() intern.Handle {
	return id.h
}

// AsStr returns the canonical string.
func (id ComponentID) AsStr() string {
	return id.h.String()
}

// IsZero reports whether id was never constructed.
func (id ComponentID) IsZero() bool {
	return id.h.IsZero()
}

// Equal reports whether id and other name the same component.
func (id ComponentID) Equal(other ComponentID) bool {
	return id.h == other.h
}

// Compare orders identifiers lexicographically by their string content.
func (id ComponentID) Compare(other ComponentID) int {
	if id.h == other.h {
		return 0
	}
	return strings.Compare(id.AsStr(), other.AsStr())
}

// Less reports whether id sorts before other.
func (id ComponentID) Less(other ComponentID) bool {
	return id.Compare(other) < 0
}

// Hash returns a content hash that is stable across processes.
func (id ComponentID) Hash() uint64 {
	return xxhash.Sum64String(id.AsStr())
}

// String renders the identifier content unquoted.
func (id ComponentID) String() string {
	return id.AsStr()
}

// GoString renders the identifier quoted, as used by %#v.
func (id ComponentID) GoString() string {
	return strconv.Quote(id.AsStr())
}

// LogValue implements slog.LogValuer.
func (id ComponentID) LogValue() slog.Value {
	return slog.StringValue(id.AsStr())
}

// Sort sorts ids in ascending order.
func Sort(ids []ComponentID) {
	slices.SortFunc(ids, ComponentID.Compare)
}
