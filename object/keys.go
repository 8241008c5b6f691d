// keys.go — the closed set of indexer key kinds.
//
// Every key is one of the sealed kinds below; the resolver switches over
// the kind tag once per level rather than dispatching on open-ended value
// types. Constructors are the only way to obtain a Key.

package object

import "regexp"

// Key selects children at one level of an indexed path. The set of kinds is
// closed: Name, Index, All, Mask, Match, Keys (union) and KeyFunc.
type Key interface {
	isKey()
}

type nameKey string

type indexKey int

type allKey struct{}

type maskKey struct{ tree any }

type matchKey struct{ re *regexp.Regexp }

type unionKey []Key

type funcKey func(subtree any) ([]Key, error)

func (nameKey) isKey()  {}
func (indexKey) isKey() {}
func (allKey) isKey()   {}
func (maskKey) isKey()  {}
func (matchKey) isKey() {}
func (unionKey) isKey() {}
func (funcKey) isKey()  {}

// Name selects the child attribute with the given name at the current
// level. Only Name keys may form a method-call path.
func Name(s string) Key { return nameKey(s) }

// Index selects the child at the given flatten-order position.
func Index(i int) Key { return indexKey(i) }

// All selects every child at the current level.
var All Key = allKey{}

// Mask selects leaves by a same-shape boolean-leaf tree: a leaf is selected
// when its mask counterpart is entirely true. The mask's structure must
// match the addressed subtree exactly.
func Mask(tree any) Key { return maskKey{tree: tree} }

// Match selects the children whose attribute name matches re. Matching
// applies to the current level only, never to nested names.
func Match(re *regexp.Regexp) Key { return matchKey{re: re} }

// Keys unions the selections of several keys applied at the same level.
func Keys(ks ...Key) Key { return unionKey(ks) }

// KeyFunc defers key resolution to fn, which receives the current subtree
// and returns the keys to apply at this level (unioned).
func KeyFunc(fn func(subtree any) ([]Key, error)) Key { return funcKey(fn) }
