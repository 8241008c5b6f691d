// registry.go — the node-type registry: how structured types plug into the
// generic transform.
//
// Registration is keyed by reflect.Type and idempotent: the first handler
// registered for a type wins and later registrations are silent no-ops, so
// helper code may register unconditionally.

package treeutil

import (
	"reflect"
	"sort"
	"strconv"
	"sync"
)

// Handler adapts one node type to the structural transform.
type Handler struct {
	// Flatten decomposes a node one level: ordered child values, their key
	// names (attribute names or stringified indices), and the node's static
	// residual (aux). It must not mutate the node.
	Flatten func(node any) (children []any, keys []string, aux any)

	// Unflatten rebuilds a node from aux and children, bypassing any
	// initializer. len(children) equals the flatten arity for that aux.
	Unflatten func(aux any, children []any) (any, error)
}

var nodeRegistry = struct {
	sync.RWMutex
	handlers map[reflect.Type]Handler
}{handlers: make(map[reflect.Type]Handler)}

// RegisterNode registers a handler for node type typ. Re-registering a typ
// keeps the first handler and returns nil, so registration helpers may run
// more than once.
func RegisterNode(typ reflect.Type, h Handler) error {
	if h.Flatten == nil || h.Unflatten == nil {
		return ErrNilHandler
	}
	nodeRegistry.Lock()
	defer nodeRegistry.Unlock()
	if _, ok := nodeRegistry.handlers[typ]; ok {
		return nil
	}
	nodeRegistry.handlers[typ] = h
	return nil
}

// Registered reports whether typ has a node handler.
func Registered(typ reflect.Type) bool {
	nodeRegistry.RLock()
	defer nodeRegistry.RUnlock()
	_, ok := nodeRegistry.handlers[typ]
	return ok
}

// Children decomposes node one level through its handler: ordered child
// values and their key names. ok is false when node is a leaf.
func Children(node any) (children []any, keys []string, ok bool) {
	h, ok := handlerFor(node)
	if !ok {
		return nil, nil, false
	}
	children, keys, _ = h.Flatten(node)
	return children, keys, true
}

// handlerFor resolves the handler for a value: registered types first, then
// the built-in []any and map[string]any containers. ok is false for leaves.
func handlerFor(node any) (Handler, bool) {
	if node == nil {
		return Handler{}, false
	}
	nodeRegistry.RLock()
	h, ok := nodeRegistry.handlers[reflect.TypeOf(node)]
	nodeRegistry.RUnlock()
	if ok {
		return h, true
	}
	switch node.(type) {
	case []any:
		return sliceHandler, true
	case map[string]any:
		return mapHandler, true
	}
	return Handler{}, false
}

// sliceHandler treats []any as a sequence node with index keys.
var sliceHandler = Handler{
	Flatten: func(node any) ([]any, []string, any) {
		s := node.([]any)
		children := make([]any, len(s))
		keys := make([]string, len(s))
		copy(children, s)
		for i := range s {
			keys[i] = strconv.Itoa(i)
		}
		return children, keys, len(s)
	},
	Unflatten: func(aux any, children []any) (any, error) {
		if aux.(int) != len(children) {
			return nil, ErrLeafCount
		}
		out := make([]any, len(children))
		copy(out, children)
		return out, nil
	},
}

// mapHandler treats map[string]any as a mapping node; keys are sorted so
// flatten order is deterministic.
var mapHandler = Handler{
	Flatten: func(node any) ([]any, []string, any) {
		m := node.(map[string]any)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		children := make([]any, len(keys))
		for i, k := range keys {
			children[i] = m[k]
		}
		return children, keys, append([]string(nil), keys...)
	},
	Unflatten: func(aux any, children []any) (any, error) {
		keys := aux.([]string)
		if len(keys) != len(children) {
			return nil, ErrLeafCount
		}
		out := make(map[string]any, len(keys))
		for i, k := range keys {
			out[k] = children[i]
		}
		return out, nil
	},
}
