// mutable.go — the mutability controller: a process-wide, mutex-guarded
// identity set of instances currently allowed to mutate.
//
// Membership is added at scope entry and removed on every exit path;
// re-adding a present identity is idempotent. The registry provides no
// cross-goroutine safety for one shared instance: callers must serialize
// construction and indexed calls on a given instance (see package doc).

package object

import "sync"

var mutableRegistry = struct {
	sync.Mutex
	active map[*Instance]struct{}
}{active: make(map[*Instance]struct{})}

func register(x *Instance) {
	mutableRegistry.Lock()
	defer mutableRegistry.Unlock()
	mutableRegistry.active[x] = struct{}{}
}

func deregister(x *Instance) {
	mutableRegistry.Lock()
	defer mutableRegistry.Unlock()
	delete(mutableRegistry.active, x)
}

func isMutable(x *Instance) bool {
	mutableRegistry.Lock()
	defer mutableRegistry.Unlock()
	_, ok := mutableRegistry.active[x]
	return ok
}

// WithMutable runs fn with x (or, when copyFirst is set, a structural copy
// of x) registered as mutable, and deregisters it on every exit path. On
// success it returns the instance fn mutated, frozen again. On failure the
// instance is discardable: already-applied assignments are not rolled back.
func WithMutable(x *Instance, copyFirst bool, fn func(*Instance) error) (*Instance, error) {
	target := x
	if copyFirst {
		target = x.Copy()
	}
	register(target)
	defer deregister(target)
	if err := fn(target); err != nil {
		return nil, err
	}
	return target, nil
}
