// Package object implements the instance model: classes built from schemas,
// frozen instances with scoped mutability, the structural-transform adapter,
// indexed-path selection (At), non-differentiability filtering, and leaf-wise
// operator dispatch.
//
// Lifecycle of an instance (the construction state machine):
//
//	uninitialized → under-construction (mutable) → post-init hook (mutable)
//	             → field-completeness check → frozen
//
// Once frozen, attribute assignment and deletion fail with ErrImmutable; the
// only legal mutation paths are the scoped mutable context (WithMutable) and
// the method-call form of the indexer, both of which operate on copies and
// re-freeze on every exit path.
//
// Out-of-place editing goes through the indexer:
//
//	p.At(object.Name("x")).Get()        // selected leaves kept, rest None
//	p.At(object.Name("x")).Set(10.0)    // selected leaves replaced
//	p.At(object.All).Apply(fn)          // fn over every leaf
//	p.At(object.Name("step")).Call(3)   // (return value, new instance)
//
// Key kinds are a closed set (keys.go): field name, integer position,
// select-all, boolean mask tree, regexp over field names, a union of keys at
// one level, and a custom resolution callback. Selection never recurses into
// static fields; an empty selection is a no-op for Set/Apply and all-None
// for Get.
//
// Concurrency: the mutable registry is a mutex-guarded identity set; sharing
// one instance across goroutines during construction or an indexed call is
// the caller's responsibility to serialize. Everything else is out-of-place
// and safe to share read-only.
package object
