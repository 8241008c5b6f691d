// Package schema builds ordered field maps: the static structural layout of
// a class of instances.
//
// A Schema is an insertion-ordered mapping from field name to a
// field.Field descriptor, declared explicitly from descriptors:
//
//	Point := schema.MustNew("Point",
//		field.MustNew("x", field.Float),
//		field.MustNew("y", field.Float),
//	)
//
// Extension plays the role of an ancestor chain: Extend produces a derived
// Schema whose entries start with the parent's (oldest first) and overlay the
// new declarations. A same-named entry overrides its ancestor in place,
// keeping the original declaration position — most-derived wins, order is
// stable.
//
// Invariants:
//
//   - A Schema is immutable once constructed; it is built eagerly and shared
//     freely by identity, so the per-class field map is cached by
//     construction.
//   - Declaration order is preserved exactly; Fields() and Names() iterate
//     ancestors first.
//   - Constructor-shape errors (a required positional field after a
//     defaulted one, duplicate names in one declaration) are schema-build
//     errors, never deferred to instance construction.
//
// Schemas can also be declared from YAML documents (ParseYAML) with a closed
// set of type tags; see yamlspec.go.
package schema
