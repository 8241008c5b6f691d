// Package treeclass is an immutable, schema-driven structured-object model
// whose instances decompose into an ordered leaf sequence plus a static
// structural descriptor — ready for generic tree transforms.
//
// 🚀 What is treeclass?
//
//	A small, composable library that brings together:
//		• Field descriptors: defaults, factories, validators, metadata flags
//		• Schemas: ordered field maps with inheritance-style extension
//		• Frozen instances: mutation only inside scoped mutable contexts
//		• Structural transforms: flatten/unflatten with dynamic/static split
//		• Indexed paths: out-of-place Get/Set/Apply/Reduce/Call via At(...)
//		• Non-differentiability filtering: reversible leaf reclassification
//		• Leaf-wise operators: broadcasted arithmetic & comparison masks
//
// ✨ Why choose treeclass?
//
//   - Out-of-place by default — every transform returns a fresh instance
//   - Deterministic — attribute order is declaration/insertion order, always
//   - Explicit — sentinel errors, closed key kinds, no hidden reflection magic
//   - Extensible — register custom node types, custom key resolvers, validators
//
// Under the hood, everything is organized under four subpackages:
//
//	field/    — field descriptors, metadata, validators
//	schema/   — ordered field maps, extension, YAML schema documents
//	treeutil/ — generic flatten/unflatten/map over registered node types
//	object/   — classes, instances, mutability, At-indexing, filters, operators
//
// Quick example:
//
//	Point := object.MustNewClass(schema.MustNew("Point",
//		field.MustNew("x", field.Float),
//		field.MustNew("y", field.Float),
//	))
//	p, _ := Point.New(1.0, 2.0)
//	q, _ := p.At(object.Name("x")).Set(10.0) // Point(x=10, y=2); p unchanged
//
// Dive into each package's doc.go for invariants, error policy and examples.
package treeclass
