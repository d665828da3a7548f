// Package ir provides the markup tree and value types shared by the svgreact
// compiler.
//
// This package contains type definitions only. The parser adapter produces ir
// trees, the compiler consumes them; ir imports nothing internal, which keeps it
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Node, Props and Value are sealed sum types (private marker methods)
//   - Attribute order from the source markup is preserved everywhere
//   - Trees are never mutated after construction; use WithProps to derive a copy
package ir
