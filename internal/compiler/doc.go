// Package compiler turns an ir markup tree into a JavaScript component module.
//
// The pipeline is a pure transform:
//
//	markup text -> markup.Parse -> ir.Document
//	            -> Convert        (root selection, replacement mode)
//	            -> Generator       (nested createElement expression)
//	            -> Assemble        (import line, defaults preamble, function)
//
// Nothing in this package performs I/O or keeps process-wide mutable state, so
// every exported function is safe for concurrent use.
//
// # Runtime overrides
//
// The root element of a generated component accepts caller props. Ten
// presentation attributes (see SpecialAttributes) can be overridden at call
// time; all other root attributes stay fixed from the source markup. Width and
// height use an explicit absence test instead of JavaScript truthiness so that
// a runtime 0 is honoured.
package compiler
