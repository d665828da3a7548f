// Package harness runs YAML conformance cases against the compiler.
//
// A case names an input document, the conversion mode and options, and a set
// of expectations on the output:
//
//	name: nested_paths
//	description: children are indented one level per depth
//	input: |
//	  <svg viewBox="0 0 24 24"><path d="M0 0"/></svg>
//	expect:
//	  create_element_count: 2
//	  contains:
//	    - 'createElement("path", {"d": "M0 0"})'
//	  attributes:
//	    viewBox: "0 0 24 24"
//	golden: true
//
// Cases with golden: true also compare the generated code byte-for-byte with
// golden/<file-name>.golden next to the case file. The harness never writes
// golden files on its own; UpdateGolden does that for the test command's
// --update flag.
package harness
