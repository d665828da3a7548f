package compiler

import "regexp"

// identifierPattern matches keys that can appear unquoted in an object
// literal. It requires at least two characters: single-character keys are
// always quoted, which keeps output byte-compatible with existing builds.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]+$`)

// QuoteKey returns key unquoted when it is a valid unquoted object key and
// wrapped in double quotes otherwise.
func QuoteKey(key string) string {
	if identifierPattern.MatchString(key) {
		return key
	}
	return `"` + key + `"`
}
