package compiler

import (
	"strings"
	"unicode"
)

// TranslateName maps a markup attribute name to its React prop name.
//
// Rules, first match wins:
//  1. fixed renames for reserved and namespaced names (class, for, xlink:*, ...)
//  2. data-* and aria-* pass through unchanged
//  3. hyphenated names are camel-cased
//  4. everything else passes through unchanged
func TranslateName(name string) string {
	if renamed, ok := renamedAttribute(name); ok {
		return renamed
	}
	if strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-") {
		return name
	}
	if strings.Contains(name, "-") {
		return camelCase(name)
	}
	return name
}

// renamedAttribute is the closed table of names React spells differently.
func renamedAttribute(name string) (string, bool) {
	switch name {
	case "for":
		return "htmlFor", true
	case "class":
		return "className", true
	case "xmlns:xlink":
		return "xmlnsXlink", true
	case "xlink:actuate":
		return "xlinkActuate", true
	case "xlink:arcrole":
		return "xlinkArcrole", true
	case "xlink:href":
		return "xlinkHref", true
	case "xlink:role":
		return "xlinkRole", true
	case "xlink:show":
		return "xlinkShow", true
	case "xlink:title":
		return "xlinkTitle", true
	case "xlink:type":
		return "xlinkType", true
	case "xml:base":
		return "xmlBase", true
	case "xml:lang":
		return "xmlLang", true
	case "xml:space":
		return "xmlSpace", true
	default:
		return "", false
	}
}

// camelCase lower-cases the first word character, upper-cases every word
// character that starts a word (follows a non-word character), and strips
// whitespace and hyphens. Word characters are ASCII [A-Za-z0-9_].
//
//	camelCase("stroke-width")   == "strokeWidth"
//	camelCase("-webkit-filter") == "WebkitFilter"
func camelCase(input string) string {
	s := strings.TrimSpace(input)

	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for i, r := range s {
		word := isWordChar(r)
		switch {
		case word && i == 0:
			r = unicode.ToLower(r)
		case word && !prevWord:
			r = unicode.ToUpper(r)
		}
		prevWord = word

		if r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
