package agro

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var stateCaser = cases.Upper(language.BrazilianPortuguese)

// normalizeText trims surrounding whitespace and composes accents (NFC) so
// "São Paulo" typed with combining marks compares equal to the precomposed form.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeState upper-cases a state name or code, e.g. "sp" -> "SP"
func normalizeState(s string) string {
	return stateCaser.String(normalizeText(s))
}
