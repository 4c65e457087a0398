package fulltext

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits NFC-normalised text on runs of non-word characters.
// Letters, numbers of any kind and '_' are word characters, so "1º" and "m²" stay whole.
func Tokenize(text string) []string {
	return strings.FieldsFunc(norm.NFC.String(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_')
	})
}
