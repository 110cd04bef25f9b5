// Package normal brings MARC character data into a single consistent text
// form: valid UTF-8, Unicode NFC, collapsed whitespace.
package normal

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites a string.
type Normalizer interface {
	Normalize(string) string
}

// NormalizerFunc adapts a plain function.
type NormalizerFunc func(string) string

// Normalize implements Normalizer.
func (f NormalizerFunc) Normalize(s string) string {
	return f(s)
}

// Pipeline applies normalizers in order.
type Pipeline struct {
	Normalizer []Normalizer
}

// Normalize runs all normalizers.
func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

// ValidUTF8Normalizer replaces invalid byte sequences with U+FFFD.
type ValidUTF8Normalizer struct{}

func (ValidUTF8Normalizer) Normalize(v string) string {
	if utf8.ValidString(v) {
		return v
	}
	return strings.ToValidUTF8(v, "�")
}

// NFCNormalizer composes decomposed sequences, e.g. MARC-8 style combining
// diacritics following their base letter.
type NFCNormalizer struct{}

func (NFCNormalizer) Normalize(v string) string {
	return norm.NFC.String(v)
}

// SpaceNormalizer turns newlines, tabs and runs of spaces into a single
// space and trims the result.
type SpaceNormalizer struct{}

func (SpaceNormalizer) Normalize(v string) string {
	var (
		sb      strings.Builder
		inSpace bool
	)
	for _, c := range strings.TrimSpace(v) {
		if unicode.IsSpace(c) {
			if !inSpace {
				sb.WriteRune(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		sb.WriteRune(c)
	}
	return sb.String()
}

// Text is the default pipeline for subfield values.
var Text = &Pipeline{
	Normalizer: []Normalizer{
		ValidUTF8Normalizer{},
		NFCNormalizer{},
		SpaceNormalizer{},
	},
}

// String normalizes a value with the default pipeline.
func String(s string) string {
	return Text.Normalize(s)
}
