package mathcheck

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// glyph maps a typed or pasted glyph onto its canonical ASCII spelling.
type glyph struct {
	from string
	to   string
}

// glyphTable lists every glyph substitution applied by Normalize.
// The replacer is built longest-first so overlapping entries stay
// deterministic if the table grows.
var glyphTable = []glyph{
	{"×", "*"},
	{"·", "*"},
	{"÷", "/"},
	{"−", "-"},
	{"–", "-"},
	{"—", "-"},
	{"½", "1/2"},
	{"⅓", "1/3"},
	{"⅔", "2/3"},
	{"¼", "1/4"},
	{"¾", "3/4"},
	{"π", "pi"},
}

// superscripts maps superscript glyphs to their plain counterparts.
var superscripts = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
	'⁺': '+', '⁻': '-', '⁽': '(', '⁾': ')',
}

var (
	glyphReplacer = newGlyphReplacer(glyphTable)

	// A vulgar fraction glued to a whole number is a mixed number: 1½ → 1 ½.
	mixedGlyphRe = regexp.MustCompile(`([0-9])([½⅓⅔¼¾])`)

	// Only a run preceded by a base (letter, digit or closing paren) is an exponent.
	superscriptRunRe = regexp.MustCompile(`[a-z0-9)][⁰¹²³⁴⁵⁶⁷⁸⁹⁺⁻⁽⁾]+`)

	operatorSpaceRe = regexp.MustCompile(`[\s\p{Zs}]*([+\-*/=^])[\s\p{Zs}]*`)
	spaceRunRe      = regexp.MustCompile(`[\s\p{Zs}]+`)
)

func newGlyphReplacer(table []glyph) *strings.Replacer {
	sorted := make([]glyph, len(table))
	copy(sorted, table)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].from) > len(sorted[j].from)
	})

	pairs := make([]string, 0, 2*len(sorted))
	for _, g := range sorted {
		pairs = append(pairs, g.from, g.to)
	}
	return strings.NewReplacer(pairs...)
}

// Normalize canonicalizes a typed answer so that cosmetic differences
// (case, spacing, operator glyphs, superscript exponents) disappear.
//
// Steps, in order:
//  1. trim, lower-case, compose accents (NFC)
//  2. replace operator and fraction glyphs from glyphTable
//  3. fold superscript runs after a base into ^ notation (2³ → 2^3)
//  4. drop whitespace around + - * / = ^ and collapse the rest
//  5. compose again (NFC)
//
// Normalize is idempotent and never fails.
func Normalize(answer string) string {
	s := strings.TrimSpace(answer)
	s = cases.Lower(language.Und).String(s)
	s = norm.NFC.String(s)

	s = mixedGlyphRe.ReplaceAllString(s, "$1 $2")
	s = glyphReplacer.Replace(s)

	s = foldSuperscripts(s)

	s = operatorSpaceRe.ReplaceAllString(s, "$1")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	// Glyph expansion can leave a combining mark after a new ASCII base
	// (π + U+0301 becomes "pi" + U+0301); compose again so a second pass
	// has nothing left to do.
	return norm.NFC.String(s)
}

// foldSuperscripts rewrites "x⁻¹" as "x^-1". A superscript with no base
// in front of it is left alone.
func foldSuperscripts(s string) string {
	if !strings.ContainsAny(s, "⁰¹²³⁴⁵⁶⁷⁸⁹⁺⁻⁽⁾") {
		return s
	}
	return superscriptRunRe.ReplaceAllStringFunc(s, func(m string) string {
		var b strings.Builder
		b.Grow(len(m))
		// The base is a single ASCII byte.
		b.WriteString(m[:1])
		b.WriteByte('^')
		for _, r := range m[1:] {
			b.WriteRune(superscripts[r])
		}
		return b.String()
	})
}
