// Package compare groups competing drafts of the same bill, aligns their
// articles and renders additions-only diffs between them.
package compare

import (
	"regexp"
	"strings"
	"unicode"

	"BillCompare/internal/domain"
)

var (
	versionWords   = regexp.MustCompile(`修正|增訂|廢止|制定|部分條文|草案`)
	articleRefs    = regexp.MustCompile(`第[^\s\v\p{Z}\x{FEFF}]+條`)
	rankingStrip   = regexp.MustCompile(`修正|增訂|廢止|制定`)
	sourceFileExt  = ".docx"
	sourceFieldSep = "_"
)

// NormalizeName strips whitespace and the separators ‧ . - from a person
// name. The result is only used as a roster lookup key.
func NormalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		switch r {
		case '‧', '.', '-':
			return -1
		}
		return r
	}, name)
}

// BillTitle derives the display title from a source label shaped like
// "<date>_<sequence>_<title>.docx".
func BillTitle(b domain.Bill) string {
	if b.SourceFile == "" {
		return domain.UnknownBill
	}
	parts := strings.Split(b.SourceFile, sourceFieldSep)
	if len(parts) < 3 {
		return ""
	}
	title := strings.Join(parts[2:], sourceFieldSep)
	return strings.Replace(title, sourceFileExt, "", 1)
}

// NormalizeBillTitle reduces a bill to its base title. Bills with equal base
// titles are treated as versions of the same legislation.
func NormalizeBillTitle(b domain.Bill) string {
	title := versionWords.ReplaceAllString(BillTitle(b), "")
	title = articleRefs.ReplaceAllString(title, "")
	return strings.TrimFunc(title, isSpace)
}

// RankingTitle is the display title with only the action verbs removed.
func RankingTitle(b domain.Bill) string {
	return strings.TrimFunc(rankingStrip.ReplaceAllString(BillTitle(b), ""), isSpace)
}

// isSpace reports the whitespace that title and name keys drop:
// Unicode spaces and line separators plus the byte order mark, without NEL.
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}
