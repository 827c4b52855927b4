package compare

import (
	"regexp"
	"slices"
	"strings"
)

const numeralClass = `[零一二三四五六七八九十百千]`

var (
	articleTitlePattern = regexp.MustCompile(`^第` + numeralClass + `+(?:章|條(?:之` + numeralClass + `+)?)`)
	mainNumberPattern   = regexp.MustCompile(`第(` + numeralClass + `+)(?:章|條)`)
	subNumberPattern    = regexp.MustCompile(`之(` + numeralClass + `+)`)
)

// ExtractArticleTitle returns the chapter or article marker that opens text,
// e.g. 第十條之一. Markers that do not start the text are not recognized.
func ExtractArticleTitle(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	title := articleTitlePattern.FindString(text)
	return title, title != ""
}

// ArticleKey is the sort key of an article identifier.
type ArticleKey struct {
	Chapter bool
	Main    int
	Sub     int
}

// ParseArticleKey derives the ordering key of an identifier.
func ParseArticleKey(title string) ArticleKey {
	key := ArticleKey{Chapter: strings.Contains(title, "章")}
	if m := mainNumberPattern.FindStringSubmatch(title); m != nil {
		key.Main = ParseNumeral(m[1])
	}
	if m := subNumberPattern.FindStringSubmatch(title); m != nil {
		key.Sub = ParseNumeral(m[1])
	}
	return key
}

// Compare orders chapters before articles, then by main and sub number.
func (k ArticleKey) Compare(other ArticleKey) int {
	if k.Chapter != other.Chapter {
		if k.Chapter {
			return -1
		}
		return 1
	}
	if k.Main != other.Main {
		return k.Main - other.Main
	}
	return k.Sub - other.Sub
}

// SortArticleTitles orders identifiers in place and returns them.
func SortArticleTitles(titles []string) []string {
	slices.SortStableFunc(titles, func(a, b string) int {
		return ParseArticleKey(a).Compare(ParseArticleKey(b))
	})
	return titles
}
