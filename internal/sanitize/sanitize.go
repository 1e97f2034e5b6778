// Package sanitize strips unsafe markup from resource text before it is
// rendered or highlighted.
package sanitize

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HighlightClass is the only class the highlight tag may carry.
const HighlightClass = "search-highlight"

var (
	// highlightPolicy allows nothing but <mark class="search-highlight">.
	highlightPolicy = newHighlightPolicy()
	// textPolicy allows no markup at all.
	textPolicy = bluemonday.StrictPolicy()

	dangerousSchemes = regexp.MustCompile(`(?i)(?:javascript|vbscript)\s*:|\bdata\s*:`)
	eventHandlers    = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)
	whitespace       = regexp.MustCompile(`\s+`)
	entity           = `&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+|#[xX][0-9a-fA-F]+);`
)

func newHighlightPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("mark")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^` + HighlightClass + `$`)).OnElements("mark")
	return p
}

// SanitizeForXSS removes every tag and attribute except the highlight tag,
// drops script-like URI schemes and event-handler fragments wherever they
// appear, and collapses whitespace. The data: scheme is matched at any word
// boundary, so prose such as "meta-data: x" comes back as "meta- x".
func SanitizeForXSS(text string) string {
	return clean(highlightPolicy, text)
}

// StripTags removes all markup, including the highlight tag.
func StripTags(text string) string {
	return clean(textPolicy, text)
}

// SanitizeAndHighlight sanitizes text and wraps case-insensitive occurrences
// of query in the highlight tag. The highlighted result is sanitized again.
func SanitizeAndHighlight(text, query string) string {
	return HighlightTerms(text, []string{query})
}

// HighlightTerms is SanitizeAndHighlight for several terms at once; longer
// terms win when terms overlap.
func HighlightTerms(text string, terms []string) string {
	safe := StripTags(text)
	if safe == "" {
		return ""
	}

	patterns := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		// Matching happens against escaped text, so escape the term the same way.
		patterns = append(patterns, regexp.QuoteMeta(html.EscapeString(term)))
	}
	if len(patterns) == 0 {
		return safe
	}
	sort.SliceStable(patterns, func(i, j int) bool { return len(patterns[i]) > len(patterns[j]) })

	entityRe := regexp.MustCompile(`^` + entity + `$`)
	// Terms come before the entity alternative so "&" and quotes can match.
	re, err := regexp.Compile(`(?i)(?:` + strings.Join(patterns, "|") + `)|` + entity)
	if err != nil {
		return safe
	}

	highlighted := re.ReplaceAllStringFunc(safe, func(match string) string {
		if entityRe.MatchString(match) {
			return match
		}
		return `<mark class="` + HighlightClass + `">` + match + `</mark>`
	})

	return SanitizeForXSS(highlighted)
}

func clean(policy *bluemonday.Policy, text string) string {
	if text == "" {
		return ""
	}
	out := policy.Sanitize(text)
	// Removing one fragment can splice together another, so repeat until stable.
	for {
		next := eventHandlers.ReplaceAllString(dangerousSchemes.ReplaceAllString(out, ""), "")
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(out, " "))
}
