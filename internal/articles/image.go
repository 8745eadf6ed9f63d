package articles

import (
	"net/url"
	"strings"
)

// Stock-photo keywords per section, used when a submission carries no
// featured image of its own.
var sectionImageKeywords = map[string]string{
	"news":      "technology,news,digital",
	"opinion":   "thinking,ideas,abstract",
	"tutorial":  "coding,computer,learning",
	"interview": "robot,ai,portrait",
	"digest":    "social,network,communication",
}

const defaultImageKeywords = "technology,ai"

// FeaturedImageURL builds a deterministic stock-photo URL from the section's
// keyword table plus up to two significant words lifted from the title.
func FeaturedImageURL(section, title string) string {
	keywords, ok := sectionImageKeywords[section]
	if !ok {
		keywords = defaultImageKeywords
	}

	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(title), "")
	var titleWords []string
	for _, word := range strings.Split(cleaned, " ") {
		if len(word) > 4 {
			titleWords = append(titleWords, word)
			if len(titleWords) == 2 {
				break
			}
		}
	}

	all := keywords
	if len(titleWords) > 0 {
		all = keywords + "," + strings.Join(titleWords, ",")
	}
	return "https://source.unsplash.com/1200x800/?" + url.QueryEscape(all)
}
