// Package hashtags pulls hashtags out of captions and ranks them by use.
package hashtags

import (
	"sort"
	"strings"
)

// Count is how many times a tag was used.
type Count struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// Extract returns the hashtags of a caption in order of appearance, repeats
// included. A whitespace-separated token yields a tag when it starts with '#'
// followed by at least one word character; the tag stops at the first
// non-word character. Case is kept, so #Cats and #cats are different tags.
func Extract(caption string) []string {
	var tags []string
	for _, token := range strings.Fields(caption) {
		if tag, ok := parseToken(token); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseToken(token string) (string, bool) {
	if len(token) < 2 || token[0] != '#' {
		return "", false
	}
	end := 1
	for end < len(token) && isWordChar(token[end]) {
		end++
	}
	if end == 1 {
		return "", false
	}
	return token[:end], true
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// Top counts tag occurrences across captions and returns the n most used,
// ordered by count descending then tag ascending. n <= 0 returns nothing.
func Top(captions []string, n int) []Count {
	if n <= 0 {
		return []Count{}
	}

	counts := make(map[string]int64)
	for _, caption := range captions {
		for _, tag := range Extract(caption) {
			counts[tag]++
		}
	}

	ranked := make([]Count, 0, len(counts))
	for tag, c := range counts {
		ranked = append(ranked, Count{Tag: tag, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
