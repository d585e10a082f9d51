package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// Length cutoffs per collection: headings keep > 3 chars, free-text
// collections keep > 10.
const (
	minHeadingLen = 3
	minTextLen    = 10
)

// Sanitizer strips boilerplate from the free-text collections of an article.
// Each collection is cleaned independently; dedup state never crosses calls.
type Sanitizer struct {
	junk []*regexp.Regexp
}

// NewSanitizer compiles the junk patterns. Patterns are matched against
// lower-cased entries, so they should be written in lower case.
func NewSanitizer(patterns []string) (*Sanitizer, error) {
	s := &Sanitizer{junk: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling junk pattern %q: %w", p, err)
		}
		s.junk = append(s.junk, re)
	}
	return s, nil
}

// Sanitize applies, per entry and in input order: the junk filter, a
// case/whitespace-insensitive dedup keeping the first occurrence, and the
// minimum length cutoff (entries of length <= minLen are dropped). Entries
// dropped by the cutoff do not count as kept for dedup purposes. The output
// is a subsequence of the input; entries are never edited or merged.
func (s *Sanitizer) Sanitize(entries []string, minLen int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		if s.isJunk(entry) {
			continue
		}
		key := foldEntry(entry)
		if seen[key] {
			continue
		}
		if len(entry) <= minLen {
			continue
		}
		seen[key] = true
		out = append(out, entry)
	}
	return out
}

func (s *Sanitizer) isJunk(entry string) bool {
	lower := strings.ToLower(entry)
	for _, re := range s.junk {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// foldEntry lower-cases and collapses whitespace runs, the equivalence used
// for dedup.
func foldEntry(entry string) string {
	return strings.Join(strings.Fields(strings.ToLower(entry)), " ")
}
