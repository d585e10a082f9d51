package normalize

import "regexp"

// The four odds-shaped patterns scanned over article free text.
// Scans are independent: a substring may be matched by more than one of them
// (a signed moneyline inside a "points" phrase is matched by both the first
// and the third scan). No disambiguation is attempted here; classification is
// a downstream concern.
var (
	pointSpreadPattern = regexp.MustCompile(`(?i)[+-]\d+\.?\d*\s*(?:points?|pts?)\b`)
	totalLinePattern   = regexp.MustCompile(`(?i)(?:o/u|over/under|total)\s*:?\s*\d+\.?\d*`)
	moneylinePattern   = regexp.MustCompile(`[+-]\d{3,4}\b`)
	rangeOddsPattern   = regexp.MustCompile(`(?i)\b\d+\.?\d*\s+to\s+\d+\.?\d*\b`)
)

// bareOddsPatterns match a full pattern string that is nothing but a signed
// 1-2 or 3-4 digit integer. Used by the fallback moneyline association.
var (
	bareShortOddsPattern = regexp.MustCompile(`^[+-]\d{1,2}$`)
	bareLongOddsPattern  = regexp.MustCompile(`^[+-]\d{3,4}$`)
)

// ExtractOddsPatterns runs the four pattern scans over text and concatenates
// all matches in scan order, preserving match order and duplicates. The
// returned substrings carry no type tagging.
func ExtractOddsPatterns(text string) []string {
	var out []string
	out = append(out, pointSpreadPattern.FindAllString(text, -1)...)
	out = append(out, totalLinePattern.FindAllString(text, -1)...)
	out = append(out, moneylinePattern.FindAllString(text, -1)...)
	out = append(out, rangeOddsPattern.FindAllString(text, -1)...)
	return out
}

// isBareOdds reports whether a pattern string is a bare signed integer of
// moneyline shape (1-2 or 3-4 digits, nothing else).
func isBareOdds(pattern string) bool {
	return bareShortOddsPattern.MatchString(pattern) || bareLongOddsPattern.MatchString(pattern)
}
