package emails

import "regexp"

// Pattern is the accepted address shape: a local part, '@', a domain, and a
// top-level domain of at least two letters. It is anchored at both ends,
// and $ only matches at the very end of the text, so a trailing newline
// makes the candidate invalid. Engines where $ also matches before a final
// newline would accept "a@b.com\n"; this one does not.
const Pattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

var emailRe = regexp.MustCompile(Pattern)

// IsValid reports whether s matches Pattern in full.
func IsValid(s string) bool {
	return emailRe.MatchString(s)
}

// ValidEmailCounter counts the candidates that are strings matching Pattern.
// Values of any other dynamic type are skipped.
func ValidEmailCounter(candidates []any) int {
	count := 0
	for _, c := range candidates {
		s, ok := c.(string)
		if ok && IsValid(s) {
			count++
		}
	}
	return count
}
