package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// FakePattern pairs a low-effort/placeholder input detector with the message
// returned when it matches. Rules are checked in order; the first match wins.
type FakePattern struct {
	Match   func(s string) bool
	Message string
}

func regexRule(expr, msg string) FakePattern {
	re := regexp.MustCompile(expr)
	return FakePattern{Match: re.MatchString, Message: msg}
}

// repeatedLetterRule flags strings made of a single letter repeated
// ("aaaaa", "BBBB"). Expressed in code because RE2 has no backreferences.
func repeatedLetterRule(msg string) FakePattern {
	return FakePattern{
		Message: msg,
		Match: func(s string) bool {
			s = strings.TrimSpace(s)
			if len(s) < 2 {
				return false
			}
			runes := []rune(strings.ToLower(s))
			first := runes[0]
			if !unicode.IsLetter(first) {
				return false
			}
			for _, r := range runes[1:] {
				if r != first {
					return false
				}
			}
			return true
		},
	}
}

// DefaultFakePatterns rejects obviously fake street and city values before any
// geocoder quota is spent on them. The list is data so deployments (and tests)
// can tune or disable the policy without touching validation logic.
var DefaultFakePatterns = []FakePattern{
	regexRule(`(?i)\btest\b`, "Please enter a real address"),
	regexRule(`(?i)\bfake\b`, "Please enter a real address"),
	regexRule(`(?i)\bdummy\b`, "Please enter a real address"),
	regexRule(`(?i)\bexample\b`, "Please enter a real address"),
	regexRule(`(?i)asdf`, "Please enter a real address"),
	regexRule(`(?i)qwerty`, "Please enter a real address"),
	regexRule(`(?i)\babc\s+(street|st|avenue|ave|road|rd)\b`, "Please enter a real street address"),
	regexRule(`(?i)\b123\s+(test|fake|dummy)\b`, "Please enter a real street address"),
	repeatedLetterRule("Please enter a real address"),
}

// matchFake returns the message of the first matching rule, or an empty string.
func matchFake(patterns []FakePattern, s string) string {
	for _, p := range patterns {
		if p.Match(s) {
			return p.Message
		}
	}
	return ""
}
