package explain

import (
	"regexp"
	"strings"
)

// Conservative post-filter: the model is instructed not to advise, but
// instructions are not guarantees. Any output matching these patterns is
// replaced wholesale.
var bannedPatterns = []string{
	`\b(dose|dosage|mg|mcg|ml)\b`,
	`\b(take|start|stop|increase|decrease|titrate|adjust)\b`,
	`\b(recommend|should|must|avoid|contraindicated)\b`,
	`\b(pregnan|breastfeed|lactat)\b`,
	`\b(call (a )?(doctor|physician)|seek medical|emergency)\b`,
	`\b(safe|unsafe|dangerous|fatal|death)\b`,
	`\b(risk of|causes|leads to|results in)\b`,
}

var bannedRe = regexp.MustCompile("(?i)" + strings.Join(bannedPatterns, "|"))

// LooksLikeAdvice flags text resembling medical advice or unsupported
// clinical claims.
func LooksLikeAdvice(text string) bool {
	return text != "" && bannedRe.MatchString(text)
}

// WithDisclaimer guarantees the fixed disclaimer sentence terminates the
// explanation.
func WithDisclaimer(text string) string {
	if strings.HasSuffix(text, Disclaimer) {
		return text
	}
	text = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), ". "))
	if text == "" {
		return Disclaimer
	}
	return text + ". " + Disclaimer
}

// Blocked is the replacement for filtered output.
func Blocked() string {
	return WithDisclaimer("Explanation blocked: output resembled medical advice or unsupported clinical claims")
}
