package reasoning

import "regexp"

// Remote models keep emitting markdown no matter how the prompt is phrased.
// The dashboard reads answers aloud, so everything that is not plain prose
// has to go before synthesis.
var (
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	fenceRe    = regexp.MustCompile("```[a-zA-Z]*")
	backtickRe = regexp.MustCompile("`")
	emphasisRe = regexp.MustCompile(`\*\*|__|\*`)
	headingRe  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	quoteRe    = regexp.MustCompile(`(?m)^>\s?`)
	bulletRe   = regexp.MustCompile(`(?m)^\s*[-*+•]\s+`)
	numberedRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)
	pipeRe     = regexp.MustCompile(`\|`)
	nanRe      = regexp.MustCompile(`(?i)\bnan\b`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// SanitizePlainText strips markdown structure from model output and
// normalizes whitespace. Applying it twice yields the same result.
func SanitizePlainText(text string) string {
	out := linkRe.ReplaceAllString(text, "$1")
	out = fenceRe.ReplaceAllString(out, "")
	out = backtickRe.ReplaceAllString(out, "")
	out = emphasisRe.ReplaceAllString(out, "")
	out = headingRe.ReplaceAllString(out, "")
	out = quoteRe.ReplaceAllString(out, "")
	out = bulletRe.ReplaceAllString(out, "")
	out = numberedRe.ReplaceAllString(out, "")
	out = pipeRe.ReplaceAllString(out, " ")
	out = nanRe.ReplaceAllString(out, "N/A")
	out = spaceRe.ReplaceAllString(out, " ")
	return trimSpace(out)
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && s[start] == ' ' {
		start++
	}
	end := len(s)
	for end > start && s[end-1] == ' ' {
		end--
	}
	return s[start:end]
}
