package scrape

import (
	"regexp"
	"strconv"
	"strings"
)

// Amount patterns, tried in order. Suffixed shorthand must come before the
// plain pattern or "$10K" would match as "$10".
var (
	reAmountSuffixed  = regexp.MustCompile(`\$\d+(?:\.\d+)?\s?[KkMm]\b`)
	reAmountWorded    = regexp.MustCompile(`(?i)\$\d[\d,]*\s+(?:thousand|million)`)
	reAmountStandard  = regexp.MustCompile(`\$\d[\d,]*(?:\s*(?:to|-|–)\s*\$\d[\d,]*)?`)
	reAmountBracketed = regexp.MustCompile(`[(\[]\s*\$\d[\d,]*(?:\s*(?:to|-|–)\s*\$\d[\d,]*)?\s*[)\]]`)

	reTitleShorthand = regexp.MustCompile(`(\d+(?:\.\d+)?)\s?[Kk]\b`)
)

// ParseAmount pulls a currency string out of free text. It returns ""
// when nothing plausible is found; a missing amount is not an error.
func ParseAmount(text string) string {
	if text == "" {
		return ""
	}

	if m := reAmountSuffixed.FindString(text); m != "" {
		return expandSuffixed(m)
	}
	if m := reAmountWorded.FindString(text); m != "" {
		return expandWorded(m)
	}
	if m := reAmountStandard.FindString(text); m != "" {
		return cleanText(m)
	}
	if m := reAmountBracketed.FindString(text); m != "" {
		m = strings.Trim(m, "()[] ")
		return cleanText(m)
	}
	return ""
}

// AmountFromTitle scans a page title for bare shorthand like "10K" and
// synthesizes a currency string from it.
func AmountFromTitle(title string) string {
	m := reTitleShorthand.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ""
	}
	return formatUSD(int64(n * 1000))
}

func expandSuffixed(m string) string {
	numPart := strings.TrimSpace(strings.TrimPrefix(m, "$"))
	suffix := numPart[len(numPart)-1]
	numPart = strings.TrimSpace(numPart[:len(numPart)-1])

	n, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return cleanText(m)
	}
	switch suffix {
	case 'K', 'k':
		return formatUSD(int64(n * 1_000))
	case 'M', 'm':
		return formatUSD(int64(n * 1_000_000))
	}
	return cleanText(m)
}

func expandWorded(m string) string {
	fields := strings.Fields(m)
	if len(fields) != 2 {
		return cleanText(m)
	}
	numPart := strings.ReplaceAll(strings.TrimPrefix(fields[0], "$"), ",", "")
	n, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return cleanText(m)
	}
	switch strings.ToLower(fields[1]) {
	case "thousand":
		return formatUSD(int64(n * 1_000))
	case "million":
		return formatUSD(int64(n * 1_000_000))
	}
	return cleanText(m)
}

func formatUSD(n int64) string {
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	b.WriteByte('$')
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
