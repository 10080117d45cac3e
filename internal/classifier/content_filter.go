package classifier

import (
	"context"
	"regexp"
	"strings"
)

// SentimentUnclassified is reported by the local filter, which only
// detects spam.
const SentimentUnclassified = "unclassified"

var spamWords = []string{
	"fuck", "fucking", "shit", "bullshit", "asshole", "bitch", "cunt",
	"porn", "porno", "nude", "nudes",
	"casino", "crypto", "viagra", "lottery", "giveaway",
	"spam", "scam", "scammer", "phishing", "malware",
}

// ContentFilter flags spam with regular expressions. It stands in for the
// remote service in environments without one.
type ContentFilter struct {
	wordRegexps         []*regexp.Regexp
	urlPattern          *regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		wordRegexps: make([]*regexp.Regexp, 0, len(spamWords)),
	}
	for _, word := range spamWords {
		f.wordRegexps = append(f.wordRegexps, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	f.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	f.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	f.phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)
	f.repeatedCharPattern = regexp.MustCompile(repeatedCharExpr())
	f.allCapsPattern = regexp.MustCompile(`[A-Z]{5,}`)
	return f
}

// Reason returns why text looks like spam, or "" when it looks clean.
func (f *ContentFilter) Reason(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range f.wordRegexps {
		if re.MatchString(text) {
			return "inappropriate_language"
		}
	}
	if f.urlPattern.MatchString(text) {
		return "url_not_allowed"
	}
	if f.emailPattern.MatchString(text) || f.phonePattern.MatchString(text) {
		return "contact_info_not_allowed"
	}
	if f.repeatedCharPattern.MatchString(text) {
		return "repeated_characters"
	}
	if len(f.allCapsPattern.FindAllString(text, -1)) > 2 {
		return "excessive_caps"
	}
	return ""
}

// RE2 has no backreferences, so runs are spelled out per character.
func repeatedCharExpr() string {
	var b strings.Builder
	b.WriteString(`(?i)(`)
	for c := 'a'; c <= 'z'; c++ {
		b.WriteRune(c)
		b.WriteString(`{4,}|`)
	}
	b.WriteString(`!{4,}|\?{4,}|\.{4,})`)
	return b.String()
}

func (f *ContentFilter) Classify(_ context.Context, text string) (*Verdict, error) {
	return &Verdict{
		IsSpam:    f.Reason(text) != "",
		Sentiment: SentimentUnclassified,
	}, nil
}
