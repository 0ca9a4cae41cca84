package services

import (
	"strings"

	config "github.com/edufeedback/edu_feedback/configs"
)

// defaultAbusiveWords mirrors the moderation deny-list shipped with the
// product; override with the comma-separated ABUSE_WORDS env variable.
var defaultAbusiveWords = []string{"idiot", "stupid", "dumb", "bastard", "bloody", "fuck", "shit"}

// AbuseFilter is an immutable case-insensitive substring deny-list. It is
// built once at startup and shared read-only across requests.
type AbuseFilter struct {
	words []string
}

func NewAbuseFilter(words []string) *AbuseFilter {
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, defaultAbusiveWords...)
	}
	return &AbuseFilter{words: cleaned}
}

// LoadAbuseFilter builds the filter from the ABUSE_WORDS env override, or the
// default deny-list when unset.
func LoadAbuseFilter() *AbuseFilter {
	raw := config.Config("ABUSE_WORDS")
	if raw == "" {
		return NewAbuseFilter(nil)
	}
	return NewAbuseFilter(strings.Split(raw, ","))
}

// Matches reports whether text contains any deny-listed word, ignoring case.
func (f *AbuseFilter) Matches(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range f.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Words returns a copy of the active deny-list.
func (f *AbuseFilter) Words() []string {
	out := make([]string, len(f.words))
	copy(out, f.words)
	return out
}

// Abuse is the process-wide filter, replaced once by InitModeration at
// startup (tests construct their own).
var Abuse = NewAbuseFilter(nil)

func InitModeration() {
	Abuse = LoadAbuseFilter()
}
