package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbuseFilterMatches(t *testing.T) {
	filter := NewAbuseFilter(nil)

	tests := []struct {
		name    string
		comment string
		want    bool
	}{
		{"clean comment", "Great lecture, very clear explanations", false},
		{"exact word", "this teacher is an idiot", true},
		{"mixed case", "What a STUPID way to grade", true},
		{"substring inside word", "He made a stupidly hard exam", true},
		{"empty comment", "", false},
		{"whitespace only", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Matches(tt.comment))
		})
	}
}

func TestAbuseFilterCustomWords(t *testing.T) {
	filter := NewAbuseFilter([]string{"  Lame ", "BORING"})

	assert.True(t, filter.Matches("such a lame lecture"))
	assert.True(t, filter.Matches("Boring as always"))
	assert.False(t, filter.Matches("this teacher is an idiot"), "defaults are replaced, not merged")
}

func TestAbuseFilterEmptyListFallsBackToDefaults(t *testing.T) {
	filter := NewAbuseFilter([]string{"  ", ""})

	assert.True(t, filter.Matches("what an idiot"))
	assert.NotEmpty(t, filter.Words())
}
