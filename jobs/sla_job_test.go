package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoubtSLADays(t *testing.T) {
	t.Setenv("DOUBT_SLA_DAYS", "")
	assert.Equal(t, DefaultDoubtSLADays, doubtSLADays())

	t.Setenv("DOUBT_SLA_DAYS", "9")
	assert.Equal(t, 9, doubtSLADays())

	t.Setenv("DOUBT_SLA_DAYS", "not-a-number")
	assert.Equal(t, DefaultDoubtSLADays, doubtSLADays())

	t.Setenv("DOUBT_SLA_DAYS", "-3")
	assert.Equal(t, DefaultDoubtSLADays, doubtSLADays())
}
