package services

import (
	"testing"
	"time"

	"github.com/edufeedback/edu_feedback/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fbAt(rating int, at time.Time) models.Feedback {
	return models.Feedback{Rating: rating, CreatedAt: at}
}

func TestBucketFeedbackByDate(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)

	points := BucketFeedbackByDate([]models.Feedback{
		fbAt(5, day1),
		fbAt(3, day1.Add(4*time.Hour)),
		fbAt(4, day2),
	})

	require.Len(t, points, 2)
	assert.Equal(t, "2026-03-10", points[0].Date)
	assert.Equal(t, 2, points[0].Count)
	assert.InDelta(t, 4.0, points[0].AvgRating, 1e-9)
	assert.Equal(t, "2026-03-12", points[1].Date)
	assert.Equal(t, 1, points[1].Count)
	assert.InDelta(t, 4.0, points[1].AvgRating, 1e-9)
}

func TestBucketFeedbackByDateEmpty(t *testing.T) {
	assert.Empty(t, BucketFeedbackByDate(nil))
}

func TestBucketFeedbackByMonth(t *testing.T) {
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	points := BucketFeedbackByMonth([]models.Feedback{
		fbAt(2, feb),
		fbAt(4, jan),
		fbAt(5, jan.AddDate(0, 0, 10)),
	})

	require.Len(t, points, 2)
	assert.Equal(t, "2026-01", points[0].Month)
	assert.Equal(t, 2, points[0].Count)
	assert.InDelta(t, 4.5, points[0].AvgRating, 1e-9)
	assert.Equal(t, "2026-02", points[1].Month)
	assert.Equal(t, 1, points[1].Count)
}

func TestWindowedImprovement(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-10 * 24 * time.Hour)
	prior := now.Add(-40 * 24 * time.Hour)

	improvement, ok := WindowedImprovement([]models.Feedback{
		fbAt(2, prior),
		fbAt(3, prior.Add(24*time.Hour)),
		fbAt(4, recent),
		fbAt(5, recent.Add(24*time.Hour)),
	}, now)

	require.True(t, ok)
	assert.InDelta(t, 2.0, improvement, 1e-9, "recent mean 4.5 minus prior mean 2.5")
}

func TestWindowedImprovementMissingWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	_, ok := WindowedImprovement([]models.Feedback{
		fbAt(5, now.Add(-5*24*time.Hour)),
	}, now)
	assert.False(t, ok, "no prior window rows")

	_, ok = WindowedImprovement([]models.Feedback{
		fbAt(3, now.Add(-45*24*time.Hour)),
	}, now)
	assert.False(t, ok, "no recent window rows")

	_, ok = WindowedImprovement(nil, now)
	assert.False(t, ok)
}

func TestWindowedImprovementIgnoresRowsOlderThanBothWindows(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ancient := now.Add(-100 * 24 * time.Hour)

	improvement, ok := WindowedImprovement([]models.Feedback{
		fbAt(1, ancient),
		fbAt(3, now.Add(-40*24*time.Hour)),
		fbAt(5, now.Add(-10*24*time.Hour)),
	}, now)

	require.True(t, ok)
	assert.InDelta(t, 2.0, improvement, 1e-9)
}
