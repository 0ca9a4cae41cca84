package services

import (
	"sort"
	"time"

	"github.com/edufeedback/edu_feedback/models"
)

type TrendPoint struct {
	Date      string  `json:"date"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avgRating"`
}

type MonthlyPoint struct {
	Month     string  `json:"month"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avgRating"`
}

type ratingBucket struct {
	count int
	sum   int
}

// BucketFeedbackByDate groups feedback rows by calendar date, oldest first.
func BucketFeedbackByDate(rows []models.Feedback) []TrendPoint {
	buckets := make(map[string]*ratingBucket)
	for _, fb := range rows {
		key := fb.CreatedAt.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &ratingBucket{}
			buckets[key] = b
		}
		b.count++
		b.sum += fb.Rating
	}

	points := make([]TrendPoint, 0, len(buckets))
	for date, b := range buckets {
		points = append(points, TrendPoint{
			Date:      date,
			Count:     b.count,
			AvgRating: float64(b.sum) / float64(b.count),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// BucketFeedbackByMonth groups feedback rows by YYYY-MM, oldest first.
func BucketFeedbackByMonth(rows []models.Feedback) []MonthlyPoint {
	buckets := make(map[string]*ratingBucket)
	for _, fb := range rows {
		key := fb.CreatedAt.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &ratingBucket{}
			buckets[key] = b
		}
		b.count++
		b.sum += fb.Rating
	}

	points := make([]MonthlyPoint, 0, len(buckets))
	for month, b := range buckets {
		points = append(points, MonthlyPoint{
			Month:     month,
			Count:     b.count,
			AvgRating: float64(b.sum) / float64(b.count),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}

// ImprovementWindow is the period used on each side of the most-improved
// comparison: mean rating over the trailing window minus the mean over the
// window before it.
const ImprovementWindow = 30 * 24 * time.Hour

// WindowedImprovement computes the period-over-period rating delta for one
// teacher's feedback rows. ok is false when either window has no rows, in
// which case no meaningful comparison exists and the teacher is skipped.
func WindowedImprovement(rows []models.Feedback, now time.Time) (improvement float64, ok bool) {
	recentStart := now.Add(-ImprovementWindow)
	priorStart := now.Add(-2 * ImprovementWindow)

	var recent, prior ratingBucket
	for _, fb := range rows {
		switch {
		case !fb.CreatedAt.Before(recentStart):
			recent.count++
			recent.sum += fb.Rating
		case !fb.CreatedAt.Before(priorStart):
			prior.count++
			prior.sum += fb.Rating
		}
	}

	if recent.count == 0 || prior.count == 0 {
		return 0, false
	}

	recentAvg := float64(recent.sum) / float64(recent.count)
	priorAvg := float64(prior.sum) / float64(prior.count)
	return recentAvg - priorAvg, true
}
