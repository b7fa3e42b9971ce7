package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday 2024-06-12
var bucketRef = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func TestBucketRangeSingleDayBuckets(t *testing.T) {
	from, to, err := BucketRange(BucketToday, bucketRef)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-12", from)
	assert.Equal(t, "2024-06-12", to)

	from, to, err = BucketRange(BucketTomorrow, bucketRef)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-13", from)
	assert.Equal(t, "2024-06-13", to)
}

func TestBucketRangeForwardWindows(t *testing.T) {
	from, to, err := BucketRange(BucketNextThreeDays, bucketRef)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-12", from)
	assert.Equal(t, "2024-06-15", to)

	from, to, err = BucketRange(BucketNextWeek, bucketRef)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-12", from)
	assert.Equal(t, "2024-06-19", to)
}

func TestBucketRangeThisWeekStartsSunday(t *testing.T) {
	from, to, err := BucketRange(BucketThisWeek, bucketRef)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-09", from) // Sunday
	assert.Equal(t, "2024-06-15", to)   // Saturday
}

func TestBucketRangeCalendarSpans(t *testing.T) {
	from, to, err := BucketRange(BucketThisMonth, bucketRef)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-01", from)
	assert.Equal(t, "2024-06-30", to)

	from, to, err = BucketRange(BucketThisYear, bucketRef)
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2024-12-31", to)
}

func TestBucketRangeMonthEndClamps(t *testing.T) {
	// February in a leap year
	ref := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	from, to, err := BucketRange(BucketThisMonth, ref)
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-29", to)
}

func TestBucketRangeUnknownBucket(t *testing.T) {
	_, _, err := BucketRange("last-week", bucketRef)
	assert.Error(t, err)

	_, _, err = BucketRange("", bucketRef)
	assert.Error(t, err)
}
