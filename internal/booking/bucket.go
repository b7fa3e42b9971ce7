package booking

import (
	"fmt"
	"time"
)

// DateBucket is a named, server-computed calendar range used for list
// filtering.
type DateBucket string

const (
	BucketToday         DateBucket = "today"
	BucketTomorrow      DateBucket = "tomorrow"
	BucketNextThreeDays DateBucket = "next-three-days"
	BucketNextWeek      DateBucket = "next-week"
	BucketThisWeek      DateBucket = "this-week"
	BucketThisMonth     DateBucket = "this-month"
	BucketThisYear      DateBucket = "this-year"
)

// DateBuckets lists every recognized bucket, in presentation order.
var DateBuckets = []DateBucket{
	BucketToday,
	BucketTomorrow,
	BucketNextThreeDays,
	BucketNextWeek,
	BucketThisWeek,
	BucketThisMonth,
	BucketThisYear,
}

// BucketRange maps a bucket to the inclusive [from, to] date range it
// covers at ref. Weeks start on Sunday. Unrecognized buckets are a
// validation error.
func BucketRange(bucket DateBucket, ref time.Time) (from, to string, err error) {
	utc := ref.UTC()
	today := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	switch bucket {
	case BucketToday:
		from, to = today.Format(DateLayout), today.Format(DateLayout)
	case BucketTomorrow:
		tomorrow := today.AddDate(0, 0, 1)
		from, to = tomorrow.Format(DateLayout), tomorrow.Format(DateLayout)
	case BucketNextThreeDays:
		from, to = today.Format(DateLayout), today.AddDate(0, 0, 3).Format(DateLayout)
	case BucketNextWeek:
		from, to = today.Format(DateLayout), today.AddDate(0, 0, 7).Format(DateLayout)
	case BucketThisWeek:
		weekday := int(today.Weekday())
		start := today.AddDate(0, 0, -weekday)
		end := today.AddDate(0, 0, 6-weekday)
		from, to = start.Format(DateLayout), end.Format(DateLayout)
	case BucketThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		from, to = start.Format(DateLayout), end.Format(DateLayout)
	case BucketThisYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		from, to = start.Format(DateLayout), end.Format(DateLayout)
	default:
		return "", "", fmt.Errorf("invalid date filter %q", bucket)
	}
	return from, to, nil
}
