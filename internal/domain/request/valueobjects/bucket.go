package valueobjects

import "strings"

// Bucket is a named worklist partition.
type Bucket string

const (
	BucketInbox  Bucket = "inbox"
	BucketActive Bucket = "active"
	BucketDone   Bucket = "done"
	BucketAll    Bucket = "all"
)

// ParseBucket normalizes a bucket name: "new" is an alias of inbox and
// anything unrecognized falls back to inbox.
func ParseBucket(s string) Bucket {
	switch Bucket(strings.ToLower(strings.TrimSpace(s))) {
	case BucketActive:
		return BucketActive
	case BucketDone:
		return BucketDone
	case BucketAll:
		return BucketAll
	default:
		return BucketInbox
	}
}

func (b Bucket) String() string {
	return string(b)
}
