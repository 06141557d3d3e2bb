// Package cachekey names the Redis keys shared between writers and readers.
package cachekey

import "fmt"

// ReportGeneration is bumped on every write that changes the roster or the
// record set. Snapshot keys embed the generation, so bumping it retires every
// cached snapshot at once; the old keys age out through their TTL.
const ReportGeneration = "reports:generation"

func ReportSnapshot(generation, field string) string {
	return fmt.Sprintf("reports:snapshot:%s:%s", generation, field)
}

func Idempotency(route, key string) string {
	return fmt.Sprintf("idemp:%s:%s", route, key)
}
