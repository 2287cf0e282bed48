// Package buildinfo carries the values stamped in with -ldflags -X.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("yaaade %s (commit=%s, date=%s)", Version, Commit, Date)
}
