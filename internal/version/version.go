// Package version holds the converter's version information.
package version

import "fmt"

// Version is the current semantic version.
// Overridable at build time via -ldflags "-X ...version.Version=x.y.z".
var Version = "1.0.0"

// Display returns a formatted version string for user-facing output.
func Display() string {
	return fmt.Sprintf("v%s", Version)
}
