// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/dut-ailab/advisor-go/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/dut-ailab/advisor-go/internal/buildinfo.Commit=...
var Commit = ""

// Release returns the identifier reported to error tracking, preferring the
// tagged version over a bare commit.
func Release() string {
	switch {
	case Version != "":
		return Version
	case Commit != "":
		return Commit
	default:
		return "dev"
	}
}
