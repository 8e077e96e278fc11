// Package version records the build version stamped into the binary.
package version

// Version is the backend version reported by the version command and the
// health endpoint. Overridden at release time:
//
//	go build -ldflags "-X github.com/cortex-kb/cortex/internal/version.Version=0.3.0"
var Version = "0.0.0-dev"
