// Package version exposes build metadata set through -ldflags.
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/ndewijer/Finance-Tracker-Backend/internal/version.Version=1.2.0"
var Version = "dev"
