package config

import "fmt"

var (
	Version    = "dev"
	CommitHash = "n/a"
	BuildTime  = "n/a"
)

// VersionString is reported on startup and in the version response header.
var VersionString = fmt.Sprintf("%s-%s (%s)", Version, CommitHash, BuildTime)
