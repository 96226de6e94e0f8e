package build

import "fmt"

// Overridden at build time with -ldflags "-X github.com/bornholm/darkroom/internal/build.ShortVersion=..."
var (
	ShortVersion   = "dev"
	ProjectVersion = "unknown"
	GitRef         = "unknown"
	BuildDate      = "unknown"
)

var LongVersion = fmt.Sprintf("%s (%s, %s, built %s)", ShortVersion, ProjectVersion, GitRef, BuildDate)
