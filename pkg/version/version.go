// Package version reports build information for mybundle.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set at build time:
//
//	go build -ldflags "-X 'mybundle/pkg/version.Version=1.2.3' -X 'mybundle/pkg/version.Commit=abcdefg' -X 'mybundle/pkg/version.BuildTime=2024-04-27T15:04:05Z'"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// AppName is the binary and logger name.
const AppName = "mybundle"

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a single line such as
// "mybundle 1.2.3 (commit abcdefg, built 2024-04-27T15:04:05Z, go1.23.1 linux/amd64)".
func (i Info) String() string {
	details := []string{"commit " + i.GitCommit}
	if i.BuildTime != "unknown" {
		details = append(details, "built "+i.BuildTime)
	}
	details = append(details, i.GoVersion+" "+i.Platform)
	return fmt.Sprintf("%s %s (%s)", AppName, i.Version, strings.Join(details, ", "))
}
