package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"             //  via ldflags
	GitCommit = "none"            //  via ldflags
	BuildDate = "unknown"         //  via ldflags
	GoVersion = runtime.Version() // Runtime
)

type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	OS        string
	Arch      string
}

func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf(
		"cronman version %s\n  Git commit:  %s\n  Built:       %s\n  Go version:  %s\n  OS/Arch:     %s/%s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.OS, i.Arch)
}
