package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// ModulePath is the import path of this library.
const ModulePath = "github.com/kbukum/arangodb"

// Version overrides the detected version when set at build time.
var Version = ""

// Info describes the library build.
type Info struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Sum       string `json:"sum,omitempty"`
	IsRelease bool   `json:"is_release"`
}

var (
	once   sync.Once
	cached Info
)

// Get returns the library build information.
func Get() Info {
	once.Do(func() {
		bi, _ := debug.ReadBuildInfo()
		cached = resolve(bi, Version)
	})
	return cached
}

func resolve(bi *debug.BuildInfo, override string) Info {
	info := Info{Version: "dev", GoVersion: runtime.Version()}
	if bi != nil {
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		var mod *debug.Module
		if bi.Main.Path == ModulePath {
			mod = &bi.Main
		}
		for _, dep := range bi.Deps {
			if dep.Path == ModulePath {
				mod = dep
				if dep.Replace != nil {
					mod = dep.Replace
				}
				break
			}
		}
		if mod != nil && mod.Version != "" && mod.Version != "(devel)" {
			info.Version = mod.Version
			info.Sum = mod.Sum
		}
	}
	if override != "" {
		info.Version = override
	}
	info.IsRelease = info.Version != "dev" && !strings.Contains(info.Version, "-0.")
	return info
}

// UserAgent is the User-Agent header value sent by the transport.
func UserAgent() string {
	info := Get()
	return fmt.Sprintf("arangodb-go/%s (%s; %s/%s)", info.Version, info.GoVersion, runtime.GOOS, runtime.GOARCH)
}
