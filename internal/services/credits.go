package services

import (
	"runtime/debug"
	"strings"
)

// Credit names one third-party module this build links against.
type Credit struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	License string `json:"license,omitempty"`
	URL     string `json:"url"`
}

// Licenses for the direct dependencies; transitive modules are listed
// without one rather than guessed at.
var knownLicenses = map[string]string{
	"github.com/BurntSushi/toml":   "MIT",
	"github.com/glebarez/sqlite":   "BSD-3-Clause",
	"github.com/gofiber/fiber/v2":  "MIT",
	"github.com/google/uuid":       "BSD-3-Clause",
	"github.com/minio/minio-go/v7": "Apache-2.0",
	"gorm.io/driver/postgres":      "MIT",
	"gorm.io/gorm":                 "MIT",
}

// Credits lists the modules compiled into the running binary, read from the
// build info. Returns an empty list when the binary was built without module
// support.
func Credits() []Credit {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return []Credit{}
	}

	credits := make([]Credit, 0, len(info.Deps))
	for _, dep := range info.Deps {
		if dep.Replace != nil {
			dep = dep.Replace
		}
		credits = append(credits, Credit{
			Name:    dep.Path,
			Version: dep.Version,
			License: knownLicenses[dep.Path],
			URL:     "https://" + strings.TrimSuffix(dep.Path, "/"),
		})
	}
	return credits
}
