// Package buildtime exposes the version stamped into the binary at build.
package buildtime

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed VERSION
var version string

//go:embed revision
var revision string

func Version() string {
	return strings.TrimSpace(version)
}

func Revision() string {
	return strings.TrimSpace(revision)
}

// VersionString is what `dx version` prints.
func VersionString() string {
	return fmt.Sprintf("%s (commit: %s)\n", Version(), Revision())
}
