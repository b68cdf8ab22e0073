// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const (
	unknownValue     = "unknown"
	commitHashLength = 7
	modulePrefix     = "github.com/"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/paveg/salarydash/internal/version.Version=v0.3.0"
var (
	Version   = "dev"
	BuildDate = unknownValue
	GitCommit = unknownValue
	GoVersion = runtime.Version()
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string   `json:"version"    yaml:"version"`
	BuildDate string   `json:"build_date" yaml:"build_date"`
	GitCommit string   `json:"git_commit" yaml:"git_commit"`
	GoVersion string   `json:"go_version" yaml:"go_version"`
	Dirty     bool     `json:"dirty"      yaml:"dirty"`
	Module    string   `json:"module"     yaml:"module"`
	Deps      []Module `json:"deps"       yaml:"deps"`
}

// Module is a dependency compiled into the binary.
type Module struct {
	Path    string `json:"path"    yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// Info collects build metadata from the ldflags variables and the
// embedded module graph. Only third-party dependencies are listed.
func Info() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: GoVersion,
		Dirty:     strings.HasSuffix(GitCommit, "-dirty"),
		Deps:      []Module{},
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Module = bi.Main.Path
	for _, dep := range bi.Deps {
		if !strings.HasPrefix(dep.Path, modulePrefix) && !strings.Contains(dep.Path, ".") {
			continue
		}
		info.Deps = append(info.Deps, Module{Path: dep.Path, Version: dep.Version})
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.modified" && s.Value == "true" {
			info.Dirty = true
		}
	}
	return info
}

// String renders the metadata for `salarydash version`.
func (b BuildInfo) String() string {
	var sb strings.Builder
	sb.WriteString("salarydash " + b.Version)
	if b.Dirty {
		sb.WriteString(" (dirty)")
	}
	sb.WriteString("\n")

	if b.BuildDate != unknownValue && b.BuildDate != "" {
		fmt.Fprintf(&sb, "  built:  %s\n", b.BuildDate)
	}
	if b.GitCommit != unknownValue && b.GitCommit != "" {
		fmt.Fprintf(&sb, "  commit: %s\n", ShortCommit(b.GitCommit))
	}
	fmt.Fprintf(&sb, "  go:     %s\n", b.GoVersion)
	return sb.String()
}

// ShortCommit truncates a commit hash to its conventional short form.
func ShortCommit(commit string) string {
	commit = strings.TrimSuffix(commit, "-dirty")
	if len(commit) > commitHashLength {
		return commit[:commitHashLength]
	}
	return commit
}

// UserAgent is sent when fetching remote data sources.
func UserAgent() string {
	return "salarydash/" + Version
}
