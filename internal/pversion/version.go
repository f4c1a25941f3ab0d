// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pversion reports what code a tabsync binary was built from.
package pversion

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/coreos/go-semver/semver"
	k8sstrings "k8s.io/utils/strings"
)

// readBuildInfo is meant to be overwritten by tests.
//
//nolint:gochecknoglobals // these are swapped during unit tests.
var readBuildInfo = debug.ReadBuildInfo

// gitVersion is set using a linker flag
// -ldflags "-X 'go.tabsync.dev/internal/pversion.gitVersion=v1.2.3'"
// (or set for unit tests).
//
//nolint:gochecknoglobals // these are swapped during unit tests.
var gitVersion string

// backendModules are the browser automation libraries whose versions are worth reporting.
//
//nolint:gochecknoglobals
var backendModules = map[string]string{
	"github.com/chromedp/chromedp": "chromedp",
	"github.com/tebeka/selenium":   "webdriver",
	"github.com/go-rod/rod":        "rod",
}

type Info struct {
	GitVersion   string `json:"gitVersion"`
	Major        int64  `json:"major"`
	Minor        int64  `json:"minor"`
	Patch        int64  `json:"patch"`
	PreRelease   string `json:"preRelease,omitempty"`
	GitCommit    string `json:"gitCommit,omitempty"`
	GitTreeState string `json:"gitTreeState"`
	BuildDate    string `json:"buildDate,omitempty"`
	GoVersion    string `json:"goVersion"`
	Platform     string `json:"platform"`
	// Backends maps each browser backend to the version of the library it was built with.
	Backends map[string]string `json:"backends,omitempty"`
}

// Get returns the version of the running binary, from the linker flag and Go's VCS build information.
func Get() Info {
	info := Info{
		GitVersion:   "v0.0.0",
		GitTreeState: "dirty",
		GoVersion:    runtime.Version(),
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if v, err := semver.NewVersion(strings.TrimPrefix(gitVersion, "v")); err == nil && v != nil {
		info.GitVersion = gitVersion
		info.Major, info.Minor, info.Patch = v.Major, v.Minor, v.Patch
		info.PreRelease = string(v.PreRelease)
	}

	if buildInfo, ok := readBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.GitCommit = setting.Value
			case "vcs.time":
				info.BuildDate = setting.Value
			case "vcs.modified":
				if setting.Value == "false" {
					info.GitTreeState = "clean"
				}
			}
		}
		for _, dep := range buildInfo.Deps {
			if backend, ok := backendModules[dep.Path]; ok {
				if info.Backends == nil {
					info.Backends = map[string]string{}
				}
				info.Backends[backend] = dep.Version
			}
		}
	}

	if info.GitVersion == "v0.0.0" && info.GitCommit != "" {
		info.GitVersion += fmt.Sprintf("-%s-%s",
			k8sstrings.ShortenString(info.GitCommit, 8),
			info.GitTreeState)
	}

	return info
}

// String is the multi-line form printed by "tabsync version".
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tabsync %s (%s, %s)\n", i.GitVersion, i.GitTreeState, i.Platform)
	if i.GitCommit != "" {
		fmt.Fprintf(&sb, "commit:   %s\n", i.GitCommit)
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, "built:    %s\n", i.BuildDate)
	}
	fmt.Fprintf(&sb, "go:       %s\n", i.GoVersion)

	backends := make([]string, 0, len(i.Backends))
	for name := range i.Backends {
		backends = append(backends, name)
	}
	sort.Strings(backends)
	for _, name := range backends {
		fmt.Fprintf(&sb, "backend:  %s %s\n", name, i.Backends[name])
	}
	return sb.String()
}
