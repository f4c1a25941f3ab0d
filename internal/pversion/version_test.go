// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pversion

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"

	"go.tabsync.dev/internal/here"
)

func TestGet(t *testing.T) {
	originalGitVersion := gitVersion
	t.Cleanup(func() {
		gitVersion = originalGitVersion
		readBuildInfo = debug.ReadBuildInfo
	})

	platform := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)

	tests := []struct {
		name          string
		gitVersion    string
		readBuildInfo func() (info *debug.BuildInfo, ok bool)
		wantInfo      Info
	}{
		{
			name:       "when readBuildInfo() returns not ok",
			gitVersion: "",
			readBuildInfo: func() (info *debug.BuildInfo, ok bool) {
				return nil, false
			},
			wantInfo: Info{
				GitVersion:   "v0.0.0",
				GitTreeState: "dirty",
				GoVersion:    runtime.Version(),
				Platform:     platform,
			},
		},
		{
			name:       "when readBuildInfo() returns ok",
			gitVersion: "9.8.7",
			readBuildInfo: func() (info *debug.BuildInfo, ok bool) {
				return &debug.BuildInfo{
					Settings: []debug.BuildSetting{
						{Key: "vcs.revision", Value: "revision-value"},
						{Key: "vcs.time", Value: "time-value"},
						{Key: "vcs.modified", Value: "anything but 'true'"},
						{Key: "other", Value: "ignored"},
					},
					Deps: []*debug.Module{
						{Path: "github.com/chromedp/chromedp", Version: "v0.10.0"},
						{Path: "github.com/go-rod/rod", Version: "v0.116.2"},
						{Path: "go.uber.org/zap", Version: "v1.27.0"},
					},
				}, true
			},
			wantInfo: Info{
				GitVersion:   "9.8.7",
				Major:        9,
				Minor:        8,
				Patch:        7,
				GitCommit:    "revision-value",
				GitTreeState: "dirty",
				BuildDate:    "time-value",
				GoVersion:    runtime.Version(),
				Platform:     platform,
				Backends:     map[string]string{"chromedp": "v0.10.0", "rod": "v0.116.2"},
			},
		},
		{
			name:       "when readBuildInfo() returns ok but gitVersion is not provided",
			gitVersion: "",
			readBuildInfo: func() (info *debug.BuildInfo, ok bool) {
				return &debug.BuildInfo{
					Settings: []debug.BuildSetting{
						{Key: "vcs.revision", Value: "384850953501b7d66d466b4ca4d13a81bc54a7c3"},
						{Key: "vcs.modified", Value: "true"},
					},
				}, true
			},
			wantInfo: Info{
				GitVersion:   "v0.0.0-38485095-dirty",
				GitCommit:    "384850953501b7d66d466b4ca4d13a81bc54a7c3",
				GitTreeState: "dirty",
				GoVersion:    runtime.Version(),
				Platform:     platform,
			},
		},
		{
			name:       "when gitVersion is a pre-release",
			gitVersion: "v1.2.3-rc.1",
			readBuildInfo: func() (info *debug.BuildInfo, ok bool) {
				return &debug.BuildInfo{
					Settings: []debug.BuildSetting{
						{Key: "vcs.revision", Value: "abc123"},
						{Key: "vcs.modified", Value: "false"},
					},
				}, true
			},
			wantInfo: Info{
				GitVersion:   "v1.2.3-rc.1",
				Major:        1,
				Minor:        2,
				Patch:        3,
				PreRelease:   "rc.1",
				GitCommit:    "abc123",
				GitTreeState: "clean",
				GoVersion:    runtime.Version(),
				Platform:     platform,
			},
		},
		{
			name:       "when gitVersion is not semver",
			gitVersion: "main",
			readBuildInfo: func() (info *debug.BuildInfo, ok bool) {
				return nil, false
			},
			wantInfo: Info{
				GitVersion:   "v0.0.0",
				GitTreeState: "dirty",
				GoVersion:    runtime.Version(),
				Platform:     platform,
			},
		},
	}

	// These tests cannot be done in Parallel due to side effects
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gitVersion = test.gitVersion
			readBuildInfo = test.readBuildInfo

			require.Equal(t, test.wantInfo, Get())
		})
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		GitVersion:   "v1.2.3",
		GitCommit:    "abc123",
		GitTreeState: "clean",
		BuildDate:    "2026-10-18T09:00:00Z",
		GoVersion:    "go1.22.0",
		Platform:     "linux/amd64",
		Backends:     map[string]string{"rod": "v0.116.2", "chromedp": "v0.10.0"},
	}

	require.Equal(t, here.Doc(`
		tabsync v1.2.3 (clean, linux/amd64)
		commit:   abc123
		built:    2026-10-18T09:00:00Z
		go:       go1.22.0
		backend:  chromedp v0.10.0
		backend:  rod v0.116.2
	`), info.String())
}
