// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

// errUnsupportedVersion is returned for an index written by a version of tabsync we do not understand.
var errUnsupportedVersion = errors.New("unsupported artifacts index version")

const (
	apiVersion = "artifacts.tabsync.dev/v1alpha1"
	apiKind    = "FailureIndex"

	// maxEntries is how many failures the index remembers. Older entries are dropped, their directories are kept.
	maxEntries = 200
)

type (
	// index is the object which is YAML-serialized to form the contents of the index file.
	index struct {
		metav1.TypeMeta
		Entries []Entry `json:"failures"`
	}

	// Entry is one captured failure.
	Entry struct {
		RunID     string `json:"runID"`
		Scenario  string `json:"scenario"`
		Directory string `json:"directory"`
		Error     string `json:"error,omitempty"`
		// CapturedAt has a resolution of one second.
		CapturedAt metav1.Time `json:"capturedAt"`
	}
)

// ReadIndex returns the failures listed in the index of the artifacts directory dir, oldest first.
func ReadIndex(dir string) ([]Entry, error) {
	idx, err := readIndex(filepath.Join(dir, indexFileName))
	if err != nil {
		return nil, err
	}
	return idx.Entries, nil
}

// readIndex loads an index from disk. A missing file is an empty index.
func readIndex(path string) (*index, error) {
	indexYAML, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return emptyIndex(), nil
		}
		return nil, fmt.Errorf("could not read index file: %w", err)
	}

	var idx index
	if err := yaml.Unmarshal(indexYAML, &idx); err != nil {
		return nil, fmt.Errorf("invalid index file: %w", err)
	}

	if idx.APIVersion != apiVersion || idx.Kind != apiKind {
		return nil, fmt.Errorf("%w: %#v", errUnsupportedVersion, idx.TypeMeta)
	}
	return &idx, nil
}

func emptyIndex() *index {
	return &index{
		TypeMeta: metav1.TypeMeta{APIVersion: apiVersion, Kind: apiKind},
		Entries:  make([]Entry, 0, 1),
	}
}

func (i *index) writeTo(path string) error {
	indexYAML, err := yaml.Marshal(i)
	if err == nil {
		err = os.WriteFile(path, indexYAML, 0o600)
	}
	return err
}

// normalized returns a copy sorted by capture time that holds at most maxEntries of the newest entries.
func (i *index) normalized() *index {
	result := emptyIndex()
	result.Entries = append(result.Entries, i.Entries...)

	sort.SliceStable(result.Entries, func(a, b int) bool {
		return result.Entries[a].CapturedAt.Before(&result.Entries[b].CapturedAt)
	})

	if n := len(result.Entries); n > maxEntries {
		result.Entries = result.Entries[n-maxEntries:]
	}
	return result
}
