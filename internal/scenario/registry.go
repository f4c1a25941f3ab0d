// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"fmt"
	"strings"

	"go.tabsync.dev/internal/constable"
)

const ErrUnknownScenario = constable.Error("unknown scenario")

// Registry holds scenarios by name, in registration order.
type Registry struct {
	names  []string
	byName map[string]Scenario
}

func NewRegistry(scenarios ...Scenario) (*Registry, error) {
	r := &Registry{byName: map[string]Scenario{}}
	for _, sc := range scenarios {
		if err := r.Register(sc); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(sc Scenario) error {
	switch {
	case sc.Name == "":
		return fmt.Errorf("scenario with description %q has no name", sc.Description)
	case len(sc.Steps) == 0:
		return fmt.Errorf("scenario %s has no steps", sc.Name)
	}
	if _, ok := r.byName[sc.Name]; ok {
		return fmt.Errorf("scenario %s is registered twice", sc.Name)
	}
	r.names = append(r.names, sc.Name)
	r.byName[sc.Name] = sc
	return nil
}

func (r *Registry) Lookup(name string) (Scenario, bool) {
	sc, ok := r.byName[name]
	return sc, ok
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) All() []Scenario {
	all := make([]Scenario, 0, len(r.names))
	for _, name := range r.names {
		all = append(all, r.byName[name])
	}
	return all
}

// Select returns the named scenarios in the order given, or every scenario when no names are given.
func (r *Registry) Select(names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		return r.All(), nil
	}

	var unknown []string
	selected := make([]Scenario, 0, len(names))
	for _, name := range names {
		sc, ok := r.byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, sc)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownScenario, strings.Join(unknown, ", "), strings.Join(r.names, ", "))
	}
	return selected, nil
}
