// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fondsnet

import (
	"slices"

	"go.tabsync.dev/internal/scenario"
)

const (
	ScenarioSanity                = "sanity"
	ScenarioLogin                 = "login"
	ScenarioLocateCustomer        = "locate-customer"
	ScenarioFilteredProductLookup = "filtered-product-lookup"
)

func Scenarios(cfg Config) []scenario.Scenario {
	return []scenario.Scenario{
		{
			Name:        ScenarioSanity,
			Description: "the home page is reachable and has the expected title",
			Steps:       []scenario.Step{OpenHome(cfg)},
		},
		{
			Name:        ScenarioLogin,
			Description: "sign in and reach the dashboard",
			Steps:       Login(cfg),
		},
		{
			Name:        ScenarioLocateCustomer,
			Description: "find " + cfg.Customer.FullName() + " with the quick search and open the customer overview",
			Steps:       slices.Concat(Login(cfg), LocateCustomer(cfg)),
		},
		{
			Name:        ScenarioFilteredProductLookup,
			Description: "filter the top performers by asset class and open " + cfg.Product.LinkText,
			Steps:       slices.Concat(Login(cfg), FilteredProductLookup(cfg)),
		},
	}
}

func NewRegistry(cfg Config) (*scenario.Registry, error) {
	return scenario.NewRegistry(Scenarios(cfg)...)
}
