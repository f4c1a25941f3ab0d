// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fondsnet contains the scenarios run against the FONDSNET broker portal.
//
// The public site links to a separate login application that opens in a new tab. Everything
// after the login happens in the "Evolution" portal, whose pages announce themselves through
// their titles. Parts of the portal are legacy pages rendered inside an iframe.
package fondsnet

import (
	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/credentials"
)

const DefaultBaseURL = "https://www.fondsnet.com"

// Page titles, compared exactly.
const (
	TitleHome         = "FONDSNET - Service. Kompetenz. Innovation."
	TitleLogin        = "Anmeldung"
	TitleDashboard    = "Dashboard ⋅ Evolution"
	TitleQuickSearch  = "Schnellsuche ⋅ Evolution"
	TitleInvestment   = "Investment"
	TitleTopPerformer = "Top-Performer ⋅ Evolution"
	// TitleProduct is the title of a product detail page, which sets none.
	TitleProduct = ""
)

// Locators of the portal's elements.
//
//nolint:gochecknoglobals
var (
	LoginLink      = browser.ClassName("login-widget__link")
	UsernameInput  = browser.ID("mat-input-0")
	PasswordInput  = browser.ID("mat-input-1")
	LoginButton    = browser.XPath("//button[contains(text(), 'Login')]")
	QuickSearch    = browser.ID("clr-form-control-1")
	PersonLabel    = browser.XPath("//ancestor::div[contains(text(), 'Person')]")
	ParentDiv      = browser.XPath("parent::div")
	WholeDocument  = browser.XPath("/*")
	HamburgerMenu  = browser.ClassName("header-hamburger-trigger")
	InvestmentLink = browser.LinkText("Investment")
	CloseNav       = browser.ClassName("clr-nav-close")
	OverflowMenu   = browser.ClassName("header-overflow-trigger")
	FundTools      = browser.XPath("//clr-vertical-nav-group[@title='Fondstools']")
	TopPerformer   = browser.LinkText("Top-Performer")
	LegacyFrame    = browser.XPath("//iframe[@name='spa-legacy-iframe']")
	AssetClass     = browser.ID("anlageklasse")
)

type Customer struct {
	FirstName  string
	LastName   string
	Salutation string
}

// FullName is how the quick search is queried, "Maximiliane Mustermann".
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ListingName is how search results list the customer, "Mustermann, Maximiliane".
func (c Customer) ListingName() string {
	return c.LastName + ", " + c.FirstName
}

// OverviewTitle is the title of the customer's overview page.
func (c Customer) OverviewTitle() string {
	return "Übersicht ⋅ " + c.FullName() + " ⋅ Evolution"
}

// Addressed is how the overview page addresses the customer, "Frau Maximiliane Mustermann".
func (c Customer) Addressed() string {
	return c.Salutation + " " + c.FullName()
}

type Product struct {
	// AssetClassValue is the value of the option picked in the asset class filter.
	AssetClassValue string
	// LinkText is the text of the product link in the filtered list.
	LinkText string
	// Heading must appear on the product page.
	Heading string
}

type Config struct {
	BaseURL     string
	Credentials credentials.Provider
	Customer    Customer
	Product     Product
}

// DefaultConfig returns the portal's test data. Credentials are read from the
// FONDSNET_USERNAME and FONDSNET_PASSWORD environment variables.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Credentials: credentials.FromEnv(credentials.DefaultUsernameEnvVarName, credentials.DefaultPasswordEnvVarName),
		Customer: Customer{
			FirstName:  "Maximiliane",
			LastName:   "Mustermann",
			Salutation: "Frau",
		},
		Product: Product{
			AssetClassValue: "/produkte/fonds_topperformer.php?anlageklasse=Immobilienfonds",
			LinkText:        "hausInvest",
			Heading:         "Investmentfonds hausInvest",
		},
	}
}
