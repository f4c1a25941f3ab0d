// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fondsnettest is a scripted imitation of the FONDSNET portal on top of fakebrowser.
//
// Pages take a while to set their titles and some elements render late, so the scenarios only
// pass if they wait for the portal the way they would have to against the real site.
package fondsnettest

import (
	"time"

	"k8s.io/utils/clock"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/scenario/fondsnet"
	"go.tabsync.dev/internal/testutil/fakebrowser"
)

const (
	HomeHandle     = "tab-home"
	LoginHandle    = "tab-login"
	CustomerHandle = "tab-customer"
	ProductHandle  = "tab-product"

	CustomerURL = "https://evolution.fondsnet.com/kunden/4711/uebersicht"
)

// Options change how the portal behaves.
type Options struct {
	Username string
	Password string
	// ErrorOnOverview makes the customer overview show an error ID.
	ErrorOnOverview bool
	// BrokenProduct makes the product page show an error instead of the product.
	BrokenProduct bool
}

type Site struct {
	Browser *fakebrowser.Browser

	UsernameField *fakebrowser.Element
	PasswordField *fakebrowser.Element
	SearchField   *fakebrowser.Element
	AssetClass    *fakebrowser.Element
	// TopPerformerClicks counts clicks on the top performer link, wherever it was rendered.
	TopPerformerClicks int
	// TopPerformerClickedOn names the copy of the link each click landed on, "menu" or "page".
	TopPerformerClickedOn []string
	// SelectedAssetClass is the value of the last option picked in the asset class filter.
	SelectedAssetClass string
}

// New builds the portal described by cfg. The browser starts with one blank tab.
func New(clk clock.PassiveClock, cfg fondsnet.Config, opts Options) *Site {
	b := fakebrowser.New(clk)
	site := &Site{Browser: b}

	b.OpenWindow(HomeHandle, fakebrowser.NewDocument(b, ""))

	dashboard := site.dashboard()
	login := site.login(opts, dashboard)

	home := fakebrowser.NewDocument(b, "").TitleAfter(300*time.Millisecond, fondsnet.TitleHome)
	home.Add(fondsnet.LoginLink, b.NewElement("login link").OnClick(func() {
		b.OpenWindowAfter(200*time.Millisecond, LoginHandle, login)
	}))
	b.Route(cfg.BaseURL, home)

	site.customer(cfg, opts, dashboard)
	site.investment(cfg, opts, dashboard)

	return site
}

func (s *Site) login(opts Options, dashboard *fakebrowser.Document) *fakebrowser.Document {
	b := s.Browser

	failed := fakebrowser.NewDocument(b, fondsnet.TitleLogin).Body("Benutzername oder Passwort ist falsch.")

	login := fakebrowser.NewDocument(b, "").TitleAfter(400*time.Millisecond, fondsnet.TitleLogin)
	s.UsernameField = login.Add(fondsnet.UsernameInput, b.NewElement("username").AppearAfter(600*time.Millisecond))
	s.PasswordField = login.Add(fondsnet.PasswordInput, b.NewElement("password").AppearAfter(600*time.Millisecond))
	login.Add(fondsnet.LoginButton, b.NewElement("login button").WithText("Login").OnClick(func() {
		if s.UsernameField.Value() == opts.Username && s.PasswordField.Value() == opts.Password {
			b.Show(dashboard)
			return
		}
		b.Show(failed)
	}))
	return login
}

func (s *Site) dashboard() *fakebrowser.Document {
	return fakebrowser.NewDocument(s.Browser, "").TitleAfter(800*time.Millisecond, fondsnet.TitleDashboard)
}

func (s *Site) customer(cfg fondsnet.Config, opts Options, dashboard *fakebrowser.Document) {
	b := s.Browser
	c := cfg.Customer

	overview := fakebrowser.NewDocument(b, "").TitleAfter(700*time.Millisecond, c.OverviewTitle())
	overview.Add(fondsnet.PersonLabel, b.NewElement("person label").WithText("Person").AppearAfter(time.Second).
		Within(fondsnet.ParentDiv, b.NewElement("person").WithText("Person\n"+c.Addressed()+"\ngeb. 01.01.1970")))
	body := "Übersicht\nPerson\n" + c.Addressed() + "\nVerträge\nDepots"
	if opts.ErrorOnOverview {
		body += "\nDie Verträge konnten nicht geladen werden. Fehler-ID: 8f3c2a"
	}
	overview.Body(body)

	found := fakebrowser.NewDocument(b, "").TitleAfter(500*time.Millisecond, fondsnet.TitleQuickSearch)
	found.Add(browser.PartialLinkText(c.ListingName()), b.NewElement("customer link").
		WithText(c.ListingName()+" (Kunde)").
		WithAttr("href", CustomerURL).
		OnClick(func() {
			b.OpenWindowAfter(250*time.Millisecond, CustomerHandle, overview)
		}))
	nothing := fakebrowser.NewDocument(b, "").TitleAfter(500*time.Millisecond, fondsnet.TitleQuickSearch).
		Body("Keine Treffer")

	s.SearchField = dashboard.Add(fondsnet.QuickSearch, b.NewElement("quick search"))
	s.SearchField.OnKey(browser.KeyReturn, func() {
		if s.SearchField.Value() == c.FullName() {
			b.Show(found)
			return
		}
		b.Show(nothing)
	})
}

func (s *Site) investment(cfg fondsnet.Config, opts Options, dashboard *fakebrowser.Document) {
	b := s.Browser
	p := cfg.Product

	productBody := p.Heading + "\nFondsdaten\nWertentwicklung"
	if opts.BrokenProduct {
		productBody = "Es ist ein Fehler aufgetreten. Fehler-ID: 12a9"
	}
	product := fakebrowser.NewDocument(b, "Wird geladen").TitleAfter(900*time.Millisecond, fondsnet.TitleProduct).
		Body(productBody)

	// the legacy page sets its own title, which must never be mistaken for the portal's
	legacy := fakebrowser.NewDocument(b, "Top-Performer")
	s.AssetClass = legacy.Add(fondsnet.AssetClass, b.NewElement("asset class").VisibleAfter(2*time.Second))
	s.AssetClass.Within(browser.XPath(".//option[@value='"+p.AssetClassValue+"']"), b.NewElement("option").OnClick(func() {
		s.SelectedAssetClass = p.AssetClassValue
		legacy.Add(browser.LinkText(p.LinkText), b.NewElement("product link").OnClick(func() {
			b.OpenWindowAfter(300*time.Millisecond, ProductHandle, product)
		}))
	}))

	topPerformers := fakebrowser.NewDocument(b, "").TitleAfter(600*time.Millisecond, fondsnet.TitleTopPerformer)
	topPerformers.Add(fondsnet.LegacyFrame, b.NewElement("legacy iframe").AsFrame(legacy))
	topPerformers.Add(fondsnet.TopPerformer, b.NewElement("top performer link").OnClick(func() {
		s.TopPerformerClicks++
		s.TopPerformerClickedOn = append(s.TopPerformerClickedOn, "page")
		b.Show(topPerformers)
	}))

	investment := fakebrowser.NewDocument(b, "").TitleAfter(300*time.Millisecond, fondsnet.TitleInvestment)
	investment.Add(fondsnet.CloseNav, b.NewElement("close nav"))
	investment.Add(fondsnet.OverflowMenu, b.NewElement("overflow menu"))
	investment.Add(fondsnet.FundTools, b.NewElement("fund tools").OnClick(func() {
		investment.Add(fondsnet.TopPerformer, b.NewElement("top performer menu entry").OnClick(func() {
			s.TopPerformerClicks++
			s.TopPerformerClickedOn = append(s.TopPerformerClickedOn, "menu")
			b.Show(topPerformers)
		}))
	}))

	dashboard.Add(fondsnet.HamburgerMenu, b.NewElement("hamburger").OnClick(func() {
		dashboard.Add(fondsnet.InvestmentLink, b.NewElement("investment link").OnClick(func() {
			b.Show(investment)
		}))
	}))
}
