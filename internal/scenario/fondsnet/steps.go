// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fondsnet

import (
	"context"
	"fmt"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/pagesync"
	"go.tabsync.dev/internal/scenario"
)

// OpenHome loads the public home page.
func OpenHome(cfg Config) scenario.Step {
	return scenario.Step{Name: "open home page", Run: func(ctx context.Context, s *pagesync.Session) error {
		if err := s.Navigate(ctx, cfg.BaseURL); err != nil {
			return err
		}
		return s.AwaitTitle(ctx, TitleHome)
	}}
}

// Login signs in through the login application, which opens in a new tab, and ends on the dashboard.
func Login(cfg Config) []scenario.Step {
	return []scenario.Step{
		OpenHome(cfg),
		{Name: "open login", Run: func(ctx context.Context, s *pagesync.Session) error {
			if _, err := s.FollowNewWindowAfter(ctx, func(ctx context.Context) error {
				return s.Click(ctx, LoginLink)
			}); err != nil {
				return err
			}
			return s.AwaitTitle(ctx, TitleLogin)
		}},
		{Name: "enter credentials", Run: func(ctx context.Context, s *pagesync.Session) error {
			creds, err := cfg.Credentials.Credentials(ctx)
			if err != nil {
				return err
			}
			if err := s.TypeInto(ctx, UsernameInput, creds.Username); err != nil {
				return err
			}
			return s.TypeInto(ctx, PasswordInput, creds.Password)
		}},
		{Name: "submit login", Run: func(ctx context.Context, s *pagesync.Session) error {
			if err := s.Click(ctx, LoginButton); err != nil {
				return err
			}
			return s.AwaitTitle(ctx, TitleDashboard)
		}},
	}
}

// LocateCustomer uses the quick search to open the customer's overview and checks that it shows
// the right person without an error marker. It expects to start on the dashboard.
func LocateCustomer(cfg Config) []scenario.Step {
	c := cfg.Customer
	listing := browser.PartialLinkText(c.ListingName())

	return []scenario.Step{
		{Name: "quick search", Run: func(ctx context.Context, s *pagesync.Session) error {
			field, err := s.Find(ctx, QuickSearch)
			if err != nil {
				return err
			}
			if err := s.InjectText(ctx, field, c.FullName()); err != nil {
				return err
			}
			if err := s.PressKey(ctx, field, browser.KeyReturn); err != nil {
				return err
			}
			return s.AwaitTitle(ctx, TitleQuickSearch)
		}},
		{Name: "check search result", Run: func(ctx context.Context, s *pagesync.Session) error {
			href, err := s.Attribute(ctx, listing, "href")
			if err != nil {
				return err
			}
			return scenario.AssertContains("customer link", "/kunden/", href)
		}},
		{Name: "open customer", Run: func(ctx context.Context, s *pagesync.Session) error {
			if _, err := s.FollowNewWindowAfter(ctx, func(ctx context.Context) error {
				return s.Click(ctx, listing)
			}); err != nil {
				return err
			}
			return s.AwaitTitle(ctx, c.OverviewTitle())
		}},
		{Name: "check customer", Run: func(ctx context.Context, s *pagesync.Session) error {
			label, err := s.Find(ctx, PersonLabel)
			if err != nil {
				return err
			}
			person, err := s.FindWithin(ctx, label, ParentDiv)
			if err != nil {
				return err
			}
			text, err := person.Text(ctx)
			if err != nil {
				return &pagesync.ElementInteractionError{Op: "read text", Locator: ParentDiv, Err: err}
			}
			return scenario.AssertContains("person details", c.Addressed(), text)
		}},
		checkNoErrorID(),
	}
}

func checkNoErrorID() scenario.Step {
	return scenario.Step{Name: "check for error marker", Run: func(ctx context.Context, s *pagesync.Session) error {
		text, err := s.Text(ctx, WholeDocument)
		if err != nil {
			return err
		}
		return scenario.AssertNotContains("page text", "Fehler-ID", text)
	}}
}

// FilteredProductLookup navigates to the top performer list, filters it by asset class inside the
// legacy iframe and opens the product in a new tab. It expects to start on the dashboard.
func FilteredProductLookup(cfg Config) []scenario.Step {
	p := cfg.Product

	return []scenario.Step{
		{Name: "open investment", Run: func(ctx context.Context, s *pagesync.Session) error {
			if err := clickAll(ctx, s, HamburgerMenu, InvestmentLink); err != nil {
				return err
			}
			return s.AwaitTitle(ctx, TitleInvestment)
		}},
		{Name: "open top performers", Run: func(ctx context.Context, s *pagesync.Session) error {
			if err := clickAll(ctx, s, CloseNav, OverflowMenu, FundTools, TopPerformer); err != nil {
				return err
			}
			// The first click renders the top performer page, so the link is looked up again
			// instead of reusing the menu entry. Clicking it reloads the page, which also closes
			// the overflow menu.
			if err := s.Click(ctx, TopPerformer); err != nil {
				return fmt.Errorf("click top performer again: %w", err)
			}
			return s.AwaitTitle(ctx, TitleTopPerformer)
		}},
		{Name: "filter by asset class", Run: func(ctx context.Context, s *pagesync.Session) error {
			if err := s.EnterFrame(ctx, LegacyFrame); err != nil {
				return err
			}
			if _, err := s.WaitVisible(ctx, AssetClass, 0); err != nil {
				return err
			}
			return s.SelectByValue(ctx, AssetClass, p.AssetClassValue)
		}},
		{Name: "open product", Run: func(ctx context.Context, s *pagesync.Session) error {
			if _, err := s.FollowNewWindowAfter(ctx, func(ctx context.Context) error {
				return s.Click(ctx, browser.LinkText(p.LinkText))
			}); err != nil {
				return err
			}
			return s.AwaitTitle(ctx, TitleProduct)
		}},
		{Name: "check product", Run: func(ctx context.Context, s *pagesync.Session) error {
			text, err := s.Text(ctx, WholeDocument)
			if err != nil {
				return err
			}
			return scenario.AssertContains("page text", p.Heading, text)
		}},
	}
}

func clickAll(ctx context.Context, s *pagesync.Session, locs ...browser.Locator) error {
	for i, loc := range locs {
		if err := s.Click(ctx, loc); err != nil {
			return fmt.Errorf("click %d of %d: %w", i+1, len(locs), err)
		}
	}
	return nil
}
