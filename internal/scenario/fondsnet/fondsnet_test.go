// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fondsnet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/credentials"
	"go.tabsync.dev/internal/pagesync"
	"go.tabsync.dev/internal/plog"
	"go.tabsync.dev/internal/scenario"
	"go.tabsync.dev/internal/scenario/fondsnet"
	"go.tabsync.dev/internal/scenario/fondsnet/fondsnettest"
	"go.tabsync.dev/internal/testutil/testclock"
)

const (
	testUsername = "makler@example.com"
	testPassword = "geheim!"
)

type fixture struct {
	site   *fondsnettest.Site
	runner *scenario.Runner
	clock  *testclock.SteppingClock
}

func testConfig() fondsnet.Config {
	cfg := fondsnet.DefaultConfig()
	cfg.Credentials = credentials.Static{Username: testUsername, Password: testPassword}
	return cfg
}

func newFixture(t *testing.T, opts fondsnettest.Options) *fixture {
	t.Helper()

	if opts.Username == "" {
		opts.Username, opts.Password = testUsername, testPassword
	}
	clk := testclock.New()
	logger, _ := plog.TestLogger(t)
	return &fixture{
		site:   fondsnettest.New(clk, fondsnet.DefaultConfig(), opts),
		runner: scenario.NewRunner(logger, clk),
		clock:  clk,
	}
}

func (f *fixture) run(t *testing.T, cfg fondsnet.Config, name string) scenario.Result {
	t.Helper()

	registry, err := fondsnet.NewRegistry(cfg)
	require.NoError(t, err)
	sc, ok := registry.Lookup(name)
	require.True(t, ok)

	logger, _ := plog.TestLogger(t)
	s := pagesync.NewSession(f.site.Browser, pagesync.WithClock(f.clock), pagesync.WithLogger(logger))
	return f.runner.Run(context.Background(), sc, s)
}

func requireFailedAt(t *testing.T, result scenario.Result, index int, step string) {
	t.Helper()

	require.False(t, result.Passed())
	var stepErr *scenario.StepError
	require.ErrorAs(t, result.Err(), &stepErr)
	require.Equal(t, index, stepErr.Index, "failed with %v", stepErr)
	require.Equal(t, step, stepErr.Name)
}

func TestRegistry(t *testing.T) {
	registry, err := fondsnet.NewRegistry(fondsnet.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []string{"sanity", "login", "locate-customer", "filtered-product-lookup"}, registry.Names())

	locate, _ := registry.Lookup(fondsnet.ScenarioLocateCustomer)
	require.Equal(t, "find Maximiliane Mustermann with the quick search and open the customer overview", locate.Description)
}

func TestCustomer(t *testing.T) {
	c := fondsnet.DefaultConfig().Customer
	require.Equal(t, "Maximiliane Mustermann", c.FullName())
	require.Equal(t, "Mustermann, Maximiliane", c.ListingName())
	require.Equal(t, "Übersicht ⋅ Maximiliane Mustermann ⋅ Evolution", c.OverviewTitle())
	require.Equal(t, "Frau Maximiliane Mustermann", c.Addressed())
}

func TestSanity(t *testing.T) {
	f := newFixture(t, fondsnettest.Options{})

	result := f.run(t, testConfig(), fondsnet.ScenarioSanity)

	require.True(t, result.Passed(), "%v", result.Err())
	require.Equal(t, "navigate https://www.fondsnet.com", f.site.Browser.Commands()[0])
	require.Equal(t, fondsnettest.HomeHandle, f.site.Browser.ActiveHandle())
}

func TestLogin(t *testing.T) {
	f := newFixture(t, fondsnettest.Options{})

	result := f.run(t, testConfig(), fondsnet.ScenarioLogin)

	require.True(t, result.Passed(), "%v", result.Err())
	require.Equal(t, fondsnettest.LoginHandle, f.site.Browser.ActiveHandle())
	require.Equal(t, testUsername, f.site.UsernameField.Value())
	require.Equal(t, testPassword, f.site.PasswordField.Value())
	// one keystroke per character
	require.Len(t, f.site.PasswordField.Sends(), len(testPassword))
}

func TestLoginFailures(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{})
		cfg := testConfig()
		cfg.Credentials = credentials.Static{Username: testUsername, Password: "falsch"}

		result := f.run(t, cfg, fondsnet.ScenarioLogin)

		requireFailedAt(t, result, 3, "submit login")
		var timeout *pagesync.PageLoadTimeoutError
		require.ErrorAs(t, result.Err(), &timeout)
		require.Equal(t, fondsnet.TitleDashboard, timeout.Expected)
		require.Equal(t, fondsnet.TitleLogin, timeout.LastObserved)
		require.True(t, pagesync.IsTimeout(result.Err()))
	})

	t.Run("missing credentials", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{})
		cfg := testConfig()
		cfg.Credentials = credentials.FromEnv("TABSYNC_TEST_NO_SUCH_USER", "TABSYNC_TEST_NO_SUCH_PASSWORD")

		result := f.run(t, cfg, fondsnet.ScenarioLogin)

		requireFailedAt(t, result, 2, "enter credentials")
		require.ErrorIs(t, result.Err(), credentials.ErrMissingCredentials)
		require.Empty(t, f.site.UsernameField.Value())
	})
}

func TestLocateCustomer(t *testing.T) {
	t.Run("customer exists", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{})

		result := f.run(t, testConfig(), fondsnet.ScenarioLocateCustomer)

		require.True(t, result.Passed(), "%v", result.Err())
		require.Equal(t, "Maximiliane Mustermann", f.site.SearchField.Value())
		require.Equal(t, fondsnettest.CustomerHandle, f.site.Browser.ActiveHandle())
		require.Equal(t, scenario.State{Phase: scenario.Completed}, result.State)
		require.Len(t, result.History, 1+9+1)
	})

	t.Run("no search result", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{})
		cfg := testConfig()
		cfg.Customer = fondsnet.Customer{FirstName: "Erika", LastName: "Musterfrau", Salutation: "Frau"}

		result := f.run(t, cfg, fondsnet.ScenarioLocateCustomer)

		requireFailedAt(t, result, 5, "check search result")
		require.ErrorIs(t, result.Err(), browser.ErrNoSuchElement)
		require.True(t, pagesync.IsElementInteraction(result.Err()))
		require.False(t, pagesync.IsTimeout(result.Err()))
		require.Equal(t, fondsnettest.LoginHandle, f.site.Browser.ActiveHandle(), "no customer tab was opened")
	})

	t.Run("overview shows an error", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{ErrorOnOverview: true})

		result := f.run(t, testConfig(), fondsnet.ScenarioLocateCustomer)

		requireFailedAt(t, result, 8, "check for error marker")
		var failure *scenario.AssertionFailure
		require.ErrorAs(t, result.Err(), &failure)
		require.Equal(t, "Fehler-ID", failure.Expected)
		require.Equal(t, "not contain", failure.Relation)
	})

	t.Run("wrong person", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{})
		cfg := testConfig()
		cfg.Customer.Salutation = "Herr"

		result := f.run(t, cfg, fondsnet.ScenarioLocateCustomer)

		requireFailedAt(t, result, 7, "check customer")
		var failure *scenario.AssertionFailure
		require.ErrorAs(t, result.Err(), &failure)
		require.Equal(t, "Herr Maximiliane Mustermann", failure.Expected)
	})
}

func TestFilteredProductLookup(t *testing.T) {
	t.Run("product opens", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{})

		result := f.run(t, testConfig(), fondsnet.ScenarioFilteredProductLookup)

		require.True(t, result.Passed(), "%v", result.Err())
		require.Equal(t, 2, f.site.TopPerformerClicks)
		require.Equal(t, []string{"menu", "page"}, f.site.TopPerformerClickedOn)
		require.Equal(t, "/produkte/fonds_topperformer.php?anlageklasse=Immobilienfonds", f.site.SelectedAssetClass)
		require.Equal(t, fondsnettest.ProductHandle, f.site.Browser.ActiveHandle())
		require.False(t, f.site.Browser.InFrame())
	})

	t.Run("product page is broken", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{BrokenProduct: true})

		result := f.run(t, testConfig(), fondsnet.ScenarioFilteredProductLookup)

		requireFailedAt(t, result, 8, "check product")
		var failure *scenario.AssertionFailure
		require.ErrorAs(t, result.Err(), &failure)
		require.Equal(t, "Investmentfonds hausInvest", failure.Expected)
	})

	t.Run("unknown asset class", func(t *testing.T) {
		f := newFixture(t, fondsnettest.Options{})
		cfg := testConfig()
		cfg.Product.AssetClassValue = "/produkte/fonds_topperformer.php?anlageklasse=Rohstoffe"

		result := f.run(t, cfg, fondsnet.ScenarioFilteredProductLookup)

		requireFailedAt(t, result, 6, "filter by asset class")
		require.ErrorIs(t, result.Err(), browser.ErrNoSuchElement)
		require.Empty(t, f.site.SelectedAssetClass)
	})
}
