// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgbrowser "github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"k8s.io/utils/clock"
	"k8s.io/utils/ptr"

	"go.tabsync.dev/internal/artifacts"
	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/browser/backends"
	"go.tabsync.dev/internal/config"
	"go.tabsync.dev/internal/here"
	"go.tabsync.dev/internal/pagesync"
	"go.tabsync.dev/internal/plog"
	"go.tabsync.dev/internal/scenario"
	"go.tabsync.dev/internal/scenario/fondsnet"
)

type runDeps struct {
	loadConfig   func(ctx context.Context, path string) (*config.Config, error)
	applyLogSpec func(ctx context.Context, spec plog.LogSpec) error
	openDriver   func(ctx context.Context, cfg *config.Config, log plog.Logger) (browser.Driver, error)
	openFile     func(path string) error
	clock        clock.Clock
	log          plog.Logger
}

func runRealDeps() runDeps {
	return runDeps{
		loadConfig:   loadConfig,
		applyLogSpec: applyLogSpec,
		openDriver:   backends.Open,
		openFile:     pkgbrowser.OpenFile,
		clock:        clock.RealClock{},
		log:          plog.New(),
	}
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(newRunCommand(runRealDeps()))
}

func applyLogSpec(ctx context.Context, spec plog.LogSpec) error {
	return plog.ValidateAndSetLogLevelAndFormatGlobally(ctx, logSpecFor(spec, term.IsTerminal(int(os.Stderr.Fd()))))
}

// logSpecFor switches to human readable logs on a terminal unless a format was configured.
func logSpecFor(spec plog.LogSpec, terminal bool) plog.LogSpec {
	if spec.Format == "" && terminal {
		spec.Format = plog.FormatCLI
	}
	return spec
}

type runFlags struct {
	configPath    string
	driver        string
	headless      bool
	webDriverURL  string
	baseURL       string
	artifactsDir  string
	logLevel      string
	reuseSession  bool
	openArtifacts bool
}

func newRunCommand(deps runDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios against the portal",
		Long: here.Doc(`
			Run the named scenarios one after the other, or all of them when none are named.

			Every scenario gets a fresh browser unless --reuse-session is set. A failed scenario
			does not stop the ones after it. Screenshots and page sources of failures are saved
			below the artifacts directory.
		`),
		SilenceUsage: true, // do not print usage message when commands fail
	}
	flags := &runFlags{}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Path to a tabsync configuration file (default: built-in defaults)")
	f.StringVar(&flags.driver, "driver", "", "Browser backend: chromedp, webdriver or rod (default: from config, else chromedp)")
	f.BoolVar(&flags.headless, "headless", false, "Run the browser without a window")
	f.StringVar(&flags.webDriverURL, "webdriver-url", "", "WebDriver server for the webdriver backend, e.g. http://localhost:4444/wd/hub")
	f.StringVar(&flags.baseURL, "base-url", "", "Home page of the portal under test")
	f.StringVar(&flags.artifactsDir, "artifacts-dir", "", "Directory for failure screenshots and page sources")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: info, debug, trace or all (default: warnings and errors only)")
	f.BoolVar(&flags.reuseSession, "reuse-session", false, "Run all scenarios in one browser session")
	f.BoolVar(&flags.openArtifacts, "open-artifacts", false, "Open the artifacts directory when a scenario failed")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runScenarios(ctx, cmd.OutOrStdout(), deps, flags, cmd.Flags(), args)
	}

	return cmd
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.FromPath(ctx, path)
}

func runScenarios(ctx context.Context, out io.Writer, deps runDeps, flags *runFlags, fs *pflag.FlagSet, names []string) error {
	cfg, err := deps.loadConfig(ctx, flags.configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := applyFlags(cfg, flags, fs); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if err := deps.applyLogSpec(ctx, cfg.Log); err != nil {
		return fmt.Errorf("could not configure logging: %w", err)
	}

	registry, err := fondsnet.NewRegistry(cfg.FondsnetConfig())
	if err != nil {
		return err
	}
	scenarios, err := registry.Select(names...)
	if err != nil {
		return err
	}

	log := deps.log
	dumper := artifacts.New(cfg.ArtifactsDir, log, deps.clock)

	runner := scenario.NewRunner(log, deps.clock)
	runner.FreshSessionPerScenario = ptr.Deref(cfg.SessionPerScenario, true)
	runner.OnFailure = dumper.Hook()

	sessionOpts := cfg.SessionOptions()
	factory := scenario.SessionFactoryFunc(func(ctx context.Context) (*pagesync.Session, error) {
		d, err := deps.openDriver(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return pagesync.NewSession(d,
			pagesync.WithClock(deps.clock),
			pagesync.WithLogger(log),
			pagesync.WithOptions(sessionOpts),
		), nil
	})

	log.Info("running scenarios", "driver", cfg.Driver, "count", len(scenarios), "sessionPerScenario", runner.FreshSessionPerScenario)

	results := runner.RunAll(ctx, factory, scenarios)

	failed := 0
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(out, "PASS  %s (%s)\n", r.Scenario, r.Duration().Round(time.Millisecond))
			continue
		}
		failed++
		fmt.Fprintf(out, "FAIL  %s (%s): %v\n", r.Scenario, r.Duration().Round(time.Millisecond), r.Err())
	}

	if failed == 0 {
		return nil
	}

	fmt.Fprintf(out, "failure artifacts: %s\n", dumper.Dir())
	if flags.openArtifacts {
		if err := deps.openFile(dumper.Dir()); err != nil {
			log.WarningErr("could not open the artifacts directory", err, "directory", dumper.Dir())
		}
	}
	return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
}

// applyFlags overrides cfg with every flag that was set on the command line.
func applyFlags(cfg *config.Config, flags *runFlags, fs *pflag.FlagSet) error {
	changed := fs.Changed
	if changed("driver") {
		cfg.Driver = config.Driver(flags.driver)
	}
	if changed("headless") {
		cfg.Headless = ptr.To(flags.headless)
	}
	if changed("webdriver-url") {
		cfg.WebDriverURL = flags.webDriverURL
	}
	if changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if changed("artifacts-dir") {
		cfg.ArtifactsDir = flags.artifactsDir
	}
	if changed("log-level") {
		cfg.Log.Level = plog.LogLevel(flags.logLevel)
	}
	if changed("reuse-session") {
		cfg.SessionPerScenario = ptr.To(!flags.reuseSession)
	}
	return config.Complete(cfg)
}
