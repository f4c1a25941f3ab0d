// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pagesync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"k8s.io/utils/clock"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/plog"
)

// Options holds every delay and bound a Session uses.
type Options struct {
	// KeyDelay is the pause after each injected character.
	KeyDelay time.Duration

	TitlePollInterval time.Duration
	// TitleTimeout is the bound AwaitTitle uses.
	TitleTimeout time.Duration

	WindowPollInterval time.Duration
	NewWindowTimeout   time.Duration

	// ImplicitWait bounds how long Find keeps looking for a missing element.
	ImplicitWait time.Duration

	VisiblePollInterval time.Duration
	// VisibleTimeout is the bound WaitVisible uses when called with a zero timeout.
	VisibleTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		KeyDelay:            20 * time.Millisecond,
		TitlePollInterval:   50 * time.Millisecond,
		TitleTimeout:        15 * time.Second,
		WindowPollInterval:  50 * time.Millisecond,
		NewWindowTimeout:    10 * time.Second,
		ImplicitWait:        10 * time.Second,
		VisiblePollInterval: 500 * time.Millisecond,
		VisibleTimeout:      30 * time.Second,
	}
}

// FrameContext is where commands are sent: the top-level document or a (possibly nested) frame.
type FrameContext struct {
	path []browser.Locator
}

// TopLevel is the primary document of the active window.
var TopLevel = FrameContext{} //nolint:gochecknoglobals

func (f FrameContext) IsTopLevel() bool {
	return len(f.path) == 0
}

// Path lists the frame locators from the outermost frame inwards.
func (f FrameContext) Path() []browser.Locator {
	return append([]browser.Locator(nil), f.path...)
}

func (f FrameContext) String() string {
	if f.IsTopLevel() {
		return "top-level"
	}
	parts := make([]string, 0, len(f.path))
	for _, loc := range f.path {
		parts = append(parts, loc.String())
	}
	return "frame(" + strings.Join(parts, " > ") + ")"
}

func (f FrameContext) enter(loc browser.Locator) FrameContext {
	path := make([]browser.Locator, 0, len(f.path)+1)
	path = append(path, f.path...)
	return FrameContext{path: append(path, loc)}
}

// Session is the browsing session a scenario runs against.
type Session struct {
	driver browser.Driver
	clock  clock.Clock
	log    plog.Logger
	opts   Options
	frame  FrameContext
}

type Option func(*Session)

func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithLogger(l plog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithOptions(o Options) Option {
	return func(s *Session) { s.opts = o }
}

func NewSession(driver browser.Driver, opts ...Option) *Session {
	s := &Session{
		driver: driver,
		clock:  clock.RealClock{},
		log:    plog.New(),
		opts:   DefaultOptions(),
		frame:  TopLevel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithName("pagesync")
	return s
}

// Driver exposes the underlying capability for diagnostics such as screenshots.
func (s *Session) Driver() browser.Driver {
	return s.driver
}

func (s *Session) Options() Options {
	return s.opts
}

// Frame reports the active frame context.
func (s *Session) Frame() FrameContext {
	return s.frame
}

func (s *Session) Close() error {
	return s.driver.Close()
}

// Navigate loads url in the active window. The frame context becomes TopLevel.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.log.Debug("navigating", "url", url)
	if err := s.driver.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	s.frame = TopLevel
	return nil
}

// Title reads the title of the document in the active frame without waiting.
func (s *Session) Title(ctx context.Context) (string, error) {
	title, err := s.driver.Title(ctx)
	if err != nil {
		return "", fmt.Errorf("reading title: %w", err)
	}
	return title, nil
}
