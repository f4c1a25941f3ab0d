// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fakebrowser is a scripted, in-memory browser.Driver for unit tests.
//
// Documents and elements are declared up front with the exact locators they answer to. Anything
// asynchronous in a real browser (a tab opening, a title re-rendering, an element appearing) is
// expressed as a delay on the injected clock, so tests that pair it with testclock run instantly
// and deterministically.
package fakebrowser

import (
	"context"
	"fmt"
	"html"
	"slices"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"go.tabsync.dev/internal/browser"
)

var _ browser.Driver = &Browser{}

type Browser struct {
	mu sync.Mutex

	clock   clock.PassiveClock
	windows []*window
	active  *window
	frames  []*Document
	routes  map[string]*Document
	closed  bool

	titleErr               error
	defaultContentSwitches int
	commands               []string
}

type window struct {
	handle   string
	doc      *Document
	appearAt time.Time
}

func New(clk clock.PassiveClock) *Browser {
	return &Browser{clock: clk, routes: map[string]*Document{}}
}

// Route makes Navigate(url) show doc.
func (b *Browser) Route(url string, doc *Document) *Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[url] = doc
	return b
}

// OpenWindow opens a window right away. The first window becomes the active one.
func (b *Browser) OpenWindow(handle string, doc *Document) {
	b.OpenWindowAfter(0, handle, doc)
}

// OpenWindowAfter opens a window that shows up in WindowHandles once delay has passed.
// It is meant to be called from an element's click handler.
func (b *Browser) OpenWindowAfter(delay time.Duration, handle string, doc *Document) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := &window{handle: handle, doc: doc, appearAt: b.clock.Now().Add(delay)}
	doc.attach(w.appearAt)
	b.windows = append(b.windows, w)
	if b.active == nil {
		b.active = w
	}
}

// Show replaces the document of the active window, as a same-tab navigation would.
func (b *Browser) Show(doc *Document) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.showLocked(doc)
}

func (b *Browser) showLocked(doc *Document) {
	b.active.doc.detach()
	b.active.doc = doc
	doc.attach(b.clock.Now())
	b.frames = nil
}

// FailTitle makes every following Title call return err.
func (b *Browser) FailTitle(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.titleErr = err
}

// Commands lists the driver calls made so far, for example "title" or "switch window tab-2".
func (b *Browser) Commands() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.commands)
}

func (b *Browser) DefaultContentSwitches() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.defaultContentSwitches
}

func (b *Browser) ActiveHandle() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ""
	}
	return b.active.handle
}

func (b *Browser) InFrame() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.frames) > 0
}

func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Browser) record(format string, args ...any) {
	b.commands = append(b.commands, fmt.Sprintf(format, args...))
}

func (b *Browser) activeDocLocked() (*Document, error) {
	if b.active == nil {
		return nil, browser.ErrNoSuchWindow
	}
	if n := len(b.frames); n > 0 {
		return b.frames[n-1], nil
	}
	return b.active.doc, nil
}

func (b *Browser) Navigate(_ context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("navigate %s", url)

	if b.active == nil {
		return browser.ErrNoSuchWindow
	}
	doc, ok := b.routes[url]
	if !ok {
		doc = NewDocument(b, "")
	}
	b.showLocked(doc)
	return nil
}

func (b *Browser) FindElement(_ context.Context, loc browser.Locator) (browser.Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("find %s", loc)

	doc, err := b.activeDocLocked()
	if err != nil {
		return nil, err
	}
	return doc.lookupLocked(loc)
}

func (b *Browser) WindowHandles(_ context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("window handles")

	now := b.clock.Now()
	var handles []string
	for _, w := range b.windows {
		if !w.appearAt.After(now) {
			handles = append(handles, w.handle)
		}
	}
	return handles, nil
}

func (b *Browser) CurrentWindowHandle(_ context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return "", browser.ErrNoSuchWindow
	}
	return b.active.handle, nil
}

func (b *Browser) SwitchToWindow(_ context.Context, handle string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("switch window %s", handle)

	now := b.clock.Now()
	for _, w := range b.windows {
		if w.handle == handle && !w.appearAt.After(now) {
			b.active = w
			b.frames = nil
			return nil
		}
	}
	return fmt.Errorf("%w: %s", browser.ErrNoSuchWindow, handle)
}

func (b *Browser) SwitchToFrame(_ context.Context, frame browser.Element) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	el, ok := frame.(*Element)
	if !ok || el.frame == nil {
		return browser.ErrNoSuchFrame
	}
	b.record("switch frame %s", el.name)
	if err := el.checkLocked(); err != nil {
		return err
	}
	b.frames = append(b.frames, el.frame)
	return nil
}

func (b *Browser) SwitchToDefaultContent(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("switch default content")

	b.frames = nil
	b.defaultContentSwitches++
	return nil
}

// Title returns the title of the active frame's document, so a caller that forgets to leave a
// frame sees the frame's title instead of the page's.
func (b *Browser) Title(_ context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("title")

	if b.titleErr != nil {
		return "", b.titleErr
	}
	doc, err := b.activeDocLocked()
	if err != nil {
		return "", err
	}
	return doc.titleAt(b.clock.Now()), nil
}

func (b *Browser) PageSource(_ context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.activeDocLocked()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("<html><head><title>%s</title></head><body>%s</body></html>",
		html.EscapeString(doc.titleAt(b.clock.Now())), html.EscapeString(doc.body)), nil
}

// Screenshot returns the PNG signature followed by the active window's handle.
func (b *Browser) Screenshot(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return nil, browser.ErrNoSuchWindow
	}
	return append([]byte("\x89PNG\r\n\x1a\n"), b.active.handle...), nil
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("close")

	b.closed = true
	return nil
}
