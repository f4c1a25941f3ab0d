// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fakebrowser

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.tabsync.dev/internal/browser"
)

var _ browser.Element = &Element{}

type Element struct {
	b     *Browser
	name  string
	owner *Document

	text     string
	attrs    map[string]string
	children map[browser.Locator]*Element
	frame    *Document

	appearAfter  time.Duration
	visibleAfter time.Duration
	hidden       bool

	onClick func()
	onKey   map[string]func()

	failAfter int
	failErr   error

	typed  strings.Builder
	sends  []Send
	clicks int
}

// Send is one SendKeys call.
type Send struct {
	Keys string
	At   time.Time
}

func (b *Browser) NewElement(name string) *Element {
	return &Element{
		b:         b,
		name:      name,
		attrs:     map[string]string{},
		children:  map[browser.Locator]*Element{},
		onKey:     map[string]func(){},
		failAfter: -1,
	}
}

func (e *Element) WithText(text string) *Element {
	e.text = text
	return e
}

func (e *Element) WithAttr(name, value string) *Element {
	e.attrs[name] = value
	return e
}

// Within makes child the answer to loc relative to this element.
func (e *Element) Within(loc browser.Locator, child *Element) *Element {
	e.children[loc] = child
	child.setOwner(e.owner)
	if e.owner != nil && e.owner.shown {
		child.attachFrames(e.owner.loadedAt)
	}
	return e
}

// AsFrame turns the element into a frame showing doc.
func (e *Element) AsFrame(doc *Document) *Element {
	e.frame = doc
	return e
}

func (e *Element) AppearAfter(delay time.Duration) *Element {
	e.appearAfter = delay
	return e
}

func (e *Element) VisibleAfter(delay time.Duration) *Element {
	e.visibleAfter = delay
	return e
}

func (e *Element) Hidden() *Element {
	e.hidden = true
	return e
}

// OnClick runs fn after every click, without holding the browser's lock.
func (e *Element) OnClick(fn func()) *Element {
	e.onClick = fn
	return e
}

// OnKey runs fn when the special key is sent, for example browser.KeyReturn.
func (e *Element) OnKey(key string, fn func()) *Element {
	e.onKey[key] = fn
	return e
}

// FailSendKeysAfter makes SendKeys fail with err once n calls have succeeded.
func (e *Element) FailSendKeysAfter(n int, err error) *Element {
	e.failAfter = n
	e.failErr = err
	return e
}

// Value is what has been typed into the element, without special keys.
func (e *Element) Value() string {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	return e.typed.String()
}

func (e *Element) Sends() []Send {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	return slices.Clone(e.sends)
}

func (e *Element) Clicks() int {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	return e.clicks
}

func (e *Element) Click(_ context.Context) error {
	e.b.mu.Lock()
	e.b.record("click %s", e.name)
	if err := e.checkLocked(); err != nil {
		e.b.mu.Unlock()
		return err
	}
	if !e.displayedLocked() {
		e.b.mu.Unlock()
		return fmt.Errorf("%w: %s is not displayed", browser.ErrNotInteractable, e.name)
	}
	e.clicks++
	fn := e.onClick
	e.b.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

func (e *Element) SendKeys(_ context.Context, keys string) error {
	e.b.mu.Lock()
	if err := e.checkLocked(); err != nil {
		e.b.mu.Unlock()
		return err
	}
	if e.failAfter >= 0 && len(e.sends) >= e.failAfter {
		e.b.mu.Unlock()
		return e.failErr
	}
	e.sends = append(e.sends, Send{Keys: keys, At: e.b.clock.Now()})
	fn := e.onKey[keys]
	if fn == nil {
		for _, r := range keys {
			if !browser.IsSpecialKey(r) {
				e.typed.WriteRune(r)
			}
		}
	}
	e.b.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

func (e *Element) Text(_ context.Context) (string, error) {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()

	if err := e.checkLocked(); err != nil {
		return "", err
	}
	return e.text, nil
}

func (e *Element) Attribute(_ context.Context, name string) (string, error) {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()

	if err := e.checkLocked(); err != nil {
		return "", err
	}
	if v, ok := e.attrs[name]; ok {
		return v, nil
	}
	if name == "value" {
		return e.typed.String(), nil
	}
	return "", nil
}

func (e *Element) IsDisplayed(_ context.Context) (bool, error) {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()

	if err := e.checkLocked(); err != nil {
		return false, err
	}
	return e.displayedLocked(), nil
}

func (e *Element) FindElement(_ context.Context, loc browser.Locator) (browser.Element, error) {
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	e.b.record("find %s within %s", loc, e.name)

	if err := e.checkLocked(); err != nil {
		return nil, err
	}
	child, ok := e.children[loc]
	if !ok || !child.presentLocked() {
		return nil, fmt.Errorf("%w: %s within %s", browser.ErrNoSuchElement, loc, e.name)
	}
	return child, nil
}

func (e *Element) checkLocked() error {
	if e.owner == nil || !e.owner.shown {
		return fmt.Errorf("%w: %s", browser.ErrStaleElement, e.name)
	}
	return nil
}

func (e *Element) presentLocked() bool {
	return e.owner != nil && e.owner.shown && !e.b.clock.Now().Before(e.owner.loadedAt.Add(e.appearAfter))
}

func (e *Element) displayedLocked() bool {
	return !e.hidden && !e.b.clock.Now().Before(e.owner.loadedAt.Add(e.visibleAfter))
}

func (e *Element) setOwner(d *Document) {
	e.owner = d
	for _, child := range e.children {
		child.setOwner(d)
	}
}

func (e *Element) attachFrames(at time.Time) {
	if e.frame != nil {
		e.frame.attach(at)
	}
	for _, child := range e.children {
		child.attachFrames(at)
	}
}

func (e *Element) detachFrames() {
	if e.frame != nil {
		e.frame.detach()
	}
	for _, child := range e.children {
		child.detachFrames()
	}
}
