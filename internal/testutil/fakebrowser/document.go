// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fakebrowser

import (
	"fmt"
	"time"

	"go.tabsync.dev/internal/browser"
)

// Document is one page. Delays declared on it and on its elements count from the moment it is shown.
type Document struct {
	b *Browser

	title    string
	changes  []titleChange
	body     string
	elements map[browser.Locator]*Element

	shown    bool
	loadedAt time.Time
}

type titleChange struct {
	after time.Duration
	title string
}

func NewDocument(b *Browser, title string) *Document {
	return &Document{b: b, title: title, elements: map[browser.Locator]*Element{}}
}

// TitleAfter changes the title once delay has passed since the document was shown.
// Calls must be made in increasing order of delay.
func (d *Document) TitleAfter(delay time.Duration, title string) *Document {
	d.changes = append(d.changes, titleChange{after: delay, title: title})
	return d
}

// Body sets the visible text of the whole document, which is also the text of xpath=/*.
func (d *Document) Body(text string) *Document {
	d.body = text
	d.Add(browser.XPath("/*"), d.b.NewElement("root").WithText(text))
	return d
}

// Add makes el the answer to loc within this document.
func (d *Document) Add(loc browser.Locator, el *Element) *Element {
	d.elements[loc] = el
	el.setOwner(d)
	if d.shown {
		el.attachFrames(d.loadedAt)
	}
	return el
}

func (d *Document) titleAt(now time.Time) string {
	title := d.title
	for _, c := range d.changes {
		if !now.Before(d.loadedAt.Add(c.after)) {
			title = c.title
		}
	}
	return title
}

func (d *Document) lookupLocked(loc browser.Locator) (browser.Element, error) {
	el, ok := d.elements[loc]
	if !ok || !el.presentLocked() {
		return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, loc)
	}
	return el, nil
}

func (d *Document) attach(at time.Time) {
	d.shown = true
	d.loadedAt = at
	for _, el := range d.elements {
		el.attachFrames(at)
	}
}

func (d *Document) detach() {
	d.shown = false
	for _, el := range d.elements {
		el.detachFrames()
	}
}
