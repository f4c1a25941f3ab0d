// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package artifacts

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Summary is written next to the screenshot and page source of a failed run.
type Summary struct {
	RunID      string       `json:"runID"`
	Scenario   string       `json:"scenario"`
	Step       int          `json:"step"`
	StepName   string       `json:"stepName,omitempty"`
	Error      string       `json:"error,omitempty"`
	Window     string       `json:"window,omitempty"`
	Frame      string       `json:"frame"`
	CapturedAt metav1.Time  `json:"capturedAt"`
	Page       *PageSummary `json:"page,omitempty"`
}

// PageSummary is what a reader of the artifacts wants to know about the captured page without opening it.
type PageSummary struct {
	Title    string   `json:"title"`
	Headings []string `json:"headings,omitempty"`
	Links    int      `json:"links"`
	Frames   []string `json:"frames,omitempty"`
	Inputs   []string `json:"inputs,omitempty"`
	// ErrorIDs are the error references the portal printed, as in "Fehler-ID: 8f3c2a".
	ErrorIDs []string `json:"errorIDs,omitempty"`
}

var errorIDPattern = regexp.MustCompile(`Fehler-ID:?\s*([0-9A-Za-z-]+)`)

func Summarize(html string) (*PageSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	page := &PageSummary{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Links: doc.Find("a[href]").Length(),
	}

	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.Join(strings.Fields(sel.Text()), " "); text != "" {
			page.Headings = append(page.Headings, text)
		}
	})

	doc.Find("iframe").Each(func(_ int, sel *goquery.Selection) {
		page.Frames = append(page.Frames, identify(sel, "src"))
	})

	doc.Find("input, select, textarea").Each(func(_ int, sel *goquery.Selection) {
		page.Inputs = append(page.Inputs, identify(sel, "type"))
	})

	for _, match := range errorIDPattern.FindAllStringSubmatch(doc.Find("body").Text(), -1) {
		page.ErrorIDs = append(page.ErrorIDs, match[1])
	}

	return page, nil
}

// identify names an element by its id or name attribute, falling back to the given attribute and then its tag.
func identify(sel *goquery.Selection, fallback string) string {
	for _, attr := range []string{"id", "name", fallback} {
		if v, ok := sel.Attr(attr); ok && v != "" {
			return v
		}
	}
	return goquery.NodeName(sel)
}
