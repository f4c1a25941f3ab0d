// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package roddriver

import (
	"fmt"
	"strings"

	"go.tabsync.dev/internal/browser"
)

// query is what a locator becomes for rod: either a CSS selector or an XPath expression that
// is relative to the document or element it is evaluated on.
type query struct {
	css   string
	xpath string
}

func toQuery(loc browser.Locator) (query, error) {
	v := loc.Value
	switch loc.By {
	case browser.ByCSSSelector:
		return query{css: v}, nil
	case browser.ByXPath:
		return query{xpath: v}, nil
	case browser.ByID:
		return query{xpath: ".//*[@id=" + xpathLiteral(v) + "]"}, nil
	case browser.ByName:
		return query{xpath: ".//*[@name=" + xpathLiteral(v) + "]"}, nil
	case browser.ByClassName:
		return query{xpath: ".//*[contains(concat(' ', normalize-space(@class), ' '), " + xpathLiteral(" "+v+" ") + ")]"}, nil
	case browser.ByLinkText:
		return query{xpath: ".//a[normalize-space(.)=" + xpathLiteral(strings.TrimSpace(v)) + "]"}, nil
	case browser.ByPartialLinkText:
		return query{xpath: ".//a[contains(normalize-space(.), " + xpathLiteral(v) + ")]"}, nil
	default:
		return query{}, fmt.Errorf("unsupported locator strategy %q", loc.By)
	}
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
