// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package browser

import "fmt"

// By is a locator strategy. The values are the W3C WebDriver strategy names.
type By string

const (
	ByID              By = "id"
	ByClassName       By = "class name"
	ByLinkText        By = "link text"
	ByPartialLinkText By = "partial link text"
	ByXPath           By = "xpath"
	ByCSSSelector     By = "css selector"
	ByName            By = "name"
)

// Locator is an opaque query for one element. Only the backends interpret Value.
type Locator struct {
	By    By
	Value string
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.By, l.Value)
}

func ID(id string) Locator                { return Locator{By: ByID, Value: id} }
func ClassName(name string) Locator       { return Locator{By: ByClassName, Value: name} }
func LinkText(text string) Locator        { return Locator{By: ByLinkText, Value: text} }
func PartialLinkText(text string) Locator { return Locator{By: ByPartialLinkText, Value: text} }
func XPath(expr string) Locator           { return Locator{By: ByXPath, Value: expr} }
func CSS(selector string) Locator         { return Locator{By: ByCSSSelector, Value: selector} }
func Name(name string) Locator            { return Locator{By: ByName, Value: name} }

// Special keys, as WebDriver code points.
const (
	KeyBackspace = "\ue003"
	KeyTab       = "\ue004"
	KeyReturn    = "\ue006"
	KeyEnter     = "\ue007"
)

// IsSpecialKey reports whether r is in the WebDriver private use range for special keys.
func IsSpecialKey(r rune) bool {
	return r >= '\ue000' && r <= '\ue05d'
}
