// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package domscript holds the JavaScript the DevTools backends run inside the page.
//
// Every script is a function declaration that expects "this" to be a document or an element,
// so the same lookup works in the top-level document, inside a frame and below another element.
// Failures are thrown as errors whose message starts with the W3C WebDriver error code.
package domscript

const staleCheck = `if (!this.isConnected) { throw new Error("stale element reference"); }`

// Find takes the locator strategy and value and returns the first match or null.
const Find = `function(by, value) {
	` + staleCheck + `
	const doc = this.ownerDocument || this;
	switch (by) {
	case "id":
		return this === doc ? doc.getElementById(value) : this.querySelector("#" + CSS.escape(value));
	case "name":
		return this.querySelector("[name=\"" + CSS.escape(value) + "\"]");
	case "class name":
		return this.querySelector("." + CSS.escape(value));
	case "css selector":
		return this.querySelector(value);
	case "link text":
	case "partial link text":
		for (const a of this.querySelectorAll("a")) {
			const text = (a.innerText || a.textContent || "").trim();
			if (by === "link text" ? text === value : text.includes(value)) {
				return a;
			}
		}
		return null;
	case "xpath":
		return doc.evaluate(value, this, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	}
	throw new Error("unsupported locator strategy " + by);
}`

const FrameDocument = `function() {
	` + staleCheck + `
	if (!this.contentDocument) {
		throw new Error("no such frame");
	}
	return this.contentDocument;
}`

const Title = `function() { return this.title; }`

const Source = `function() { return this.documentElement ? this.documentElement.outerHTML : ""; }`

// An option is chosen the way a user would pick it from its select, it has no box of its own.
const Click = `function() {
	` + staleCheck + `
	if (this.tagName === "OPTION") {
		const select = this.closest("select");
		if (this.disabled || (select && select.disabled)) {
			throw new Error("element not interactable");
		}
		this.selected = true;
		if (select) {
			select.dispatchEvent(new Event("input", {bubbles: true}));
			select.dispatchEvent(new Event("change", {bubbles: true}));
		}
		return;
	}
	const rect = this.getBoundingClientRect();
	if (this.disabled || (rect.width === 0 && rect.height === 0)) {
		throw new Error("element not interactable");
	}
	this.scrollIntoView({block: "center", inline: "center"});
	this.click();
}`

const Focus = `function() {
	` + staleCheck + `
	if (this.disabled || this.readOnly) {
		throw new Error("element not interactable");
	}
	this.focus();
}`

const Text = `function() {
	` + staleCheck + `
	return this.innerText !== undefined ? this.innerText : this.textContent;
}`

// Attribute takes a name and prefers a scalar property over the attribute of that name.
const Attribute = `function(name) {
	` + staleCheck + `
	const prop = this[name];
	if (prop !== undefined && prop !== null && typeof prop !== "object" && typeof prop !== "function") {
		return String(prop);
	}
	const attr = this.getAttribute(name);
	return attr === null ? "" : attr;
}`

const Displayed = `function() {
	` + staleCheck + `
	const style = getComputedStyle(this);
	if (style.visibility === "hidden" || style.display === "none") {
		return false;
	}
	return this.getClientRects().length > 0;
}`

const TagName = `function() {
	` + staleCheck + `
	return this.tagName;
}`
