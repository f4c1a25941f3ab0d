// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocator(t *testing.T) {
	tests := []struct {
		loc      Locator
		wantBy   By
		wantText string
	}{
		{loc: ID("mat-input-0"), wantBy: ByID, wantText: `id="mat-input-0"`},
		{loc: ClassName("login-widget__link"), wantBy: ByClassName, wantText: `class name="login-widget__link"`},
		{loc: LinkText("Investment"), wantBy: ByLinkText, wantText: `link text="Investment"`},
		{loc: PartialLinkText("Mustermann"), wantBy: ByPartialLinkText, wantText: `partial link text="Mustermann"`},
		{loc: XPath("//iframe[@name='spa-legacy-iframe']"), wantBy: ByXPath, wantText: `xpath="//iframe[@name='spa-legacy-iframe']"`},
		{loc: CSS("select#anlageklasse"), wantBy: ByCSSSelector, wantText: `css selector="select#anlageklasse"`},
		{loc: Name("q"), wantBy: ByName, wantText: `name="q"`},
	}
	for _, tt := range tests {
		t.Run(tt.wantText, func(t *testing.T) {
			require.Equal(t, tt.wantBy, tt.loc.By)
			require.Equal(t, tt.wantText, tt.loc.String())
		})
	}
}

func TestIsSpecialKey(t *testing.T) {
	for _, k := range []string{KeyBackspace, KeyTab, KeyReturn, KeyEnter} {
		require.True(t, IsSpecialKey([]rune(k)[0]), "%q", k)
	}
	for _, r := range "Maximiliane Müstermann ⋅" {
		require.False(t, IsSpecialKey(r), "%q", r)
	}
}
