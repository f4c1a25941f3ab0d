// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"go.tabsync.dev/internal/plog"
)

type Driver string

const (
	DriverChromedp  Driver = "chromedp"
	DriverWebDriver Driver = "webdriver"
	DriverRod       Driver = "rod"
)

// Config contains the knobs of a tabsync run. Unset fields are defaulted by FromPath and Default.
type Config struct {
	// Driver selects the browser backend.
	Driver Driver `json:"driver,omitempty"`
	// BaseURL is the public home page of the site under test.
	BaseURL string `json:"baseURL,omitempty"`
	// WebDriverURL is the WebDriver server used by the webdriver backend.
	WebDriverURL string `json:"webDriverURL,omitempty"`
	// RemoteDebuggingURL attaches the chromedp or rod backend to a running browser instead of launching one.
	RemoteDebuggingURL string `json:"remoteDebuggingURL,omitempty"`

	Headless  *bool  `json:"headless,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Incognito *bool  `json:"incognito,omitempty"`
	Proxy     string `json:"proxy,omitempty"`

	Timeouts TimeoutsSpec     `json:"timeouts"`
	Polling  PollingSpec      `json:"polling"`
	KeyDelay *metav1.Duration `json:"keyDelay,omitempty"`

	// SessionPerScenario starts a new browser for every scenario.
	SessionPerScenario *bool `json:"sessionPerScenario,omitempty"`
	// ArtifactsDir receives screenshots and page sources of failed scenarios.
	ArtifactsDir string `json:"artifactsDir,omitempty"`

	Credentials CredentialsSpec `json:"credentials"`
	Log         plog.LogSpec    `json:"log"`
}

type TimeoutsSpec struct {
	ImplicitWait *metav1.Duration `json:"implicitWait,omitempty"`
	PageLoad     *metav1.Duration `json:"pageLoad,omitempty"`
	Title        *metav1.Duration `json:"title,omitempty"`
	NewWindow    *metav1.Duration `json:"newWindow,omitempty"`
	Visible      *metav1.Duration `json:"visible,omitempty"`
}

type PollingSpec struct {
	Title   *metav1.Duration `json:"title,omitempty"`
	Window  *metav1.Duration `json:"window,omitempty"`
	Visible *metav1.Duration `json:"visible,omitempty"`
}

// CredentialsSpec names the environment variables holding the portal login.
type CredentialsSpec struct {
	UsernameEnv string `json:"usernameEnv,omitempty"`
	PasswordEnv string `json:"passwordEnv,omitempty"`
}
