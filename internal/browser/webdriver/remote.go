// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package webdriver

import (
	"fmt"

	"github.com/tebeka/selenium"

	"go.tabsync.dev/internal/browser"
)

// Remote is the part of a WebDriver session this backend uses.
type Remote interface {
	Get(url string) error
	FindElement(by, value string) (RemoteElement, error)
	WindowHandles() ([]string, error)
	CurrentWindowHandle() (string, error)
	SwitchWindow(name string) error
	// SwitchFrame enters frame, or the top-level document when frame is nil.
	SwitchFrame(frame RemoteElement) error
	Title() (string, error)
	PageSource() (string, error)
	Screenshot() ([]byte, error)
	Quit() error
}

type RemoteElement interface {
	Click() error
	SendKeys(keys string) error
	Text() (string, error)
	GetAttribute(name string) (string, error)
	IsDisplayed() (bool, error)
	FindElement(by, value string) (RemoteElement, error)
}

var (
	_ Remote        = &seleniumRemote{}
	_ RemoteElement = &seleniumElement{}
)

type seleniumRemote struct {
	wd selenium.WebDriver
}

func (r *seleniumRemote) Get(url string) error { return r.wd.Get(url) }

func (r *seleniumRemote) FindElement(by, value string) (RemoteElement, error) {
	el, err := r.wd.FindElement(by, value)
	if err != nil {
		return nil, err
	}
	return &seleniumElement{el: el}, nil
}

func (r *seleniumRemote) WindowHandles() ([]string, error)     { return r.wd.WindowHandles() }
func (r *seleniumRemote) CurrentWindowHandle() (string, error) { return r.wd.CurrentWindowHandle() }
func (r *seleniumRemote) SwitchWindow(name string) error       { return r.wd.SwitchWindow(name) }

func (r *seleniumRemote) SwitchFrame(frame RemoteElement) error {
	if frame == nil {
		return r.wd.SwitchFrame(nil)
	}
	el, ok := frame.(*seleniumElement)
	if !ok {
		return fmt.Errorf("%w: frame element is not from a selenium session", browser.ErrNoSuchFrame)
	}
	return r.wd.SwitchFrame(el.el)
}

func (r *seleniumRemote) Title() (string, error)      { return r.wd.Title() }
func (r *seleniumRemote) PageSource() (string, error) { return r.wd.PageSource() }
func (r *seleniumRemote) Screenshot() ([]byte, error) { return r.wd.Screenshot() }
func (r *seleniumRemote) Quit() error                 { return r.wd.Quit() }

type seleniumElement struct {
	el selenium.WebElement
}

func (e *seleniumElement) Click() error                             { return e.el.Click() }
func (e *seleniumElement) SendKeys(keys string) error               { return e.el.SendKeys(keys) }
func (e *seleniumElement) Text() (string, error)                    { return e.el.Text() }
func (e *seleniumElement) GetAttribute(name string) (string, error) { return e.el.GetAttribute(name) }
func (e *seleniumElement) IsDisplayed() (bool, error)               { return e.el.IsDisplayed() }

func (e *seleniumElement) FindElement(by, value string) (RemoteElement, error) {
	el, err := e.el.FindElement(by, value)
	if err != nil {
		return nil, err
	}
	return &seleniumElement{el: el}, nil
}
