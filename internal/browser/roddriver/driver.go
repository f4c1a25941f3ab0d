// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package roddriver drives Chrome with go-rod.
//
// Rod retries element lookups until they succeed by default. Every page here uses
// rod.NotFoundSleeper instead, so a miss is reported at once and the caller does the polling.
package roddriver

import (
	"context"
	"errors"
	"fmt"
	goruntime "runtime"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/plog"
)

var _ browser.Driver = &Driver{}

type Driver struct {
	mu sync.Mutex

	log             plog.Logger
	pageLoadTimeout time.Duration

	browser *rod.Browser
	// launcher is nil when attached to a browser that was already running.
	launcher *launcher.Launcher

	pages   map[string]*rod.Page
	current string
	frame   *rod.Page
}

// Launch starts a local Chrome, or attaches to the one listening at opts.RemoteURL.
func Launch(ctx context.Context, opts browser.Options, log plog.Logger) (*Driver, error) {
	log = log.WithName("rod")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := &Driver{
		log:             log,
		pageLoadTimeout: opts.PageLoadTimeout,
		pages:           map[string]*rod.Page{},
	}

	var controlURL string
	var err error
	if opts.RemoteURL != "" {
		controlURL, err = launcher.ResolveURL(opts.RemoteURL)
		if err != nil {
			return nil, fmt.Errorf("resolving devtools endpoint %s: %w", opts.RemoteURL, err)
		}
	} else {
		d.launcher = newLauncher(opts)
		controlURL, err = d.launcher.Launch()
		if err != nil {
			return nil, fmt.Errorf("starting chrome: %w", err)
		}
	}

	d.browser = rod.New().ControlURL(controlURL)
	if err := d.browser.Connect(); err != nil {
		d.cleanup()
		return nil, fmt.Errorf("connecting to chrome at %s: %w", controlURL, err)
	}

	first, err := d.firstPage(ctx)
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	handle := string(first.TargetID)
	d.pages[handle] = first
	d.current = handle

	log.Debug("chrome is ready", "window", handle, "remote", d.launcher == nil)

	return d, nil
}

func newLauncher(opts browser.Options) *launcher.Launcher {
	l := launcher.New().
		Headless(opts.Headless).
		// containers rarely allow the user namespaces the sandbox needs
		NoSandbox(goruntime.GOOS == "linux")
	if opts.UserAgent != "" {
		l = l.Set(flags.Flag("user-agent"), opts.UserAgent)
	}
	if opts.Incognito {
		l = l.Set(flags.Flag("incognito"))
	}
	if opts.Proxy != "" {
		l = l.Proxy(opts.Proxy)
	}
	return l
}

func (d *Driver) firstPage(ctx context.Context) (*rod.Page, error) {
	b := d.browser.Context(ctx)
	pages, err := b.Pages()
	if err != nil {
		return nil, fmt.Errorf("listing windows: %w", err)
	}
	if len(pages) > 0 {
		return pages.First().Sleeper(rod.NotFoundSleeper), nil
	}
	p, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("opening a window: %w", err)
	}
	return p.Sleeper(rod.NotFoundSleeper), nil
}

func (d *Driver) do(ctx context.Context, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err := f()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		d.log.TraceErr("rod command failed", err, "window", d.current)
	}
	return classify(err)
}

// scope is the page or frame commands target. Callers hold d.mu.
func (d *Driver) scope(ctx context.Context) (*rod.Page, error) {
	if d.frame != nil {
		return d.frame.Context(ctx), nil
	}
	p, ok := d.pages[d.current]
	if !ok {
		return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchWindow, d.current)
	}
	return p.Context(ctx), nil
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	return d.do(ctx, func() error {
		d.frame = nil
		p, err := d.scope(ctx)
		if err != nil {
			return err
		}
		if d.pageLoadTimeout > 0 {
			loadCtx, cancel := context.WithTimeout(ctx, d.pageLoadTimeout)
			defer cancel()
			p = p.Context(loadCtx)
		}
		if err := p.Navigate(url); err != nil {
			return err
		}
		err = p.WaitLoad()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("page load did not finish within %s: %w", d.pageLoadTimeout, err)
		}
		return err
	})
}

func (d *Driver) FindElement(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	var found *element
	err := d.do(ctx, func() error {
		p, err := d.scope(ctx)
		if err != nil {
			return err
		}
		found, err = d.find(loc, p.Element, p.ElementX)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (d *Driver) find(loc browser.Locator, byCSS, byXPath func(string) (*rod.Element, error)) (*element, error) {
	q, err := toQuery(loc)
	if err != nil {
		return nil, err
	}

	var el *rod.Element
	if q.css != "" {
		el, err = byCSS(q.css)
	} else {
		el, err = byXPath(q.xpath)
	}

	var notFound *rod.ElementNotFoundError
	if errors.As(err, &notFound) {
		return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, loc)
	}
	if err != nil {
		return nil, err
	}
	return &element{d: d, window: d.current, el: el}, nil
}

func (d *Driver) WindowHandles(ctx context.Context) ([]string, error) {
	var handles []string
	err := d.do(ctx, func() error {
		pages, err := d.browser.Context(ctx).Pages()
		if err != nil {
			return err
		}
		handles = make([]string, 0, len(pages))
		for _, p := range pages {
			handles = append(handles, string(p.TargetID))
		}
		return nil
	})
	return handles, err
}

func (d *Driver) CurrentWindowHandle(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, nil
}

func (d *Driver) SwitchToWindow(ctx context.Context, handle string) error {
	return d.do(ctx, func() error {
		p, ok := d.pages[handle]
		if !ok {
			pages, err := d.browser.Context(ctx).Pages()
			if err != nil {
				return err
			}
			for _, candidate := range pages {
				if string(candidate.TargetID) == handle {
					p = candidate.Sleeper(rod.NotFoundSleeper)
				}
			}
			if p == nil {
				return fmt.Errorf("%w: %s", browser.ErrNoSuchWindow, handle)
			}
			d.pages[handle] = p
		}

		if _, err := p.Context(ctx).Activate(); err != nil {
			return err
		}
		d.current = handle
		d.frame = nil
		return nil
	})
}

func (d *Driver) SwitchToFrame(ctx context.Context, frame browser.Element) error {
	el, ok := frame.(*element)
	if !ok || el.d != d {
		return fmt.Errorf("%w: element does not belong to this browser", browser.ErrNoSuchFrame)
	}
	return d.do(ctx, func() error {
		if el.window != d.current {
			return browser.ErrStaleElement
		}
		fp, err := el.el.Context(ctx).Frame()
		if err != nil {
			return fmt.Errorf("%w: %w", browser.ErrNoSuchFrame, err)
		}
		d.frame = fp.Sleeper(rod.NotFoundSleeper)
		return nil
	})
}

func (d *Driver) SwitchToDefaultContent(ctx context.Context) error {
	return d.do(ctx, func() error {
		d.frame = nil
		return nil
	})
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	var title string
	err := d.do(ctx, func() error {
		p, err := d.scope(ctx)
		if err != nil {
			return err
		}
		obj, err := p.Eval(`() => document.title`)
		if err != nil {
			return err
		}
		title = obj.Value.Str()
		return nil
	})
	return title, err
}

func (d *Driver) PageSource(ctx context.Context) (string, error) {
	var source string
	err := d.do(ctx, func() error {
		p, err := d.scope(ctx)
		if err != nil {
			return err
		}
		obj, err := p.Eval(`() => document.documentElement ? document.documentElement.outerHTML : ""`)
		if err != nil {
			return err
		}
		source = obj.Value.Str()
		return nil
	})
	return source, err
}

func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	var png []byte
	err := d.do(ctx, func() error {
		p, ok := d.pages[d.current]
		if !ok {
			return fmt.Errorf("%w: %s", browser.ErrNoSuchWindow, d.current)
		}
		var err error
		png, err = p.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{Format: proto.PageCaptureScreenshotFormatPng})
		return err
	})
	return png, err
}

// Close shuts a launched browser down. An attached browser only loses the connection.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	if d.launcher != nil {
		err = d.browser.Close()
	}
	d.cleanup()
	d.pages = map[string]*rod.Page{}
	if err != nil {
		return fmt.Errorf("closing chrome: %w", err)
	}
	return nil
}

func (d *Driver) cleanup() {
	if d.launcher != nil {
		d.launcher.Kill()
		d.launcher.Cleanup()
	}
}
