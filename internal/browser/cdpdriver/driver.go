// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cdpdriver drives Chrome over the DevTools protocol with chromedp.
//
// Elements are remote JavaScript object handles. Every window the caller switches to gets its
// own chromedp target context, created on first use.
package cdpdriver

import (
	"context"
	"errors"
	"fmt"
	goruntime "runtime"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/browser/domscript"
	"go.tabsync.dev/internal/plog"
)

var _ browser.Driver = &Driver{}

type Driver struct {
	mu sync.Mutex

	log             plog.Logger
	pageLoadTimeout time.Duration

	browserCtx  context.Context
	cancels     []context.CancelFunc
	allocCancel context.CancelFunc

	tabs    map[string]context.Context
	current string
	// frame is the frame element commands are scoped to, nil for the top-level document.
	frame *element
}

// Launch starts a local Chrome, or attaches to the one listening at opts.RemoteURL.
func Launch(ctx context.Context, opts browser.Options, log plog.Logger) (*Driver, error) {
	log = log.WithName("chromedp")

	// the browser outlives ctx, which only bounds the startup
	base := context.WithoutCancel(ctx)

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if opts.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(base, opts.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(base, allocatorOptions(opts)...)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) { log.Debug(fmt.Sprintf(format, args...)) }),
		chromedp.WithErrorf(func(format string, args ...any) { log.Debug(fmt.Sprintf(format, args...)) }),
	)

	d := &Driver{
		log:             log,
		pageLoadTimeout: opts.PageLoadTimeout,
		browserCtx:      browserCtx,
		cancels:         []context.CancelFunc{browserCancel},
		allocCancel:     allocCancel,
		tabs:            map[string]context.Context{},
	}

	startCtx, cancel := context.WithCancel(browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	// the first Run starts the browser and opens the first tab
	if err := chromedp.Run(startCtx); err != nil {
		d.cancel()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	first := string(chromedp.FromContext(browserCtx).Target.TargetID)
	d.tabs[first] = browserCtx
	d.current = first

	log.Debug("chrome is ready", "window", first, "remote", opts.RemoteURL != "")

	return d, nil
}

func allocatorOptions(opts browser.Options) []chromedp.ExecAllocatorOption {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.Incognito {
		allocOpts = append(allocOpts, chromedp.Flag("incognito", true))
	}
	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}
	if goruntime.GOOS == "linux" {
		// containers rarely allow the user namespaces the sandbox needs
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	return allocOpts
}

// exec runs f against the active window. The run context is canceled when ctx is done but the
// window itself stays open.
func (d *Driver) exec(ctx context.Context, f func(runCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.execLocked(ctx, d.current, f)
}

func (d *Driver) execLocked(ctx context.Context, handle string, f func(runCtx context.Context) error) error {
	tab, ok := d.tabs[handle]
	if !ok {
		return fmt.Errorf("%w: %s", browser.ErrNoSuchWindow, handle)
	}

	runCtx, cancel := context.WithCancel(tab)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := f(runCtx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		d.log.TraceErr("devtools command failed", err, "window", handle)
	}
	return classify(err)
}

// root resolves the document commands are scoped to. Callers hold d.mu.
func (d *Driver) root(runCtx context.Context) (runtime.RemoteObjectID, error) {
	var obj *runtime.RemoteObject
	if d.frame == nil {
		if err := chromedp.Run(runCtx, chromedp.Evaluate("document", &obj)); err != nil {
			return "", err
		}
	} else {
		if err := chromedp.Run(runCtx, chromedp.CallFunctionOn(domscript.FrameDocument, &obj, on(d.frame.id))); err != nil {
			return "", err
		}
	}
	if obj == nil || obj.ObjectID == "" {
		return "", errors.New("no document in the active frame")
	}
	return obj.ObjectID, nil
}

// on calls a function on id as if the user did it, so a click may open a window without being
// treated as a popup.
func on(id runtime.RemoteObjectID) chromedp.CallOption {
	return func(p *runtime.CallFunctionOnParams) *runtime.CallFunctionOnParams {
		return p.WithObjectID(id).WithUserGesture(true)
	}
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	return d.exec(ctx, func(runCtx context.Context) error {
		d.frame = nil
		if d.pageLoadTimeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, d.pageLoadTimeout)
			defer cancel()
		}
		err := chromedp.Run(runCtx, chromedp.Navigate(url))
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("page load did not finish within %s: %w", d.pageLoadTimeout, err)
		}
		return err
	})
}

func (d *Driver) FindElement(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	var found *element
	err := d.exec(ctx, func(runCtx context.Context) error {
		root, err := d.root(runCtx)
		if err != nil {
			return err
		}
		found, err = d.find(runCtx, root, loc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (d *Driver) find(runCtx context.Context, root runtime.RemoteObjectID, loc browser.Locator) (*element, error) {
	var obj *runtime.RemoteObject
	if err := chromedp.Run(runCtx, chromedp.CallFunctionOn(domscript.Find, &obj, on(root), string(loc.By), loc.Value)); err != nil {
		return nil, err
	}
	if obj == nil || obj.ObjectID == "" {
		return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, loc)
	}
	return &element{d: d, window: d.current, id: obj.ObjectID}, nil
}

func (d *Driver) WindowHandles(ctx context.Context) ([]string, error) {
	var handles []string
	err := d.exec(ctx, func(runCtx context.Context) error {
		infos, err := chromedp.Targets(runCtx)
		if err != nil {
			return err
		}
		handles = pageHandles(infos)
		return nil
	})
	return handles, err
}

func pageHandles(infos []*target.Info) []string {
	handles := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.Type == "page" {
			handles = append(handles, string(info.TargetID))
		}
	}
	return handles
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
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.tabs[handle]; !ok {
		if err := d.attachLocked(ctx, handle); err != nil {
			return err
		}
	}

	err := d.execLocked(ctx, handle, func(runCtx context.Context) error {
		return chromedp.Run(runCtx, page.BringToFront())
	})
	if err != nil {
		return err
	}

	d.current = handle
	d.frame = nil
	return nil
}

func (d *Driver) attachLocked(ctx context.Context, handle string) error {
	var exists bool
	err := d.execLocked(ctx, d.current, func(runCtx context.Context) error {
		infos, err := chromedp.Targets(runCtx)
		if err != nil {
			return err
		}
		for _, h := range pageHandles(infos) {
			exists = exists || h == handle
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", browser.ErrNoSuchWindow, handle)
	}

	tabCtx, cancel := chromedp.NewContext(d.browserCtx, chromedp.WithTargetID(target.ID(handle)))
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return fmt.Errorf("attaching to window %s: %w", handle, classify(err))
	}

	d.tabs[handle] = tabCtx
	d.cancels = append(d.cancels, cancel)
	d.log.Trace("attached to window", "window", handle)
	return nil
}

func (d *Driver) SwitchToFrame(ctx context.Context, frame browser.Element) error {
	el, ok := frame.(*element)
	if !ok || el.d != d {
		return fmt.Errorf("%w: element does not belong to this browser", browser.ErrNoSuchFrame)
	}
	return d.exec(ctx, func(runCtx context.Context) error {
		if el.window != d.current {
			return browser.ErrStaleElement
		}
		var obj *runtime.RemoteObject
		if err := chromedp.Run(runCtx, chromedp.CallFunctionOn(domscript.FrameDocument, &obj, on(el.id))); err != nil {
			return err
		}
		d.frame = el
		return nil
	})
}

func (d *Driver) SwitchToDefaultContent(ctx context.Context) error {
	return d.exec(ctx, func(context.Context) error {
		d.frame = nil
		return nil
	})
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	var title string
	err := d.exec(ctx, func(runCtx context.Context) error {
		root, err := d.root(runCtx)
		if err != nil {
			return err
		}
		return chromedp.Run(runCtx, chromedp.CallFunctionOn(domscript.Title, &title, on(root)))
	})
	return title, err
}

func (d *Driver) PageSource(ctx context.Context) (string, error) {
	var source string
	err := d.exec(ctx, func(runCtx context.Context) error {
		root, err := d.root(runCtx)
		if err != nil {
			return err
		}
		return chromedp.Run(runCtx, chromedp.CallFunctionOn(domscript.Source, &source, on(root)))
	})
	return source, err
}

func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	var png []byte
	err := d.exec(ctx, func(runCtx context.Context) error {
		return chromedp.Run(runCtx, chromedp.CaptureScreenshot(&png))
	})
	return png, err
}

// Close shuts the browser down, or detaches from it when it was attached to.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := chromedp.Cancel(d.browserCtx)
	d.cancel()
	d.tabs = map[string]context.Context{}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("closing chrome: %w", err)
	}
	return nil
}

// cancel releases the windows newest first and the allocator last.
func (d *Driver) cancel() {
	for i := len(d.cancels) - 1; i >= 0; i-- {
		d.cancels[i]()
	}
	d.allocCancel()
}
