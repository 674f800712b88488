package surface

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/Children-Of-Regions/pdf-service/report"
)

const (
	DefaultLoadTimeout = 30 * time.Second
	// DefaultSettleDelay bounds the wait for chart scripts that never
	// post the ready signal.
	DefaultSettleDelay = 2 * time.Second

	readyPollInterval = 100 * time.Millisecond
	mmPerInch         = 25.4
)

const removeByIDTemplate = `(() => {
  const el = document.getElementById(%q);
  if (el && el.parentNode) {
    el.parentNode.removeChild(el);
  }
})()`

// Chromium implements report.Surface over a shared headless Chromium
// instance. Each Open call gets an isolated tab.
type Chromium struct {
	BrowserPath string
	Headless    bool
	Args        []string
	LoadTimeout time.Duration
	SettleDelay time.Duration

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Open launches an isolated browsing context for one request.
func (c *Chromium) Open(ctx context.Context) (report.Session, error) {
	if c == nil {
		return nil, report.NewError(report.KindInternal, "chromium surface is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := c.ensureBrowser(); err != nil {
		return nil, report.NewError(report.KindInternal, "chromium surface init failed", err)
	}

	tabCtx, cancel := chromedp.NewContext(c.browserCtx)
	return &session{
		ctx:         tabCtx,
		cancel:      cancel,
		loadTimeout: c.loadTimeout(),
		settleDelay: c.settleDelay(),
	}, nil
}

// Close releases Chromium resources if they have been initialized.
func (c *Chromium) Close() error {
	if c == nil {
		return nil
	}
	if c.browserCancel != nil {
		c.browserCancel()
	}
	if c.allocCancel != nil {
		c.allocCancel()
	}
	return nil
}

func (c *Chromium) ensureBrowser() error {
	c.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if c.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(c.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", c.Headless))
		options = append(options, allocatorOptionsFromArgs(c.Args)...)

		c.allocCtx, c.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		c.browserCtx, c.browserCancel = chromedp.NewContext(c.allocCtx)
	})
	if c.allocCtx == nil || c.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

func (c *Chromium) loadTimeout() time.Duration {
	if c.LoadTimeout > 0 {
		return c.LoadTimeout
	}
	return DefaultLoadTimeout
}

func (c *Chromium) settleDelay() time.Duration {
	if c.SettleDelay > 0 {
		return c.SettleDelay
	}
	return DefaultSettleDelay
}

type session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	loadTimeout time.Duration
	settleDelay time.Duration
}

// SetContent loads the HTML string into the tab and waits for the body,
// bounded by the load timeout.
func (s *session) SetContent(ctx context.Context, html string) error {
	err := s.run(ctx, s.loadTimeout,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		return report.NewError(report.KindTimeout, "content load timed out", err)
	}
	return err
}

// WaitSettled polls for the chart-ready signal. Charts that never post
// it get the settle delay as an upper bound instead of failing the
// request; the rasterized snapshot then captures whatever has drawn.
// A poll that keeps erroring means the tab is gone, not slow, so the
// last evaluation error is returned once the delay runs out.
func (s *session) WaitSettled(ctx context.Context) error {
	deadline := time.Now().Add(s.settleDelay)
	var lastErr error
	for {
		var ready bool
		switch err := s.Evaluate(ctx, report.ChartsReadyScript(), &ready); {
		case err == nil && ready:
			return nil
		case err == nil:
			lastErr = nil
		default:
			lastErr = err
		}
		if !time.Now().Before(deadline) {
			if lastErr != nil {
				return report.NewError(report.KindRendering, "chart readiness check failed", lastErr)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyPollInterval):
		}
	}
}

func (s *session) RemoveByID(ctx context.Context, id string) error {
	return s.Evaluate(ctx, fmt.Sprintf(removeByIDTemplate, id), nil)
}

func (s *session) Evaluate(ctx context.Context, script string, out any) error {
	return s.run(ctx, 0, chromedp.Evaluate(script, out))
}

// PDF captures the tab as a single page with the given dimensions.
// Margins are zero; the template owns its own padding.
func (s *session) PDF(ctx context.Context, size report.PageSize) ([]byte, error) {
	params := page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(false).
		WithPaperWidth(size.WidthMM / mmPerInch).
		WithPaperHeight(size.HeightMM / mmPerInch).
		WithMarginTop(0).
		WithMarginBottom(0).
		WithMarginLeft(0).
		WithMarginRight(0)

	var pdf []byte
	err := s.run(ctx, 0, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = params.Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func (s *session) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// run executes actions on the tab context, honoring the caller's context
// and an optional timeout.
func (s *session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	execCtx := s.ctx
	if ctx != nil {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithCancel(execCtx)
		defer cancel()
		watched := execCtx
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-watched.Done():
			}
		}()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(execCtx, timeout)
		defer cancel()
	}
	return chromedp.Run(execCtx, actions...)
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		arg = strings.TrimPrefix(arg, "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}
