// ABOUTME: Page source that renders pages in headless Chrome with go-rod
// ABOUTME: Used for script-built pages whose article markup only exists after load

package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"digests-reader-api/core/interfaces"
	"digests-reader-api/infrastructure/page"
	"digests-reader-api/infrastructure/robots"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var (
	// ErrBrowserConnect is returned when Chrome cannot be launched or reached
	ErrBrowserConnect = errors.New("browser connect failed")

	// ErrPageLoad is returned when navigation or load waiting fails
	ErrPageLoad = errors.New("page load failed")
)

// Options configures a Source
type Options struct {
	// Bin is an explicit Chrome binary; empty lets rod locate or download one
	Bin       string
	UserAgent string
	Timeout   time.Duration
	NoSandbox bool
}

// renderer produces the serialized DOM of a loaded page
type renderer interface {
	Render(ctx context.Context, pageURL string, timeout time.Duration) (finalURL string, html string, err error)
	Close() error
}

var (
	_ interfaces.PageSource = (*Source)(nil)
	_ renderer              = (*rodRenderer)(nil)
)

// Source implements interfaces.PageSource by rendering pages in a browser
type Source struct {
	renderer renderer
	timeout  time.Duration
	robots   *robots.Guard
	logger   interfaces.Logger
}

// NewSource creates a Source. The browser is launched on the first Load.
func NewSource(opts Options, guard *robots.Guard, logger interfaces.Logger) *Source {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Source{
		renderer: &rodRenderer{bin: opts.Bin, userAgent: opts.UserAgent, noSandbox: opts.NoSandbox},
		timeout:  opts.Timeout,
		robots:   guard,
		logger:   interfaces.LoggerOrNop(logger),
	}
}

// Load renders pageURL and parses the resulting DOM
func (s *Source) Load(ctx context.Context, pageURL string) (*interfaces.Page, error) {
	u, err := page.ParseURL(pageURL)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.robots != nil {
		if err := s.robots.Check(ctx, u); err != nil {
			return nil, err
		}
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	start := time.Now()
	finalURL, body, err := s.renderer.Render(ctx, u.String(), timeout)
	if err != nil {
		s.logger.Warn("Browser render failed", map[string]interface{}{
			"url":   u.String(),
			"error": err.Error(),
		})
		return nil, err
	}
	s.logger.Debug("Browser render complete", map[string]interface{}{
		"url":         u.String(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	resolved := u
	if parsed, err := url.Parse(finalURL); err == nil && parsed.Host != "" {
		resolved = parsed
	}
	return page.NewPage(resolved, []byte(body))
}

// Close shuts the browser down if it was started
func (s *Source) Close() error {
	return s.renderer.Close()
}

// rodRenderer drives a lazily launched Chrome instance shared by all loads
type rodRenderer struct {
	bin       string
	userAgent string
	noSandbox bool

	// launch starts Chrome and returns its control URL and a kill func.
	// connect attaches to it. Both default to go-rod.
	launch  func() (string, func(), error)
	connect func(controlURL string) (*rod.Browser, error)

	mu      sync.Mutex
	browser *rod.Browser
}

func (r *rodRenderer) launchChrome() (string, func(), error) {
	l := launcher.New()
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	if r.noSandbox {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return "", nil, err
	}
	return u, l.Kill, nil
}

func connectBrowser(controlURL string) (*rod.Browser, error) {
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	launch, connect := r.launch, r.connect
	if launch == nil {
		launch = r.launchChrome
	}
	if connect == nil {
		connect = connectBrowser
	}

	u, kill, err := launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b, err := connect(u)
	if err != nil {
		// stop the Chrome process started above
		kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = b
	return b, nil
}

func (r *rodRenderer) Render(ctx context.Context, pageURL string, timeout time.Duration) (string, string, error) {
	b, err := r.ensureBrowser()
	if err != nil {
		return "", "", err
	}

	p, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer p.Close()

	p = p.Context(ctx).Timeout(timeout)
	if r.userAgent != "" {
		if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}); err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrPageLoad, err)
		}
	}
	if err := p.Navigate(pageURL); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	html, err := p.HTML()
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	finalURL := pageURL
	if info, err := p.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}
	return finalURL, html, nil
}

func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
