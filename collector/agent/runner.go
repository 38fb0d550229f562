package agent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/config"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

// ChromeRunner implements collector.AgentRunner on a real Chrome instance.
// Each run restores the platform's cached session, renders the start URL,
// scrolls for more content, then hands the final page text to the extractor.
type ChromeRunner struct {
	cfg       config.BrowserConfig
	cache     *SessionCache
	extractor PageExtractor
}

func NewChromeRunner(cfg config.BrowserConfig, cache *SessionCache, extractor PageExtractor) *ChromeRunner {
	return &ChromeRunner{cfg: cfg, cache: cache, extractor: extractor}
}

func (r *ChromeRunner) Run(ctx context.Context, task collector.AgentTask) (*collector.RunResult, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(r.cfg.Headless, r.cfg.ExecPath)...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.cfg.RunTimeout)
	defer cancelTimeout()

	if state, ok := r.cache.Load(task.Platform); ok {
		if err := r.restoreSession(browserCtx, state); err != nil {
			Logger.Log.WithField("platform", task.Platform).Warnf("failed to restore session: %v", err)
		}
	}

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(task.StartURL),
		chromedp.Sleep(r.cfg.ScrollWaitTime),
	); err != nil {
		return nil, collector.NewTransportError(collector.TransportNetwork, task.Platform, "failed to open page", err)
	}

	maxScrolls := task.MaxScrolls
	if maxScrolls <= 0 {
		maxScrolls = r.cfg.MaxScrolls
	}

	var pageText string
	result := &collector.RunResult{}
	for i := 0; i <= maxScrolls; i++ {
		if err := chromedp.Run(browserCtx,
			chromedp.Evaluate("document.body.innerText", &pageText),
		); err != nil {
			return nil, collector.NewTransportError(collector.TransportNetwork, task.Platform, "failed to read page text", err)
		}

		if i < maxScrolls {
			if err := chromedp.Run(browserCtx,
				chromedp.Evaluate("window.scrollTo(0, document.body.scrollHeight)", nil),
				chromedp.Sleep(r.cfg.ScrollWaitTime),
			); err != nil {
				break
			}
		}
	}

	if err := r.persistSession(browserCtx, task.Platform); err != nil {
		Logger.Log.WithField("platform", task.Platform).Warnf("failed to persist session: %v", err)
	}

	raw, err := r.extractor.Extract(ctx, task.Objective, pageText)
	if err != nil {
		return nil, err
	}
	result.FinalResult = raw
	return result, nil
}

func (r *ChromeRunner) restoreSession(ctx context.Context, state json.RawMessage) error {
	var cookies []*network.Cookie
	if err := json.Unmarshal(state, &cookies); err != nil {
		return errors.Wrap(err, "cached session state is not a cookie list")
	}

	return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range cookies {
			if err := cookieSetter(c).Do(ctx); err != nil {
				return err
			}
		}
		return nil
	}))
}

// cookieSetter rebuilds one cached cookie as a SetCookie call. Expires is
// carried over only for persistent cookies; 0 marks a session cookie.
func cookieSetter(c *network.Cookie) *network.SetCookieParams {
	setter := network.SetCookie(c.Name, c.Value).
		WithDomain(c.Domain).
		WithPath(c.Path).
		WithSecure(c.Secure).
		WithHTTPOnly(c.HTTPOnly).
		WithSameSite(c.SameSite)
	if c.Expires > 0 {
		expires := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
		setter = setter.WithExpires(&expires)
	}
	return setter
}

func (r *ChromeRunner) persistSession(ctx context.Context, platform string) error {
	var cookies []*network.Cookie
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = storage.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return err
	}

	state, err := json.Marshal(cookies)
	if err != nil {
		return err
	}
	return r.cache.Save(platform, state)
}
