package agent

import "github.com/chromedp/chromedp"

// A realistic desktop user agent. Both x.com and reddit serve degraded pages
// to anything that looks headless.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// allocatorOptions returns chromedp allocator options with the automation
// fingerprints suppressed.
func allocatorOptions(headless bool, execPath string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),

		// navigator.webdriver is the first thing bot detection checks.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),

		chromedp.UserAgent(defaultUserAgent),
		chromedp.WindowSize(1920, 1080),

		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}
	return opts
}
