package fetch

import (
	"context"

	"go.uber.org/zap"
)

// PostingOptions configures job posting retrieval.
type PostingOptions struct {
	// HTTP holds the underlying request options. Nil means defaults.
	HTTP *Options
	// UseBrowser enables headless browser fallback for pages whose HTTP
	// response yields too little text.
	UseBrowser bool
	Logger     *zap.Logger
}

// Posting retrieves a job posting URL and returns its extracted plain text.
// The platform is detected from the URL so ATS-specific selectors apply,
// and the headless browser fallback kicks in when the static HTML is too
// thin to be a real posting.
func Posting(ctx context.Context, urlStr string, opts *PostingOptions) (string, error) {
	if opts == nil {
		opts = &PostingOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	platform := DetectPlatform(urlStr)
	logger.Debug("fetching job posting",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)))

	result, err := URL(ctx, urlStr, opts.HTTP)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML, platform.ContentSelectors(), platform.NoiseSelectors()...)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to extract posting text", Cause: err}
	}

	if opts.UseBrowser && ShouldUseBrowser(text) {
		logger.Debug("static HTML too thin, rendering in browser",
			zap.String("url", urlStr),
			zap.Int("chars", len(text)))

		timeout := DefaultTimeout
		if opts.HTTP != nil && opts.HTTP.Timeout > 0 {
			timeout = opts.HTTP.Timeout
		}
		html, err := WithBrowser(ctx, urlStr, timeout, logger)
		if err != nil {
			return "", &Error{URL: urlStr, Message: "browser fallback failed", Cause: err}
		}
		text, err = ExtractMainText(html, platform.ContentSelectors(), platform.NoiseSelectors()...)
		if err != nil {
			return "", &Error{URL: urlStr, Message: "failed to extract rendered text", Cause: err}
		}
	}

	if text == "" {
		return "", &Error{URL: urlStr, Message: "no readable text found"}
	}
	return text, nil
}
