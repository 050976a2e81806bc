package api

import (
	"errors"
	"net/url"

	"go.uber.org/zap"

	"weatherapp/pkg/http"
	"weatherapp/pkg/log"
)

// providerHTTPLogger writes provider traffic to the application log with the API key removed.
type providerHTTPLogger struct{}

func NewProviderHTTPLogger() http.HTTPLogger {
	return &providerHTTPLogger{}
}

func (l *providerHTTPLogger) LogRequest(method, rawURL string, headers map[string]string, body string) {
	log.Debug("Provider request",
		zap.String("method", method),
		zap.String("url", redactURL(rawURL)))
}

func (l *providerHTTPLogger) LogResponseSuccess(method, rawURL string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64) {
	log.Debug("Provider response",
		zap.String("method", method),
		zap.String("url", redactURL(rawURL)),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (l *providerHTTPLogger) LogResponseError(method, rawURL string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("Provider call failed",
		zap.String("method", method),
		zap.String("url", redactURL(rawURL)),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("response", responseBody),
		zap.Error(redactError(err)))
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable url>"
	}
	query := parsed.Query()
	if query.Has("appid") {
		query.Set("appid", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// redactError strips the API key from the URL embedded in transport errors.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: redactURL(urlErr.URL), Err: urlErr.Err}
	}
	return err
}
