package whttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

const userAgent = "pokedex/2 (+https://pokeapi.co)"

// DefaultRetryMax is the retry budget used unless configured otherwise. A
// failed request is reported on its first attempt; the user re-triggers it.
const DefaultRetryMax = 0

type WHTTPHeader struct {
	Name  string
	Value string
}

type WHTTPReq struct {
	URL     string
	Method  string
	Headers []WHTTPHeader
}

type WHTTPRes struct {
	StatusCode int
	BodyString string
}

// ClientOptions controls the retry policy of NewClient.
type ClientOptions struct {
	RetryMax int
	Timeout  time.Duration
	Proxy    string
	Logger   *logrus.Logger
}

// NewClient builds a retrying client. Non-2xx responses are handed back to
// the caller once retries are exhausted instead of being turned into errors,
// so callers can tell a 404 apart from a transport failure.
func NewClient(opts ClientOptions) (*retryablehttp.Client, error) {
	c := retryablehttp.NewClient()
	c.RetryMax = opts.RetryMax
	c.RetryWaitMin = 200 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.Logger != nil {
		c.Logger = leveledLogrus{opts.Logger}
	} else {
		c.Logger = nil
	}
	if opts.Timeout > 0 {
		c.HTTPClient.Timeout = opts.Timeout
	}
	if opts.Proxy != "" {
		if err := SetupProxy(c, opts.Proxy); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetupProxy routes every request of client through proxy.
func SetupProxy(client *retryablehttp.Client, proxy string) error {
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %w", err)
	}
	client.HTTPClient.Transport = &http.Transport{
		Proxy:               http.ProxyURL(proxyURL),
		MaxIdleConnsPerHost: 8,
	}
	return nil
}

func SendHTTPRequest(ctx context.Context, wReq *WHTTPReq, client *retryablehttp.Client) (wRes *WHTTPRes, err error) {
	method := wReq.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, wReq.URL, nil)
	if err != nil {
		return nil, err
	}

	// Set common headers
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")

	for _, h := range wReq.Headers {
		req.Header.Add(h.Name, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &WHTTPRes{
		StatusCode: resp.StatusCode,
		BodyString: string(bodyBytes),
	}, nil
}

// leveledLogrus adapts logrus to retryablehttp.LeveledLogger.
type leveledLogrus struct {
	l *logrus.Logger
}

func (l leveledLogrus) fields(kv []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}

func (l leveledLogrus) Error(msg string, kv ...interface{}) {
	l.l.WithFields(l.fields(kv)).Error(msg)
}

func (l leveledLogrus) Info(msg string, kv ...interface{}) {
	l.l.WithFields(l.fields(kv)).Info(msg)
}

func (l leveledLogrus) Debug(msg string, kv ...interface{}) {
	l.l.WithFields(l.fields(kv)).Debug(msg)
}

func (l leveledLogrus) Warn(msg string, kv ...interface{}) {
	l.l.WithFields(l.fields(kv)).Warn(msg)
}
