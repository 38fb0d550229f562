package clients

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	Logger "github.com/moodfeed/tslamood/utils/log"
)

type HttpClient struct {
	header  http.Header
	cookies []http.Cookie

	client *http.Client
}

func NewDefaultHttpClient() *HttpClient {
	return &HttpClient{header: http.Header{}, cookies: []http.Cookie{}, client: &http.Client{Timeout: 30 * time.Second}}
}

func NewHttpClient(header http.Header, cookies []http.Cookie, timeout time.Duration) *HttpClient {
	return &HttpClient{header: header, cookies: cookies, client: &http.Client{Timeout: timeout}}
}

func (c *HttpClient) Get(ctx context.Context, uri string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *HttpClient) Post(ctx context.Context, uri, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

func (c *HttpClient) do(req *http.Request) (*http.Response, error) {
	for key, vals := range c.header {
		req.Header[key] = vals
	}
	for _, cookie := range c.cookies {
		req.AddCookie(&cookie)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if IsNon200HttpResponse(res) {
		MaybeLogNon200HttpError(res)
		return res, errors.Errorf("non-200 http code: %d", res.StatusCode)
	}
	return res, nil
}

// Log http response if the error code is not 2XX
func MaybeLogNon200HttpError(res *http.Response) {
	if IsNon200HttpResponse(res) {
		Logger.Log.Errorf("non-200 http code: %d", res.StatusCode)
	}
}

func IsNon200HttpResponse(res *http.Response) bool {
	return res.StatusCode >= 300
}
