// Package content reads posts from a Prismic REST API v2 repository.
package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/bilgisen/spacetraveling/internal/utils"
	"github.com/go-resty/resty/v2"
)

// Options configures the HTTP behaviour of a Client.
type Options struct {
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
}

// QueryOptions narrows a listing query.
type QueryOptions struct {
	PageSize int
}

// Client is a read-only client for one content repository.
type Client struct {
	client *resty.Client
	apiURL string
	host   string
}

// New creates a client for the repository API root, e.g.
// https://spacetraveling.cdn.prismic.io/api/v2.
func New(apiURL string, opts Options) (*Client, error) {
	u, err := url.Parse(apiURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("content: invalid api url %q", apiURL)
	}

	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryWaitTime == 0 {
		opts.RetryWaitTime = 2 * time.Second
	}
	if opts.RetryMaxWaitTime == 0 {
		opts.RetryMaxWaitTime = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(opts.RetryMaxWaitTime).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		})

	return &Client{
		client: client,
		apiURL: strings.TrimRight(apiURL, "/"),
		host:   u.Host,
	}, nil
}

// QueryByType returns the first page of documents of the given type.
func (c *Client) QueryByType(ctx context.Context, docType string, opts QueryOptions) (*models.PostPage, error) {
	ref, err := c.masterRef(ctx)
	if err != nil {
		return nil, err
	}

	params := map[string]string{
		"ref": ref,
		"q":   fmt.Sprintf("[[at(document.type, %s)]]", strconv.Quote(docType)),
	}
	if opts.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(opts.PageSize)
	}

	endpoint := c.apiURL + "/documents/search"
	body, err := c.get(ctx, "query-by-type", endpoint, params)
	if err != nil {
		return nil, err
	}

	page, err := decodePage(body)
	if err != nil {
		return nil, &FetchError{Op: "query-by-type", URL: endpoint, Err: err}
	}
	return page, nil
}

// FetchPage follows a next_page cursor returned by a previous listing.
func (c *Client) FetchPage(ctx context.Context, cursor string) (*models.PostPage, error) {
	if err := c.ValidateCursor(cursor); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "fetch-page", cursor, nil)
	if err != nil {
		return nil, err
	}

	page, err := decodePage(body)
	if err != nil {
		return nil, &FetchError{Op: "fetch-page", URL: cursor, Err: err}
	}
	return page, nil
}

// QueryByUID returns the document of the given type with the given UID.
func (c *Client) QueryByUID(ctx context.Context, docType, uid string) (*models.PostDetail, error) {
	if !utils.ValidSlug(uid) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUID, uid)
	}

	ref, err := c.masterRef(ctx)
	if err != nil {
		return nil, err
	}

	params := map[string]string{
		"ref": ref,
		"q":   fmt.Sprintf("[[at(my.%s.uid, %s)]]", docType, strconv.Quote(uid)),
	}

	endpoint := c.apiURL + "/documents/search"
	body, err := c.get(ctx, "query-by-uid", endpoint, params)
	if err != nil {
		return nil, err
	}

	detail, err := decodeDetail(body)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, docType, uid)
	}
	if err != nil {
		return nil, &FetchError{Op: "query-by-uid", URL: endpoint, Err: err}
	}
	return detail, nil
}

// ValidateCursor checks that cursor is an absolute URL on the repository host.
func (c *Client) ValidateCursor(cursor string) error {
	u, err := url.Parse(cursor)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidCursor, u.Scheme)
	}
	if u.Host != c.host {
		return fmt.Errorf("%w: host %q", ErrInvalidCursor, u.Host)
	}
	return nil
}

func (c *Client) masterRef(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "api", c.apiURL, nil)
	if err != nil {
		return "", err
	}
	ref, err := decodeMasterRef(body)
	if err != nil {
		return "", &FetchError{Op: "api", URL: c.apiURL, Err: err}
	}
	return ref, nil
}

func (c *Client) get(ctx context.Context, op, endpoint string, params map[string]string) ([]byte, error) {
	req := c.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, &FetchError{Op: op, URL: endpoint, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{
			Op:         op,
			URL:        endpoint,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}
	return resp.Body(), nil
}
