package client

import (
	"net/http"

	"github.com/caelisco/form-client/options"
	"github.com/caelisco/form-client/response"
)

// Client represents an HTTP client.
type Client struct {
	client    *http.Client        // HTTP client used to make requests.
	responses []response.Response // Store responses for reference.
	global    *options.Option     // Global options applied to all requests.
}

// New returns a reusable Client.
// It is possible to include a global Option which will be used on all subsequent requests.
func New(opts ...*options.Option) *Client {
	return &Client{
		client: &http.Client{},
		global: options.New(opts...),
	}
}

// NewCustom returns a reusable client with a custom defined *http.Client
// This is useful in scenarios where you want to change any configurations for the http.Client
func NewCustom(client *http.Client, opts ...*options.Option) *Client {
	c := New(opts...)
	c.client = client
	return c
}

// GetGlobalOptions returns the global Option of the client.
func (c *Client) GetGlobalOptions() *options.Option {
	return c.global
}

// UpdateGlobalOptions replaces the global Option of the client.
func (c *Client) UpdateGlobalOptions(opt *options.Option) {
	c.global = options.New(opt)
}

// CloneGlobalOptions returns a copy of the global Option that can be modified
// without affecting the client.
func (c *Client) CloneGlobalOptions() *options.Option {
	opt := options.New(c.global)
	opt.Header = c.global.Header.Clone()
	opt.Cookies = append([]*http.Cookie(nil), c.global.Cookies...)
	return opt
}

// Clear clears any Responses that have already been made and kept.
func (c *Client) Clear() {
	c.responses = nil
}

// merge layers the per-request options, in order, over a copy of the global option.
func (c *Client) merge(opts []*options.Option) *options.Option {
	opt := c.CloneGlobalOptions()
	for _, o := range opts {
		if o != nil {
			opt.Merge(o)
		}
	}
	return opt
}

func (c *Client) keep(resp response.Response, err error) (response.Response, error) {
	c.responses = append(c.responses, resp)
	return resp, err
}

func (c *Client) doRequest(method string, url string, payload any, opts []*options.Option) (response.Response, error) {
	return c.keep(doRequest(c.client, method, url, payload, c.merge(opts)))
}

// Get performs an HTTP GET to the specified URL.
func (c *Client) Get(url string, opts ...*options.Option) (response.Response, error) {
	return c.doRequest(http.MethodGet, url, nil, opts)
}

// GetQuery performs an HTTP GET with record encoded as the query string.
// A record that cannot be encoded is not sent and is not kept in Responses.
func (c *Client) GetQuery(url string, record any, opts ...*options.Option) (response.Response, error) {
	values, err := encodeForm(record)
	if err != nil {
		return response.Response{}, err
	}
	return c.keep(sendQuery(c.client, http.MethodGet, url, values, c.merge(opts)))
}

// Post performs an HTTP POST to the specified URL with the given payload.
func (c *Client) Post(url string, payload any, opts ...*options.Option) (response.Response, error) {
	return c.doRequest(http.MethodPost, url, payload, opts)
}

// PostForm performs an HTTP POST with record encoded as an x-www-form-urlencoded body.
// A record that cannot be encoded is not sent and is not kept in Responses.
func (c *Client) PostForm(url string, record any, opts ...*options.Option) (response.Response, error) {
	return c.doForm(http.MethodPost, url, record, opts)
}

// Put performs an HTTP PUT to the specified URL with the given payload.
func (c *Client) Put(url string, payload any, opts ...*options.Option) (response.Response, error) {
	return c.doRequest(http.MethodPut, url, payload, opts)
}

// PutForm performs an HTTP PUT with record encoded as an x-www-form-urlencoded body.
func (c *Client) PutForm(url string, record any, opts ...*options.Option) (response.Response, error) {
	return c.doForm(http.MethodPut, url, record, opts)
}

// Patch performs an HTTP PATCH to the specified URL with the given payload.
func (c *Client) Patch(url string, payload any, opts ...*options.Option) (response.Response, error) {
	return c.doRequest(http.MethodPatch, url, payload, opts)
}

// PatchForm performs an HTTP PATCH with record encoded as an x-www-form-urlencoded body.
func (c *Client) PatchForm(url string, record any, opts ...*options.Option) (response.Response, error) {
	return c.doForm(http.MethodPatch, url, record, opts)
}

// Delete performs an HTTP DELETE to the specified URL.
func (c *Client) Delete(url string, opts ...*options.Option) (response.Response, error) {
	return c.doRequest(http.MethodDelete, url, nil, opts)
}

// Head performs an HTTP HEAD to the specified URL.
func (c *Client) Head(url string, opts ...*options.Option) (response.Response, error) {
	return c.doRequest(http.MethodHead, url, nil, opts)
}

// Options performs an HTTP OPTIONS to the specified URL.
func (c *Client) Options(url string, opts ...*options.Option) (response.Response, error) {
	return c.doRequest(http.MethodOptions, url, nil, opts)
}

// Custom performs a custom HTTP method to the specified URL with the given payload.
func (c *Client) Custom(method string, url string, payload any, opts ...*options.Option) (response.Response, error) {
	return c.doRequest(method, url, payload, opts)
}

// Responses returns a slice of responses made by this Client
func (c *Client) Responses() []response.Response {
	return c.responses
}

func (c *Client) doForm(method string, url string, record any, opts []*options.Option) (response.Response, error) {
	values, err := encodeForm(record)
	if err != nil {
		return response.Response{}, err
	}
	return c.keep(sendForm(c.client, method, url, values, c.merge(opts)))
}
