package client

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caelisco/form-client/form"
	"github.com/caelisco/form-client/options"
	"github.com/caelisco/form-client/response"
)

const (
	useragent              = "caelisco/form-client/v1.0.0"
	SchemeHTTP      string = "http://"
	SchemeHTTPS     string = "https://"
	SchemeWS        string = "ws://"
	SchemeWSS       string = "wss://"
	ContentType     string = "Content-Type"
	ContentTypeForm string = options.FormContentType
)

// A global default client is used for all of the method-based requests.
var client = &http.Client{
	Timeout: 0,
}

// doRequest performs the HTTP request to the server/resource.
func doRequest(client *http.Client, method string, url string, payload any, opts ...*options.Option) (response.Response, error) {
	st := time.Now()

	opt := options.New(opts...)

	if client.Transport == nil {
		client.Transport = opt.Transport
	}

	url, err := normaliseURL(url, opt.ProtocolScheme)
	if err != nil {
		return response.Response{}, fmt.Errorf("supplied url did not pass url.Parse(): %w", err)
	}

	if opt.UserAgent == "" {
		opt.UserAgent = useragent
	}
	opt.Header.Set("User-Agent", opt.UserAgent)

	payloadReader, totalSize, err := createPayloadReader(payload)
	if err != nil {
		return response.Response{}, fmt.Errorf("unable to create payload reader: %w", err)
	}

	// Wrap reader with progress tracking if callback provided
	if opt.OnUploadProgress != nil && payloadReader != nil {
		payloadReader = options.NewProgressReader(payloadReader, totalSize, opt.OnUploadProgress)
	}

	response := response.New(url, method, payload, opt)

	// The body is streamed through the compressor, so its final size is unknown
	// and the request is sent chunked.
	var pr *io.PipeReader
	if payloadReader != nil && opt.Compression != options.CompressionNone {
		opt.LogVerbose("Compressing data", "compression type", opt.Compression)
		var pw *io.PipeWriter
		pr, pw = io.Pipe()
		go compress(opt, pw, payloadReader)

		opt.Header.Set("Content-Encoding", opt.ContentEncoding())
		opt.Header.Del("Content-Length")
	}

	var req *http.Request
	if pr == nil {
		opt.LogVerbose("setting up NewRequest", "reader", "io.Reader")
		req, err = http.NewRequest(method, url, payloadReader)
		if err == nil && payloadReader != nil && totalSize >= 0 {
			req.ContentLength = totalSize
		}
	} else {
		opt.LogVerbose("setting up NewRequest", "reader", "io.PipeReader")
		req, err = http.NewRequest(method, url, pr)
	}

	if err != nil {
		response.Error = err
		return response, err
	}

	// Set headers from the options
	for k, v := range opt.Header {
		req.Header[k] = v
	}

	// Set cookies from the options
	for _, v := range opt.Cookies {
		req.AddCookie(v)
	}

	// When a redirect is followed, the http method can change from the original
	// method to a GET unless PreserveMethodOnRedirect is set.
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		opt.LogVerbose("Server wanted to redirect", "Location", req.Response.Header.Get("Location"), "status code", req.Response.StatusCode)

		if !opt.FollowRedirect {
			return http.ErrUseLastResponse
		}

		if opt.PreserveMethodOnRedirect {
			req.Method = via[0].Method
			opt.LogVerbose("Preserving original method", "http.Method", req.Method)
		} else {
			opt.LogVerbose("Not preserving method", "http.Method", req.Method)
		}

		return nil
	}

	// Initialize the writer based on the options
	writer, err := opt.InitialiseWriter()
	if err != nil {
		return response, fmt.Errorf("failed to initialise writer: %w", err)
	}

	opt.LogVerbose("sending request", "url", req.URL, "method", method, "headers", req.Header)
	response.RequestTime = time.Now().Unix()
	r, err := client.Do(req)
	if err != nil {
		writer.Close()
		response.Error = err
		return response, err
	}
	defer r.Body.Close()
	response.ResponseTime = time.Now().Unix()

	opt.LogVerbose("Response received",
		"status", r.Status,
		"content-length", r.ContentLength,
		"content-type", r.Header.Get("Content-Type"))

	if opt.OnDownloadProgress != nil {
		writer = options.NewProgressWriter(writer, r.ContentLength, opt.OnDownloadProgress)
	}
	defer writer.Close()

	// Only use custom buffer size if explicitly set
	if opt.DownloadBufferSize != nil {
		buf := make([]byte, *opt.DownloadBufferSize)
		_, err = io.CopyBuffer(writer, r.Body, buf)
	} else {
		_, err = io.Copy(writer, r.Body)
	}
	if err != nil {
		response.Error = err
		return response, err
	}

	// When writing to a buffer, expose it as the response body
	if buf, ok := opt.GetWriter().(*options.WriteCloserBuffer); ok {
		response.Body = *buf
	}

	response.ProcessedTime = time.Now().Unix()
	opt.LogVerbose("Response body copy completed", "processed-time", response.ProcessedTime)

	response.PopulateResponse(r, st)

	return response, nil
}

// compress copies src through the configured compressor into pw.
func compress(opt *options.Option, pw *io.PipeWriter, src io.Reader) {
	compressor, err := opt.GetCompressor(pw)
	if err != nil {
		pw.CloseWithError(fmt.Errorf("unsupported compression type: %s", opt.Compression))
		return
	}

	if opt.UploadBufferSize != nil {
		buf := make([]byte, *opt.UploadBufferSize)
		_, err = io.CopyBuffer(compressor, src, buf)
	} else {
		_, err = io.Copy(compressor, src)
	}
	if err != nil {
		compressor.Close()
		pw.CloseWithError(fmt.Errorf("compression error during copy: %w", err))
		return
	}

	pw.CloseWithError(compressor.Close())
}

// encodeForm serializes a record into its ordered form pairs.
func encodeForm(record any) (*form.Values, error) {
	values := &form.Values{}
	if err := form.AppendRecord(values, record); err != nil {
		return nil, fmt.Errorf("unable to encode form payload: %w", err)
	}
	return values, nil
}

// doFormRequest sends record as an application/x-www-form-urlencoded body.
// Nothing is sent when the record cannot be encoded.
func doFormRequest(client *http.Client, method string, url string, record any, opts ...*options.Option) (response.Response, error) {
	values, err := encodeForm(record)
	if err != nil {
		return response.Response{}, err
	}
	return sendForm(client, method, url, values, opts...)
}

func sendForm(client *http.Client, method string, url string, values *form.Values, opts ...*options.Option) (response.Response, error) {
	opt := options.New(opts...)
	opt.Header.Set(ContentType, opt.FormContentType)
	opt.LogForm("encoded form payload", values)

	resp, err := doRequest(client, method, url, values.Bytes(), opt)
	resp.Form = values.Pairs()
	return resp, err
}

// doQueryRequest appends record to the URL as its query string.
func doQueryRequest(client *http.Client, method string, url string, record any, opts ...*options.Option) (response.Response, error) {
	values, err := encodeForm(record)
	if err != nil {
		return response.Response{}, err
	}
	return sendQuery(client, method, url, values, opts...)
}

func sendQuery(client *http.Client, method string, url string, values *form.Values, opts ...*options.Option) (response.Response, error) {
	opt := options.New(opts...)
	opt.LogForm("encoded query string", values)

	resp, err := doRequest(client, method, withQuery(url, values), nil, opt)
	resp.Form = values.Pairs()
	return resp, err
}

// withQuery appends encoded pairs to url, keeping any existing query and fragment.
func withQuery(url string, values *form.Values) string {
	if values.Len() == 0 {
		return url
	}

	url, fragment, hasFragment := strings.Cut(url, "#")
	switch {
	case strings.HasSuffix(url, "?") || strings.HasSuffix(url, "&"):
		url += values.Encode()
	case strings.Contains(url, "?"):
		url += "&" + values.Encode()
	default:
		url += "?" + values.Encode()
	}
	if hasFragment {
		url += "#" + fragment
	}
	return url
}

// Get performs an HTTP GET to the specified URL.
// It accepts the URL string as its first argument.
// Optionally, you can provide additional Options to customize the request.
// Returns the HTTP response and an error if any.
func Get(url string, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodGet, url, nil, opts...)
}

// GetQuery performs an HTTP GET with record encoded as the query string.
// The record may be a struct, a map or a []form.Entry; see form.AppendRecord.
func GetQuery(url string, record any, opts ...*options.Option) (response.Response, error) {
	return doQueryRequest(client, http.MethodGet, url, record, opts...)
}

// Post performs an HTTP POST to the specified URL with the given payload.
// The payload may be nil, a []byte, a string, an *os.File or any io.Reader.
// Optionally, you can provide additional Options to customize the request.
// Returns the HTTP response and an error if any.
func Post(url string, payload any, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodPost, url, payload, opts...)
}

// PostForm performs an HTTP POST with record encoded as an x-www-form-urlencoded body.
// The record may be a struct, a map or a []form.Entry; see form.AppendRecord.
// If the record cannot be encoded no request is made and the form error is returned.
func PostForm(url string, record any, opts ...*options.Option) (response.Response, error) {
	return doFormRequest(client, http.MethodPost, url, record, opts...)
}

// Put performs an HTTP PUT to the specified URL with the given payload.
func Put(url string, payload any, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodPut, url, payload, opts...)
}

// PutForm performs an HTTP PUT with record encoded as an x-www-form-urlencoded body.
func PutForm(url string, record any, opts ...*options.Option) (response.Response, error) {
	return doFormRequest(client, http.MethodPut, url, record, opts...)
}

// Patch performs an HTTP PATCH to the specified URL with the given payload.
func Patch(url string, payload any, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodPatch, url, payload, opts...)
}

// PatchForm performs an HTTP PATCH with record encoded as an x-www-form-urlencoded body.
func PatchForm(url string, record any, opts ...*options.Option) (response.Response, error) {
	return doFormRequest(client, http.MethodPatch, url, record, opts...)
}

// Delete performs an HTTP DELETE to the specified URL.
func Delete(url string, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodDelete, url, nil, opts...)
}

// Connect performs an HTTP CONNECT to the specified URL.
func Connect(url string, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodConnect, url, nil, opts...)
}

// Head performs an HTTP HEAD to the specified URL.
func Head(url string, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodHead, url, nil, opts...)
}

// Options performs an HTTP OPTIONS to the specified URL.
func Options(url string, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodOptions, url, nil, opts...)
}

// Trace performs an HTTP TRACE to the specified URL.
func Trace(url string, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, http.MethodTrace, url, nil, opts...)
}

// Custom performs a custom HTTP method to the specified URL with the given payload.
// It accepts the HTTP method as its first argument, the URL string as the second argument,
// the payload as the third argument, and optionally additional Options to customize the request.
// Returns the HTTP response and an error if any.
func Custom(method string, url string, payload any, opts ...*options.Option) (response.Response, error) {
	return doRequest(client, method, url, payload, opts...)
}
