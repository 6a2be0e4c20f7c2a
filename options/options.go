package options

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type UniqueIdentifierType string

const ua = "caelisco/form-client/v1.0.0"

// FormContentType is sent with form bodies unless Option.FormContentType overrides it.
const FormContentType = "application/x-www-form-urlencoded"

const (
	IdentifierNone UniqueIdentifierType = ""
	IdentifierUUID UniqueIdentifierType = "uuid"
	IdentifierULID UniqueIdentifierType = "ulid"
)

// Option configures a single request, or every request of a client when used
// as its global option. The zero value is usable; New fills in the defaults.
type Option struct {
	Verbose                  bool                                           // Log each step of the request through Logger
	Logger                   *slog.Logger                                   // Defaults to a slog TextHandler on stdout
	Header                   http.Header                                    // Request headers
	Cookies                  []*http.Cookie                                 // Request cookies
	ProtocolScheme           string                                         // Scheme for urls that have none, https:// when empty
	Compression              CompressionType                                // Request body compression
	CustomCompressionType    CompressionType                                // Content-Encoding announced for CompressionCustom
	CustomCompressor         func(w *io.PipeWriter) (io.WriteCloser, error) // Writer used for CompressionCustom
	UserAgent                string                                         //
	FollowRedirect           bool                                           // Follow 3xx responses
	PreserveMethodOnRedirect bool                                           // Keep the original method when following a redirect
	UniqueIdentifierType     UniqueIdentifierType                           // Kind of id stamped on each Response
	Transport                *http.Transport                                //
	ResponseWriter           ResponseWriter                                 // Where the response body goes
	FormContentType          string                                         // Content-Type of form bodies, see FormContentType
	UploadBufferSize         *int                                           // Copy buffer used while compressing the body
	DownloadBufferSize       *int                                           // Copy buffer used while reading the response
	OnUploadProgress         func(bytesRead, totalBytes int64)              //
	OnDownloadProgress       func(bytesRead, totalBytes int64)              //
}

// New returns an Option with the defaults applied, then merges opts over it
// in order so later options win.
func New(opts ...*Option) *Option {
	opt := &Option{
		Logger:               slog.New(slog.NewTextHandler(os.Stdout, nil)),
		Header:               http.Header{},
		UserAgent:            ua,
		UniqueIdentifierType: IdentifierULID,
		Transport:            defaultTransport(),
		ResponseWriter:       ResponseWriter{Type: WriteToBuffer},
		FormContentType:      FormContentType,
	}

	for _, o := range opts {
		if o != nil {
			opt.Merge(o)
		}
	}

	return opt
}

// AddHeader adds a request header, creating the header map when needed.
func (opt *Option) AddHeader(key string, value string) {
	if opt.Header == nil {
		opt.Header = http.Header{}
	}
	opt.Header.Add(key, value)
}

// AddCookie appends a request cookie.
func (opt *Option) AddCookie(cookie *http.Cookie) {
	opt.Cookies = append(opt.Cookies, cookie)
}

// GenerateIdentifier returns a new UUID or ULID depending on
// UniqueIdentifierType, or an empty string when it is IdentifierNone.
func (opt *Option) GenerateIdentifier() string {
	switch opt.UniqueIdentifierType {
	case IdentifierUUID:
		return uuid.New().String()
	case IdentifierULID:
		return ulid.Make().String()
	}
	return ""
}

// SetUploadBufferSize sets the copy buffer used while compressing a request
// body. Sizes below one are ignored.
func (opt *Option) SetUploadBufferSize(size int) {
	if size > 0 {
		opt.UploadBufferSize = &size
	}
}

// SetDownloadBufferSize sets the copy buffer used while reading the response
// body. Sizes below one are ignored.
func (opt *Option) SetDownloadBufferSize(size int) {
	if size > 0 {
		opt.DownloadBufferSize = &size
	}
}

// Merge copies the settings of src over opt. Headers replace headers of the
// same name and cookies replace cookies of the same name. Boolean switches
// are always taken from src; other fields only when src sets them.
func (opt *Option) Merge(src *Option) {
	if opt.Header == nil {
		opt.Header = http.Header{}
	}
	for key, values := range src.Header {
		opt.Header[key] = values
	}

	for _, sc := range src.Cookies {
		i := slices.IndexFunc(opt.Cookies, func(c *http.Cookie) bool { return c.Name == sc.Name })
		if i >= 0 {
			opt.Cookies[i] = sc
		} else {
			opt.Cookies = append(opt.Cookies, sc)
		}
	}

	opt.Verbose = src.Verbose
	opt.FollowRedirect = src.FollowRedirect
	opt.PreserveMethodOnRedirect = src.PreserveMethodOnRedirect

	if src.Logger != nil {
		opt.Logger = src.Logger
	}
	if src.Transport != nil {
		opt.Transport = src.Transport
	}
	if src.CustomCompressor != nil {
		opt.CustomCompressor = src.CustomCompressor
	}
	if src.UploadBufferSize != nil {
		opt.UploadBufferSize = src.UploadBufferSize
	}
	if src.DownloadBufferSize != nil {
		opt.DownloadBufferSize = src.DownloadBufferSize
	}
	if src.OnUploadProgress != nil {
		opt.OnUploadProgress = src.OnUploadProgress
	}
	if src.OnDownloadProgress != nil {
		opt.OnDownloadProgress = src.OnDownloadProgress
	}

	mergeString(&opt.ProtocolScheme, src.ProtocolScheme)
	mergeString(&opt.Compression, src.Compression)
	mergeString(&opt.CustomCompressionType, src.CustomCompressionType)
	mergeString(&opt.UserAgent, src.UserAgent)
	mergeString(&opt.UniqueIdentifierType, src.UniqueIdentifierType)
	mergeString(&opt.FormContentType, src.FormContentType)

	if src.ResponseWriter.Type != "" {
		opt.ResponseWriter = src.ResponseWriter
	}
}

func mergeString[T ~string](dst *T, src T) {
	if src != "" {
		*dst = src
	}
}

func defaultTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 15 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   5,
		MaxConnsPerHost:       10,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
}
