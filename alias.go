package client

import (
	"github.com/caelisco/form-client/form"
	"github.com/caelisco/form-client/options"
	"github.com/caelisco/form-client/response"
)

// Aliases so callers of the package-level functions rarely need to import the
// sub-packages directly.

// Option is an alias to options.Option
type Option = options.Option

// Response is an alias to response.Response
type Response = response.Response

// Entry is an alias to form.Entry, one key/value pair of a form record
type Entry = form.Entry
