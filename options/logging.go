package options

import (
	"log/slog"
	"os"

	"github.com/caelisco/form-client/form"
)

// LogVerbose logs msg at info level when verbose logging is enabled.
func (opt *Option) LogVerbose(msg string, args ...any) {
	if opt.Verbose && opt.Logger != nil {
		opt.Logger.Info(msg, args...)
	}
}

// LogForm logs the field names of an encoded form in emission order, each
// name once, with the pair count and encoded size. Values are never logged.
func (opt *Option) LogForm(msg string, values *form.Values) {
	if !opt.Verbose || opt.Logger == nil {
		return
	}

	seen := make(map[string]struct{})
	var fields []string
	for _, p := range values.Pairs() {
		if _, ok := seen[p.Name]; !ok {
			seen[p.Name] = struct{}{}
			fields = append(fields, p.Name)
		}
	}

	opt.Logger.Info(msg,
		"pairs", values.Len(),
		"fields", fields,
		"bytes", len(values.Encode()))
}

// UseTextLogger enables verbose logging through a slog TextHandler on stdout.
func (opt *Option) UseTextLogger() {
	opt.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

// UseJsonLogger enables verbose logging through a slog JSONHandler on stdout.
func (opt *Option) UseJsonLogger() {
	opt.SetLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// SetLogger enables verbose logging through logger.
func (opt *Option) SetLogger(logger *slog.Logger) {
	opt.Verbose = true
	opt.Logger = logger
}
