package tensorio

import (
	"io"
	"log/slog"
)

const (
	panicCompressionInvalid = "tensorio: WithCompression: unknown codec"
	panicLoggerNil          = "tensorio: WithLogger: nil logger"
)

// Option configures an import or export call.
type Option func(*options)

type options struct {
	compression Compression
	logger      *slog.Logger
}

// WithCompression selects the payload codec for exports. Imports detect the
// codec from the stored header and ignore this option.
// Panics on an unknown codec.
func WithCompression(c Compression) Option {
	if !c.valid() {
		panic(panicCompressionInvalid)
	}

	return func(o *options) { o.compression = c }
}

// WithLogger routes debug records (paths, sizes, codecs) to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{
		compression: CompressionNone,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
