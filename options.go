package jsonskip

import "github.com/cockroachdb/errors"

// Option is a scanner or splitter option.
type Option func(o *options) error

type options struct {
	width       Width
	copyInput   bool
	chunkSize   int
	concurrency int

	// cls overrides the classifier chosen from width. Used by tests.
	cls classifier
}

func defaultOptions() options {
	return options{
		width:     DefaultWidth(),
		chunkSize: defaultChunkSize,
	}
}

func (o *options) apply(opts []Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

func (o *options) classifier() (classifier, error) {
	if o.cls != nil {
		return o.cls, nil
	}
	return newClassifier(o.width)
}

// WithWidth selects the classification window.
// Default: the width matching the host CPU, see DefaultWidth.
func WithWidth(w Width) Option {
	return func(o *options) error {
		if w != Width16 && w != Width64 {
			return errors.Newf("unsupported window width %d", int(w))
		}
		o.width = w
		return nil
	}
}

// WithCopy will always copy the input into a private padded buffer.
// Without it the input is scanned in place when its capacity already
// holds Padding zero bytes after its length, see Pad.
// Default: false.
func WithCopy(b bool) Option {
	return func(o *options) error {
		o.copyInput = b
		return nil
	}
}

// WithChunkSize sets the number of bytes SplitNDStream reads per chunk
// before extending the chunk to the end of the current line.
// Default: 10MB.
func WithChunkSize(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.Newf("chunk size must be positive, got %d", n)
		}
		o.chunkSize = n
		return nil
	}
}

// WithConcurrency sets the number of chunks SplitNDStream splits in parallel.
// Default: (GOMAXPROCS+1)/2.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.Newf("concurrency must be positive, got %d", n)
		}
		o.concurrency = n
		return nil
	}
}

func withClassifier(c classifier) Option {
	return func(o *options) error {
		o.cls = c
		return nil
	}
}
