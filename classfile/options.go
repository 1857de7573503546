package classfile

import (
	"github.com/tliron/commonlog"
)

type options struct {
	maxDepth         int
	minMajor         uint16
	maxMajor         uint16
	checkVersion     bool
	checkDescriptors bool
	log              commonlog.Logger
}

type Option func(*options)

// WithMaxDepth sets how deeply annotations, element values and nested
// attributes may be stacked. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithVersionRange rejects class files whose major version lies outside
// [minMajor, maxMajor] with an UnsupportedVersionError.
func WithVersionRange(minMajor, maxMajor uint16) Option {
	return func(o *options) {
		o.minMajor = minMajor
		o.maxMajor = maxMajor
		o.checkVersion = true
	}
}

// WithDescriptorCheck makes field and method descriptors subject to the
// descriptor grammar, failing with InvalidDescriptorError.
func WithDescriptorCheck() Option {
	return func(o *options) {
		o.checkDescriptors = true
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		log:      commonlog.GetLogger("classfile"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
