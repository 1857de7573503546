package batch

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/dhamidi/classcodec/classfile"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusFailed   Status = "failed"
	StatusMismatch Status = "mismatch"
	StatusTimeout  Status = "timeout"
)

type Mode int

const (
	// ModeCheck only decodes.
	ModeCheck Mode = iota
	// ModeRoundTrip decodes, re-encodes and compares the bytes.
	ModeRoundTrip
)

type Result struct {
	Name         string
	Status       Status
	Err          error
	Class        string
	MajorVersion uint16
	MinorVersion uint16
	Size         int
	Duration     time.Duration
}

type Report struct {
	Results   []Result
	StartedAt time.Time
	EndedAt   time.Time
}

// Count returns how many results have the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failures returns every result that is not StatusOK, in report order.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Status != StatusOK {
			failed = append(failed, res)
		}
	}
	return failed
}

// MismatchError reports that re-encoding a class file produced different
// bytes than were decoded.
type MismatchError struct {
	Offset      int
	DecodedSize int
	EncodedSize int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("re-encoded bytes differ at offset %d (decoded %d bytes, encoded %d)", e.Offset, e.DecodedSize, e.EncodedSize)
}

type Runner struct {
	jobs      int
	timeout   time.Duration
	mode      Mode
	failFast  bool
	codecOpts []classfile.Option
	log       commonlog.Logger
}

type Option func(*Runner)

// WithJobs bounds the number of files processed at once. Values below 1 are
// ignored.
func WithJobs(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.jobs = n
		}
	}
}

// WithTimeout bounds the time spent on a single file. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

func WithMode(mode Mode) Option {
	return func(r *Runner) {
		r.mode = mode
	}
}

// WithFailFast stops the run at the first file that does not pass.
func WithFailFast() Option {
	return func(r *Runner) {
		r.failFast = true
	}
}

// WithCodecOptions passes opts to every decode and encode.
func WithCodecOptions(opts ...classfile.Option) Option {
	return func(r *Runner) {
		r.codecOpts = append(r.codecOpts, opts...)
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{
		jobs:    runtime.GOMAXPROCS(0),
		timeout: 10 * time.Second,
		log:     commonlog.GetLogger("batch"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every class file found under paths. Per-file problems are
// recorded in the report; the returned error is set when a path cannot be
// read at all, the context ends, or a fail-fast run hits a failure.
func (r *Runner) Run(ctx context.Context, paths ...string) (*Report, error) {
	report := &Report{StartedAt: time.Now()}
	defer func() { report.EndedAt = time.Now() }()

	var sources []source
	for _, path := range paths {
		c, err := collect(path)
		if err != nil {
			return report, err
		}
		defer c.Close()
		sources = append(sources, c.sources...)
		report.Results = append(report.Results, c.errors...)
	}
	r.log.Debugf("processing %d class files with %d jobs", len(sources), r.jobs)

	results := make([]Result, len(sources))
	done := make([]bool, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, src := range sources {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.process(gctx, src)
			done[i] = true
			if r.failFast && results[i].Status != StatusOK {
				return fmt.Errorf("%s: %w", src.name, results[i].Err)
			}
			return nil
		})
	}
	err := g.Wait()

	for i, res := range results {
		if done[i] {
			report.Results = append(report.Results, res)
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	return report, err
}

// process runs one file under the per-file timeout. Decoding is not
// interruptible, so a timed-out decode finishes in the background and its
// result is dropped.
func (r *Runner) process(ctx context.Context, src source) Result {
	start := time.Now()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ch := make(chan Result, 1)
	go func() { ch <- r.check(src) }()

	var res Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res = Result{Name: src.name, Status: StatusTimeout, Err: ctx.Err()}
	}
	res.Duration = time.Since(start)

	if res.Status == StatusOK {
		r.log.Infof("%s: %s %s (%d.%d, %d bytes)", res.Name, res.Status, res.Class, res.MajorVersion, res.MinorVersion, res.Size)
	} else {
		r.log.Errorf("%s: %s: %v", res.Name, res.Status, res.Err)
	}
	return res
}

func (r *Runner) check(src source) Result {
	res := Result{Name: src.name, Status: StatusFailed}

	data, err := src.read()
	if err != nil {
		res.Err = fmt.Errorf("read: %w", err)
		return res
	}
	res.Size = len(data)

	cf, err := classfile.Decode(data, r.codecOpts...)
	if err != nil {
		res.Err = err
		return res
	}
	res.Class = cf.ClassName()
	res.MajorVersion = cf.MajorVersion
	res.MinorVersion = cf.MinorVersion

	if r.mode == ModeRoundTrip {
		encoded, err := classfile.Encode(cf, r.codecOpts...)
		if err != nil {
			res.Err = err
			return res
		}
		if err := compareBytes(data, encoded); err != nil {
			res.Status = StatusMismatch
			res.Err = err
			return res
		}
	}

	res.Status = StatusOK
	return res
}

func compareBytes(decoded, encoded []byte) error {
	if bytes.Equal(decoded, encoded) {
		return nil
	}
	offset := 0
	for offset < len(decoded) && offset < len(encoded) && decoded[offset] == encoded[offset] {
		offset++
	}
	return &MismatchError{Offset: offset, DecodedSize: len(decoded), EncodedSize: len(encoded)}
}
