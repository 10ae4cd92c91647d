package clipboard

import (
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Logger zerolog.Logger
	// Env is what the probe inspects. Defaults to the running host.
	Env Env
	// Executor runs the helper programs of process backends.
	Executor Executor
	// Candidates is the ordered backend table. Defaults to DefaultCandidates.
	Candidates []Candidate
	// Priority, when set, is walked instead of the table order. Names missing
	// from the table are ignored.
	Priority []Name
	// Primary selects the X11 PRIMARY selection instead of CLIPBOARD where
	// the backend supports it.
	Primary bool
	// LegacyText makes the native Windows backend use CF_TEXT instead of
	// CF_UNICODETEXT.
	LegacyText bool
	// SelectionTimeout bounds how long the x11 backend waits for another
	// client to convert the selection.
	SelectionTimeout time.Duration
}

type Option func(*Options)

//nolint:mnd // defaults
var DefaultOptions = Options{
	Logger:           zerolog.Nop(),
	Env:              HostEnv(),
	Executor:         ProcessExecutor{},
	SelectionTimeout: 3 * time.Second,
}

func NewOptions(opts ...Option) Options {
	options := DefaultOptions

	for _, opt := range opts {
		opt(&options)
	}

	if options.Candidates == nil {
		options.Candidates = DefaultCandidates()
	}

	return options
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithEnv(env Env) Option {
	return func(o *Options) {
		o.Env = env
	}
}

func WithExecutor(exec Executor) Option {
	return func(o *Options) {
		o.Executor = exec
	}
}

// WithCandidates replaces the backend table. An empty table leaves only
// Unavailable.
func WithCandidates(candidates ...Candidate) Option {
	return func(o *Options) {
		o.Candidates = append([]Candidate{}, candidates...)
	}
}

func WithPriority(names ...Name) Option {
	return func(o *Options) {
		o.Priority = names
	}
}

func WithPrimary(primary bool) Option {
	return func(o *Options) {
		o.Primary = primary
	}
}

func WithLegacyText(legacy bool) Option {
	return func(o *Options) {
		o.LegacyText = legacy
	}
}

func WithSelectionTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.SelectionTimeout = d
	}
}

func (o Options) candidate(n Name) (Candidate, bool) {
	for _, c := range o.Candidates {
		if c.Name == n {
			return c, true
		}
	}
	return Candidate{}, false
}

// ordered returns the candidates in the order selection walks them.
func (o Options) ordered() []Candidate {
	if len(o.Priority) == 0 {
		return o.Candidates
	}

	out := make([]Candidate, 0, len(o.Priority))
	for _, n := range o.Priority {
		if c, ok := o.candidate(n); ok {
			out = append(out, c)
		}
	}
	return out
}
