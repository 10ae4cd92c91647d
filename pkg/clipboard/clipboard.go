// Package clipboard copies and pastes plain text through whatever clipboard
// mechanism the host offers.
//
// A Clipboard picks its backend lazily: nothing is probed, spawned or loaded
// until the first Copy or Paste. The package-level functions use a shared
// default Clipboard.
package clipboard

import (
	"io"

	"github.com/labi-le/paperclip/pkg/ctxlog"
	"github.com/rs/zerolog"
)

// Provider is the realised copy/paste pair of one backend.
type Provider interface {
	// Copy replaces the whole clipboard with text. An empty string clears it.
	Copy(text string) error
	// Paste returns the clipboard text, or "" if the clipboard is empty or
	// holds no text.
	Paste() (string, error)
}

// Resolution is the outcome of backend selection.
type Resolution struct {
	Name     Name
	Provider Provider
}

// Available reports whether the resolution points at a working backend.
func (r Resolution) Available() bool {
	return r.Provider != nil && r.Name != Unavailable
}

func unavailableResolution() Resolution {
	return Resolution{Name: Unavailable, Provider: unavailable{}}
}

// Clipboard dispatches Copy and Paste to one backend, chosen on first use or
// set explicitly with SetBackend.
//
// A Clipboard takes no locks; wrap it with NewThreadSafe when it is shared
// between goroutines.
type Clipboard struct {
	opts     Options
	logger   zerolog.Logger
	resolved bool
	active   Resolution
}

// New returns a Clipboard. It performs no probing.
func New(opts ...Option) *Clipboard {
	options := NewOptions(opts...)

	return &Clipboard{
		opts:   options,
		logger: options.Logger.With().Str("component", "clipboard").Logger(),
	}
}

// Copy places v on the clipboard. v must be convertible to text, see Text.
func (c *Clipboard) Copy(v any) error {
	text, err := Text(v)
	if err != nil {
		return err
	}

	if err := c.resolve(); err != nil {
		return err
	}

	return c.active.Provider.Copy(text)
}

// Paste returns the current clipboard text.
func (c *Clipboard) Paste() (string, error) {
	if err := c.resolve(); err != nil {
		return "", err
	}

	return c.active.Provider.Paste()
}

// SetBackend replaces the active backend with the named one. The backend is
// constructed immediately; on any error the active backend is left as it was.
func (c *Clipboard) SetBackend(name string) error {
	n, err := ParseName(name)
	if err != nil {
		return err
	}

	res, err := c.build(n)
	if err != nil {
		return err
	}

	c.replace(res)
	return nil
}

// IsAvailable resolves the backend if needed and reports whether a working
// clipboard mechanism was found.
func (c *Clipboard) IsAvailable() bool {
	if err := c.resolve(); err != nil {
		c.logger.Warn().Err(err).Msg("clipboard resolution failed")
		return false
	}

	return c.active.Available()
}

// Backend returns the name of the active backend, or "" when none has been
// resolved yet.
func (c *Clipboard) Backend() Name {
	if !c.resolved {
		return ""
	}
	return c.active.Name
}

// Close releases the resources held by the active backend, if any.
func (c *Clipboard) Close() error {
	if !c.resolved {
		return nil
	}
	return closeProvider(c.active.Provider)
}

func (c *Clipboard) resolve() error {
	if c.resolved {
		return nil
	}

	res, err := Select(c.opts)
	if err != nil {
		return err
	}

	c.active = res
	c.resolved = true

	c.logger.Debug().Stringer("backend", res.Name).Msg("clipboard backend selected")
	return nil
}

func (c *Clipboard) build(n Name) (Resolution, error) {
	if n == Unavailable {
		return unavailableResolution(), nil
	}

	cand, ok := c.opts.candidate(n)
	if !ok {
		return Resolution{}, unknownBackend(string(n))
	}

	p, err := cand.Build(c.opts)
	if err != nil {
		return Resolution{}, wrapOp(n, "init", err)
	}

	return Resolution{Name: n, Provider: p}, nil
}

func (c *Clipboard) replace(res Resolution) {
	log := ctxlog.Op(c.logger, "clipboard.SetBackend")

	if c.resolved {
		if err := closeProvider(c.active.Provider); err != nil {
			log.Warn().Err(err).Stringer("backend", c.active.Name).Msg("close previous backend")
		}
	}

	c.active = res
	c.resolved = true

	log.Debug().Stringer("backend", res.Name).Msg("clipboard backend set")
}

func closeProvider(p Provider) error {
	if closer, ok := p.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

var std = New()

// Copy places v on the clipboard using the default Clipboard.
func Copy(v any) error { return std.Copy(v) }

// Paste returns the clipboard text using the default Clipboard.
func Paste() (string, error) { return std.Paste() }

// SetBackend forces the backend of the default Clipboard.
func SetBackend(name string) error { return std.SetBackend(name) }

// IsAvailable reports whether the default Clipboard found a backend.
func IsAvailable() bool { return std.IsAvailable() }

// Backend returns the backend name of the default Clipboard.
func Backend() Name { return std.Backend() }
