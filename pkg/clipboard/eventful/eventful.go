// Package eventful turns a clipboard that can only be read on demand into a
// stream of change notifications.
package eventful

import (
	"context"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labi-le/paperclip/pkg/ctxlog"
	"github.com/rs/zerolog"
)

// TickEnv overrides the default polling interval, e.g. "250ms".
const TickEnv = "PAPERCLIP_WATCH_TICK"

// Source is anything whose text can be read, such as a clipboard.Clipboard.
type Source interface {
	Paste() (string, error)
}

type Update struct {
	Data string
	Hash uint64
}

func (u Update) MarshalZerologObject(e *zerolog.Event) {
	e.Str("size", humanize.Bytes(uint64(len(u.Data))))
	e.Uint64("hash", u.Hash)
}

type Options struct {
	Logger zerolog.Logger
	// Tick is the interval between two reads.
	Tick time.Duration
	// WarmStart reports the content found at start as the first update.
	// Otherwise it is only the baseline for change detection.
	WarmStart bool
}

//nolint:mnd // default
var DefaultOptions = Options{
	Logger: zerolog.Nop(),
	Tick:   100 * time.Millisecond,
}

// TickFromEnv returns the interval set in TickEnv, or fallback when it is
// unset or invalid.
func TickFromEnv(fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(TickEnv)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Poll reads src every tick and sends an Update whenever the content
// changes. It closes upd and returns ctx.Err() once ctx is done. Read errors
// are logged and polling continues.
func Poll(ctx context.Context, src Source, opts Options, upd chan<- Update) error {
	defer close(upd)

	if opts.Tick <= 0 {
		opts.Tick = DefaultOptions.Tick
	}

	var (
		dedup Deduplicator
		log   = ctxlog.Op(opts.Logger, "eventful.Poll")
	)

	if text, err := src.Paste(); err != nil {
		log.Warn().Err(err).Msg("initial read failed")
	} else {
		h, _ := dedup.Check([]byte(text))
		if opts.WarmStart {
			if !send(ctx, upd, Update{Data: text, Hash: h}) {
				return ctx.Err()
			}
		}
	}

	ticker := time.NewTicker(opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			text, err := src.Paste()
			if err != nil {
				log.Warn().Err(err).Msg("read failed")
				continue
			}

			h, changed := dedup.Check([]byte(text))
			if !changed {
				continue
			}

			u := Update{Data: text, Hash: h}
			log.Trace().EmbedObject(u).Msg("clipboard changed")

			if !send(ctx, upd, u) {
				return ctx.Err()
			}
		}
	}
}

func send(ctx context.Context, upd chan<- Update, u Update) bool {
	select {
	case upd <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
