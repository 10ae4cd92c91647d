package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labi-le/paperclip/internal/lock"
	"github.com/labi-le/paperclip/internal/metadata"
	"github.com/labi-le/paperclip/internal/notification"
	"github.com/labi-le/paperclip/pkg/clipboard"
	"github.com/labi-le/paperclip/pkg/clipboard/eventful"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

var errTooLarge = errors.New("input exceeds max_size")

type action struct {
	copy      bool
	paste     bool
	list      bool
	watch     bool
	warmStart bool
	notify    bool
	primary   bool
	legacy    bool

	verbose     bool
	showVersion bool
	showHelp    bool

	backend   string
	watchTick time.Duration
	maxSize   uint64
	lockDir   string
}

func (a action) requested() bool {
	return a.copy || a.paste || a.list || a.watch || a.showVersion
}

func parseFlags() (action, error) {
	act := action{lockDir: os.TempDir()}

	flag.BoolVarP(&act.copy, "copy", "c", false, "Copy stdin to the clipboard, without one trailing newline")
	flag.BoolVarP(&act.paste, "paste", "p", false, "Write the clipboard to stdout")
	flag.StringVarP(&act.backend, "backend", "b", "", "Force a backend: "+backendNames())
	flag.BoolVar(&act.primary, "primary", false, "Use the PRIMARY selection where the backend supports it")
	flag.BoolVar(&act.legacy, "legacy_text", false, "Use CF_TEXT instead of CF_UNICODETEXT (windows backend)")
	flag.BoolVar(&act.list, "list", false, "Show which backends are usable on this host")
	flag.BoolVarP(&act.watch, "watch", "w", false, "Print every clipboard change until interrupted")
	flag.DurationVar(&act.watchTick, "watch_tick", eventful.TickFromEnv(eventful.DefaultOptions.Tick), "Interval between two clipboard reads while watching")
	flag.BoolVar(&act.warmStart, "warm_start", false, "Also print the clipboard content found when watching starts")
	flag.BoolVar(&act.notify, "notify", false, "Show a desktop notification on every change while watching")
	flag.BoolVar(&act.verbose, "verbose", false, "Verbose logs")
	flag.BoolVarP(&act.showVersion, "version", "v", false, "Show version")
	flag.BoolVarP(&act.showHelp, "help", "h", false, "Show help")

	var maxSizeRaw string
	flag.StringVar(&maxSizeRaw, "max_size", "64MiB", "Maximum size of text read from stdin")

	flag.Parse()

	if act.showHelp {
		return act, nil
	}

	size, err := humanize.ParseBytes(maxSizeRaw)
	if err != nil {
		return act, fmt.Errorf("invalid max_size format: %w", err)
	}
	act.maxSize = size

	return act, nil
}

func backendNames() string {
	names := make([]string, 0, len(clipboard.Names()))
	for _, n := range clipboard.Names() {
		names = append(names, n.String())
	}
	return strings.Join(names, ", ")
}

func main() {
	os.Exit(run())
}

// run is main with an exit code, so deferred cleanup always happens.
func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := parseFlags()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		return 1
	}

	applyTagsOverrides(&cfg)

	if cfg.showHelp || !cfg.requested() {
		flag.CommandLine.SetOutput(os.Stdout)
		flag.Usage()
		return 0
	}

	if cfg.showVersion {
		fmt.Println("paperclip", metadata.String())
		return 0
	}

	logger := initLogger(cfg.verbose)
	logger.Debug().
		Str("v", metadata.Version).
		Str("commit_hash", metadata.CommitHash).
		Str("build_time", metadata.BuildTime).
		Send()

	clip := clipboard.New(
		clipboard.WithLogger(logger),
		clipboard.WithPrimary(cfg.primary),
		clipboard.WithLegacyText(cfg.legacy),
	)
	defer func() {
		if err := clip.Close(); err != nil {
			logger.Warn().Err(err).Msg("close clipboard")
		}
	}()

	if err := execute(ctx, os.Stdin, os.Stdout, clip, logger, cfg); err != nil {
		logger.Error().Err(err).Send()
		return 1
	}
	return 0
}

func execute(ctx context.Context, in io.Reader, out io.Writer, clip *clipboard.Clipboard, logger zerolog.Logger, cfg action) error {
	if cfg.backend != "" {
		if err := clip.SetBackend(cfg.backend); err != nil {
			return fmt.Errorf("failed to set backend: %w", err)
		}
	}

	switch {
	case cfg.list:
		return list(out, clip, logger, cfg)
	case cfg.watch:
		return watch(ctx, out, clip, logger, cfg)
	case cfg.copy:
		return copyFrom(in, clip, cfg.maxSize)
	case cfg.paste:
		return pasteTo(out, clip)
	}
	return nil
}

func copyFrom(r io.Reader, clip *clipboard.Clipboard, maxSize uint64) error {
	data, err := io.ReadAll(io.LimitReader(r, int64(maxSize)+1))
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if uint64(len(data)) > maxSize {
		return fmt.Errorf("%w (%s)", errTooLarge, humanize.IBytes(maxSize))
	}

	return clip.Copy(stripNewline(string(data)))
}

func pasteTo(w io.Writer, clip *clipboard.Clipboard) error {
	text, err := clip.Paste()
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, text)
	return err
}

// stripNewline removes one trailing "\n" or "\r\n", the one a shell pipeline
// usually appends.
func stripNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

func list(w io.Writer, clip *clipboard.Clipboard, logger zerolog.Logger, cfg action) error {
	opts := clipboard.NewOptions(
		clipboard.WithLogger(logger),
		clipboard.WithPrimary(cfg.primary),
	)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BACKEND\tUSABLE\tERROR")
	for _, res := range clipboard.Probe(opts) {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%t\t%s\n", res.Name, res.Viable, errText)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	available := clip.IsAvailable()
	_, err := fmt.Fprintf(w, "\nselected: %s (available: %t)\n", clip.Backend(), available)
	return err
}

func watch(ctx context.Context, w io.Writer, clip *clipboard.Clipboard, logger zerolog.Logger, cfg action) error {
	unlock, err := lock.Hold(cfg.lockDir, logger)
	if err != nil {
		return err
	}
	defer unlock()

	if !clip.IsAvailable() {
		return clipboard.ErrNoBackend
	}

	notifier := notification.New(cfg.notify)

	upd := make(chan eventful.Update)
	errCh := make(chan error, 1)
	go func() {
		errCh <- eventful.Poll(ctx, clip, eventful.Options{
			Logger:    logger,
			Tick:      cfg.watchTick,
			WarmStart: cfg.warmStart,
		}, upd)
	}()

	logger.Info().Stringer("backend", clip.Backend()).Dur("tick", cfg.watchTick).Msg("watching clipboard")

	for u := range upd {
		logger.Debug().EmbedObject(u).Msg("clipboard changed")
		if _, err := fmt.Fprintln(w, u.Data); err != nil {
			return err
		}
		notifier.Notify("Clipboard changed: %s", humanize.Bytes(uint64(len(u.Data))))
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func initLogger(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	if verbose {
		zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
			short := file
			for i := len(file) - 1; i > 0; i-- {
				if file[i] == '/' {
					short = file[i+1:]
					break
				}
			}
			file = short
			return fmt.Sprintf("%s:%d", file, line)
		}
		return zerolog.New(output).
			Level(zerolog.TraceLevel).
			With().
			Timestamp().
			Caller().
			Logger()
	}

	return zerolog.New(output).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Logger()
}
