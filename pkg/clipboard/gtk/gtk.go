//go:build linux || freebsd

// Package gtk uses the GTK 3 clipboard, loaded at run time so that neither
// cgo nor the GTK headers are needed to build.
package gtk

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"
)

const (
	Library     = "libgtk-3.so.0"
	glibLibrary = "libglib-2.0.so.0"

	// predefined GdkAtom values
	selectionPrimary   = 1
	selectionClipboard = 69

	pumpInterval = 10 * time.Millisecond
)

var (
	ErrInit   = errors.New("gtk: gtk_init_check failed, no usable display")
	ErrClosed = errors.New("gtk: clipboard closed")
)

type Options struct {
	// Primary operates on PRIMARY instead of CLIPBOARD.
	Primary bool
}

type api struct {
	initCheck     func(argc, argv uintptr) bool
	clipboardGet  func(selection uintptr) uintptr
	setText       func(clipboard uintptr, text *byte, length int32)
	store         func(clipboard uintptr)
	waitForText   func(clipboard uintptr) uintptr
	eventsPending func() bool
	mainIterDo    func(blocking bool) bool
	free          func(mem uintptr)
}

// Clipboard is a handle on the process-wide GTK thread for one selection.
type Clipboard struct {
	loop      *loop
	selection uintptr
	closed    atomic.Bool
}

// loop runs every GTK call on one locked OS thread, which also pumps the GTK
// main loop so other clients can read what was copied. There is one per
// process, started by the first New and shared by every Clipboard.
type loop struct {
	calls chan func(*api)
}

var startLoop = sync.OnceValues(func() (*loop, error) {
	l := &loop{calls: make(chan func(*api))}

	ready := make(chan error, 1)
	go l.run(ready)

	if err := <-ready; err != nil {
		return nil, err
	}
	return l, nil
})

// New returns a handle on the shared GTK thread, starting it on first use.
// A failed start is remembered and returned by every later call.
func New(opts Options) (*Clipboard, error) {
	selection := uintptr(selectionClipboard)
	if opts.Primary {
		selection = selectionPrimary
	}

	l, err := startLoop()
	if err != nil {
		return nil, err
	}

	return &Clipboard{loop: l, selection: selection}, nil
}

func load() (*api, error) {
	gtk, err := purego.Dlopen(Library, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", Library, err)
	}

	glib, err := purego.Dlopen(glibLibrary, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", glibLibrary, err)
	}

	a := new(api)
	purego.RegisterLibFunc(&a.initCheck, gtk, "gtk_init_check")
	purego.RegisterLibFunc(&a.clipboardGet, gtk, "gtk_clipboard_get")
	purego.RegisterLibFunc(&a.setText, gtk, "gtk_clipboard_set_text")
	purego.RegisterLibFunc(&a.store, gtk, "gtk_clipboard_store")
	purego.RegisterLibFunc(&a.waitForText, gtk, "gtk_clipboard_wait_for_text")
	purego.RegisterLibFunc(&a.eventsPending, gtk, "gtk_events_pending")
	purego.RegisterLibFunc(&a.mainIterDo, gtk, "gtk_main_iteration_do")
	purego.RegisterLibFunc(&a.free, glib, "g_free")

	return a, nil
}

func (l *loop) run(ready chan<- error) {
	// GTK is bound to the thread that initialised it for the life of the
	// process, so this thread is never handed back to the scheduler.
	runtime.LockOSThread()

	a, err := load()
	if err != nil {
		ready <- err
		return
	}

	if !a.initCheck(0, 0) {
		ready <- ErrInit
		return
	}

	ready <- nil

	ticker := time.NewTicker(pumpInterval)
	defer ticker.Stop()

	for {
		select {
		case fn := <-l.calls:
			fn(a)
		case <-ticker.C:
			for a.eventsPending() {
				a.mainIterDo(false)
			}
		}
	}
}

// do runs fn on the GTK thread with this handle's clipboard.
func (c *Clipboard) do(fn func(a *api, clipboard uintptr)) error {
	if c.closed.Load() {
		return ErrClosed
	}

	var err error
	finished := make(chan struct{})
	c.loop.calls <- func(a *api) {
		defer close(finished)

		clipboard := a.clipboardGet(c.selection)
		if clipboard == 0 {
			err = errors.New("gtk: gtk_clipboard_get returned NULL")
			return
		}
		fn(a, clipboard)
	}

	<-finished
	return err
}

func (c *Clipboard) Copy(text string) error {
	return c.do(func(a *api, clipboard uintptr) {
		buf := append([]byte(text), 0)
		a.setText(clipboard, &buf[0], int32(len(text)))
		runtime.KeepAlive(buf)

		a.store(clipboard)
	})
}

func (c *Clipboard) Paste() (string, error) {
	var text string

	err := c.do(func(a *api, clipboard uintptr) {
		ptr := a.waitForText(clipboard)
		if ptr == 0 {
			return
		}
		defer a.free(ptr)

		text = goString(ptr)
	})

	return text, err
}

// Close detaches the handle. The GTK thread keeps running for other handles
// and for whatever this one copied.
func (c *Clipboard) Close() error {
	c.closed.Store(true)
	return nil
}

func goString(ptr uintptr) string {
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(ptr), n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
}
