//go:build windows

// Package windows reads and writes text through the Win32 clipboard API.
package windows

import (
	"errors"
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var ErrOpenClipboard = errors.New("error calling OpenClipboard")

type Options struct {
	// Legacy stores and reads CF_TEXT instead of CF_UNICODETEXT.
	Legacy bool
	// OpenTimeout bounds the retries while another process holds the
	// clipboard open.
	OpenTimeout time.Duration
	// OpenInterval is the pause between two OpenClipboard attempts.
	OpenInterval time.Duration
}

//nolint:mnd // defaults
var DefaultOptions = Options{
	OpenTimeout:  500 * time.Millisecond,
	OpenInterval: 10 * time.Millisecond,
}

type Clipboard struct {
	opts Options
}

func New(opts Options) (*Clipboard, error) {
	if err := load(); err != nil {
		return nil, err
	}

	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = DefaultOptions.OpenTimeout
	}
	if opts.OpenInterval <= 0 {
		opts.OpenInterval = DefaultOptions.OpenInterval
	}

	return &Clipboard{opts: opts}, nil
}

func (w *Clipboard) format() uintptr {
	if w.opts.Legacy {
		return cfText
	}
	return cfUnicodeText
}

func (w *Clipboard) Copy(text string) error {
	return w.open(func() error {
		if r, _, err := emptyClipboard.Call(); r == 0 {
			return fmt.Errorf("failed to clear clipboard: %w", err)
		}

		if text == "" {
			return nil
		}

		var payload []byte
		if w.opts.Legacy {
			payload = encodeLegacy(text)
		} else {
			u := encodeText(text)
			payload = unsafe.Slice((*byte)(unsafe.Pointer(&u[0])), len(u)*2)
		}

		return setData(w.format(), payload)
	})
}

func (w *Clipboard) Paste() (string, error) {
	var text string

	err := w.open(func() error {
		h, _, _ := getClipboardData.Call(w.format())
		if h == 0 {
			// nothing in a text format
			return nil
		}

		p, _, err := gLock.Call(h)
		if p == 0 {
			return fmt.Errorf("failed to lock global memory: %w", err)
		}
		defer func() { noCheck(gUnlock.Call(h)) }()

		size, _, _ := gSize.Call(h)
		if size == 0 {
			return nil
		}

		if w.opts.Legacy {
			text = decodeLegacy(unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
			return nil
		}

		text = decodeText(unsafe.Slice((*uint16)(unsafe.Pointer(p)), size/2))
		return nil
	})

	return text, err
}

// open runs fn with the clipboard opened on behalf of a throwaway STATIC
// window. Window handles belong to the thread that created them, so the
// whole sequence stays on one OS thread.
func (w *Clipboard) open(fn func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	class, err := windows.UTF16PtrFromString("STATIC")
	if err != nil {
		return err
	}

	hwnd, _, err := createWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(class)),
		0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0,
	)
	if hwnd == 0 {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer func() { noCheck(destroyWindow.Call(hwnd)) }()

	deadline := time.Now().Add(w.opts.OpenTimeout)
	for {
		r, _, err := openClipboard.Call(hwnd)
		if r != 0 {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %w", ErrOpenClipboard, err)
		}
		time.Sleep(w.opts.OpenInterval)
	}
	defer func() { noCheck(closeClipboard.Call()) }()

	return fn()
}

// setData copies payload into movable global memory and hands it to the
// clipboard, which owns it from then on.
func setData(format uintptr, payload []byte) error {
	hMem, _, err := gAlloc.Call(gmemMoveable, uintptr(len(payload)))
	if hMem == 0 {
		return fmt.Errorf("failed to alloc global memory: %w", err)
	}

	p, _, err := gLock.Call(hMem)
	if p == 0 {
		noCheck(gFree.Call(hMem))
		return fmt.Errorf("failed to lock global memory: %w", err)
	}

	copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), len(payload)), payload)
	noCheck(gUnlock.Call(hMem))

	if r, _, err := setClipboardData.Call(format, hMem); r == 0 {
		noCheck(gFree.Call(hMem))
		return fmt.Errorf("failed to set text to clipboard: %w", err)
	}

	return nil
}
