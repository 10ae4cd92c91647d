//go:build linux || freebsd

package gtk

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCopyPaste(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("DISPLAY is not set")
	}

	c, err := New(Options{})
	if err != nil {
		t.Skipf("gtk unavailable: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	tests := []struct {
		name string
		data string
	}{
		{"ascii", "Hello World"},
		{"empty", ""},
		{"cyrillic", "кириллица"},
		{"emoji", "👋 🌍 🧑‍💻 🚀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Copy(tt.data); err != nil {
				t.Fatalf("Copy() error = %v", err)
			}

			got, err := c.Paste()
			if err != nil {
				t.Fatalf("Paste() error = %v", err)
			}

			if diff := cmp.Diff(tt.data, got); diff != "" {
				t.Errorf("Paste() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClosedClipboard(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Clipboard) error
	}{
		{"copy", func(c *Clipboard) error { return c.Copy("x") }},
		{"paste", func(c *Clipboard) error {
			_, err := c.Paste()
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Clipboard{loop: &loop{calls: make(chan func(*api))}, selection: selectionClipboard}

			if err := c.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			if err := tt.call(c); !errors.Is(err, ErrClosed) {
				t.Errorf("%s after Close() error = %v, want %v", tt.name, err, ErrClosed)
			}
		})
	}
}

func TestHandlesShareOneThread(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("DISPLAY is not set")
	}

	first, err := New(Options{})
	if err != nil {
		t.Skipf("gtk unavailable: %v", err)
	}
	second, err := New(Options{})
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	if first.loop != second.loop {
		t.Fatal("New() started a second GTK thread")
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	const want = "still served"
	if err := second.Copy(want); err != nil {
		t.Fatalf("Copy() after closing another handle error = %v", err)
	}

	got, err := second.Paste()
	if err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Paste() mismatch (-want +got):\n%s", diff)
	}
}
