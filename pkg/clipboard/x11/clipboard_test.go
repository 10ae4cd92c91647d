package x11

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/rs/zerolog"
)

func newTestClipboard(t *testing.T, primary bool) *Clipboard {
	t.Helper()

	if os.Getenv("DISPLAY") == "" {
		t.Skip("DISPLAY is not set")
	}

	c, err := New(Options{Logger: zerolog.Nop(), Primary: primary, Timeout: time.Second})
	if err != nil {
		t.Skipf("x11 unavailable: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestOwnerRoundTrip(t *testing.T) {
	c := newTestClipboard(t, false)

	tests := []struct {
		name string
		data string
	}{
		{"ascii", "Hello World"},
		{"empty", ""},
		{"cyrillic", "кириллица"},
		{"emoji", "👋 🌍 🧑‍💻 🚀"},
		{"whitespace", " \t\r\n "},
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

func TestPasteFromAnotherClient(t *testing.T) {
	owner := newTestClipboard(t, true)
	reader := newTestClipboard(t, true)

	const want = "served over the wire ✓"
	if err := owner.Copy(want); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	got, err := reader.Paste()
	if err != nil {
		t.Fatalf("Paste() error = %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Paste() mismatch (-want +got):\n%s", diff)
	}
}

func TestLatin1ToUTF8(t *testing.T) {
	got := latin1ToUTF8([]byte{'c', 'a', 'f', 0xe9})
	if got != "café" {
		t.Errorf("latin1ToUTF8() = %q, want %q", got, "café")
	}
}

func TestUTF8ToLatin1(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{"ascii", "plain", []byte("plain"), false},
		{"empty", "", []byte{}, false},
		{"accented", "café", []byte{'c', 'a', 'f', 0xe9}, false},
		{"upper bound", "ÿ", []byte{0xff}, false},
		{"cyrillic", "кот", nil, true},
		{"emoji", "hi 👋", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utf8ToLatin1([]byte(tt.in))
			if tt.wantErr {
				if !errors.Is(err, ErrNotLatin1) {
					t.Fatalf("utf8ToLatin1() error = %v, want %v", err, ErrNotLatin1)
				}
				return
			}
			if err != nil {
				t.Fatalf("utf8ToLatin1() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("utf8ToLatin1() mismatch (-want +got):\n%s", diff)
			}
			if back := latin1ToUTF8(got); back != tt.in {
				t.Errorf("latin1ToUTF8() = %q, want %q", back, tt.in)
			}
		})
	}
}

func TestCopyRejectsUnservableSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"one byte over", maxServeSize + 1},
		{"far over", 4 * maxServeSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Clipboard{}

			err := c.Copy(strings.Repeat("a", tt.size))
			if !errors.Is(err, ErrTooLarge) {
				t.Fatalf("Copy() error = %v, want %v", err, ErrTooLarge)
			}
			if c.owned || c.serving != nil {
				t.Errorf("Copy() took ownership of %d bytes it cannot serve", tt.size)
			}
		})
	}
}

type fakeManager struct {
	conn  *xgb.Conn
	win   xproto.Window
	atoms *atomCache
	delay time.Duration
	saved chan string
}

// startFakeManager owns CLIPBOARD_MANAGER and answers SAVE_TARGETS by
// reading CLIPBOARD as UTF8_STRING, after delay.
func startFakeManager(t *testing.T, delay time.Duration) *fakeManager {
	t.Helper()

	conn, err := xgb.NewConn()
	if err != nil {
		t.Skipf("x11 unavailable: %v", err)
	}
	t.Cleanup(conn.Close)

	atoms, err := loadAtoms(conn)
	if err != nil {
		t.Fatalf("loadAtoms() error = %v", err)
	}
	win, err := createWindow(conn)
	if err != nil {
		t.Fatalf("createWindow() error = %v", err)
	}

	err = xproto.SetSelectionOwnerChecked(conn, win, atoms.ClipboardManager, xproto.TimeCurrentTime).Check()
	if err != nil {
		t.Fatalf("SetSelectionOwner() error = %v", err)
	}

	m := &fakeManager{conn: conn, win: win, atoms: atoms, delay: delay, saved: make(chan string, 1)}
	go m.serve()

	return m
}

func (m *fakeManager) serve() {
	for {
		ev, err := m.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}

		req, ok := ev.(xproto.SelectionRequestEvent)
		if !ok || req.Target != m.atoms.SaveTargets {
			continue
		}

		time.Sleep(m.delay)
		m.saved <- m.fetch()

		resp := xproto.SelectionNotifyEvent{
			Time:      req.Time,
			Requestor: req.Requestor,
			Selection: req.Selection,
			Target:    req.Target,
			Property:  req.Property,
		}
		xproto.SendEvent(m.conn, false, req.Requestor, xproto.EventMaskNoEvent, string(resp.Bytes()))
	}
}

func (m *fakeManager) fetch() string {
	xproto.ConvertSelection(m.conn, m.win, m.atoms.Clipboard, m.atoms.Utf8String, m.atoms.LocalProp, xproto.TimeCurrentTime)

	for {
		ev, err := m.conn.WaitForEvent()
		if ev == nil && err == nil {
			return ""
		}

		n, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if n.Property == xproto.AtomNone {
			return ""
		}

		reply, perr := xproto.GetProperty(m.conn, true, m.win, n.Property, xproto.GetPropertyTypeAny, 0, maxPropSize).Reply()
		if perr != nil {
			return ""
		}
		return string(reply.Value)
	}
}

func TestCloseWaitsForClipboardManager(t *testing.T) {
	c := newTestClipboard(t, false)
	m := startFakeManager(t, 200*time.Millisecond)

	const want = "kept after exit"
	if err := c.Copy(want); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	select {
	case got := <-m.saved:
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("saved selection mismatch (-want +got):\n%s", diff)
		}
	default:
		t.Fatal("Close returned before the clipboard manager saved the selection")
	}
}
