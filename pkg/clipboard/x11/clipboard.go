// Package x11 owns and reads X selections by speaking the X protocol
// directly, with no helper program or toolkit.
package x11

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/rs/zerolog"
)

const (
	maxPropSize = 0x10000
	maxDataSize = 50 * 1024 * 1024

	// larger values need INCR on the serving side, which is not implemented
	maxServeSize = 256 * 1024

	eventBuffer = 64
)

var (
	ErrTimeout      = errors.New("x11: selection owner did not respond in time")
	ErrNotOwner     = errors.New("x11: failed to acquire selection ownership")
	ErrTooLarge     = errors.New("x11: clipboard data exceeded limit")
	ErrNotLatin1    = errors.New("x11: text is not representable in Latin-1")
	errDisconnected = errors.New("x11: connection closed")
)

type Options struct {
	Logger zerolog.Logger
	// Primary operates on PRIMARY instead of CLIPBOARD.
	Primary bool
	// Timeout bounds how long Paste waits for the selection owner.
	Timeout time.Duration
}

type Clipboard struct {
	logger    zerolog.Logger
	conn      *xgb.Conn
	win       xproto.Window
	atoms     *atomCache
	selection xproto.Atom
	timeout   time.Duration

	mu      sync.Mutex
	serving []byte
	owned   bool
	// a SAVE_TARGETS request is waiting for the clipboard manager
	saving bool

	pasteMu   sync.Mutex
	closeOnce sync.Once
	notify    chan xproto.SelectionNotifyEvent
	props     chan xproto.PropertyNotifyEvent
	saved     chan struct{}
	done      chan struct{}
}

// New connects to the display named by $DISPLAY and starts the goroutine
// that answers selection requests while this process owns the selection.
func New(opts Options) (*Clipboard, error) {
	c := &Clipboard{
		logger:  opts.Logger.With().Str("component", "x11").Logger(),
		timeout: opts.Timeout,
		notify:  make(chan xproto.SelectionNotifyEvent, eventBuffer),
		props:   make(chan xproto.PropertyNotifyEvent, eventBuffer),
		saved:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	if c.timeout <= 0 {
		c.timeout = 3 * time.Second
	}

	if err := c.init(); err != nil {
		if c.conn != nil {
			c.conn.Close()
		}
		return nil, err
	}

	c.selection = c.atoms.Clipboard
	if opts.Primary {
		c.selection = xproto.AtomPrimary
	}

	go c.loop()

	return c, nil
}

func (c *Clipboard) init() error {
	var err error
	if c.conn, err = xgb.NewConn(); err != nil {
		return fmt.Errorf("xgb connect: %w", err)
	}

	if c.atoms, err = loadAtoms(c.conn); err != nil {
		return fmt.Errorf("load atoms: %w", err)
	}

	if c.win, err = createWindow(c.conn); err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	return nil
}

// createWindow makes the unmapped window that owns selections and receives
// converted data.
func createWindow(conn *xgb.Conn) (xproto.Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		win,
		screen.Root,
		0,
		0,
		1,
		1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange},
	).Check()
	if err != nil {
		return 0, err
	}

	return win, nil
}

func (c *Clipboard) loop() {
	defer close(c.done)

	for {
		ev, err := c.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		if err != nil {
			c.logger.Debug().Err(err).Msg("x11 error")
			continue
		}

		c.handleEvent(ev)
	}
}

func (c *Clipboard) handleEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.SelectionRequestEvent:
		c.handleRequest(e)
	case xproto.SelectionClearEvent:
		if e.Selection == c.selection {
			c.mu.Lock()
			c.owned = false
			c.serving = nil
			c.mu.Unlock()
		}
	case xproto.SelectionNotifyEvent:
		if e.Selection == c.atoms.ClipboardManager && e.Target == c.atoms.SaveTargets {
			c.mu.Lock()
			c.saving = false
			c.mu.Unlock()

			select {
			case c.saved <- struct{}{}:
			default:
			}
			return
		}

		select {
		case c.notify <- e:
		default:
		}
	case xproto.PropertyNotifyEvent:
		if e.Window != c.win || e.State != xproto.PropertyNewValue {
			return
		}
		select {
		case c.props <- e:
		default:
		}
	}
}

// Copy takes ownership of the selection and serves text from then on. When a
// clipboard manager runs it is asked to keep a copy, so the text outlives
// this process. Text too large to serve in one property is refused.
func (c *Clipboard) Copy(text string) error {
	if len(text) > maxServeSize {
		return fmt.Errorf("%w: %d bytes, at most %d can be served", ErrTooLarge, len(text), maxServeSize)
	}

	c.mu.Lock()
	c.serving = []byte(text)
	c.owned = true
	c.mu.Unlock()

	err := xproto.SetSelectionOwnerChecked(c.conn, c.win, c.selection, xproto.TimeCurrentTime).Check()
	if err != nil {
		c.disown()
		return fmt.Errorf("set selection owner: %w", err)
	}

	owner, err := xproto.GetSelectionOwner(c.conn, c.selection).Reply()
	if err != nil {
		c.disown()
		return fmt.Errorf("get selection owner: %w", err)
	}
	if owner.Owner != c.win {
		c.disown()
		return ErrNotOwner
	}

	if c.selection == c.atoms.Clipboard {
		c.handoff()
	}

	return nil
}

func (c *Clipboard) disown() {
	c.mu.Lock()
	c.owned = false
	c.serving = nil
	c.mu.Unlock()
}

// handoff asks the clipboard manager, if any, to save our targets. The
// manager converts them through the event loop and Close waits for its
// answer.
func (c *Clipboard) handoff() {
	manager, err := xproto.GetSelectionOwner(c.conn, c.atoms.ClipboardManager).Reply()
	if err != nil || manager.Owner == xproto.WindowNone {
		return
	}

	select {
	case <-c.saved:
	default:
	}

	c.mu.Lock()
	c.saving = true
	c.mu.Unlock()

	xproto.ConvertSelection(
		c.conn, c.win, c.atoms.ClipboardManager, c.atoms.SaveTargets, c.atoms.SaveProp, xproto.TimeCurrentTime,
	)
}

// waitSaved blocks until the clipboard manager answers a pending handoff,
// the timeout passes or the connection drops.
func (c *Clipboard) waitSaved() {
	c.mu.Lock()
	saving := c.saving
	c.mu.Unlock()

	if !saving {
		return
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-c.saved:
	case <-timer.C:
		c.logger.Debug().Dur("timeout", c.timeout).Msg("clipboard manager did not save the selection")
	case <-c.done:
	}
}

// Paste returns the selection text. While this process owns the selection
// the served text is returned without a round trip.
func (c *Clipboard) Paste() (string, error) {
	c.pasteMu.Lock()
	defer c.pasteMu.Unlock()

	c.mu.Lock()
	if c.owned {
		text := string(c.serving)
		c.mu.Unlock()
		return text, nil
	}
	c.mu.Unlock()

	owner, err := xproto.GetSelectionOwner(c.conn, c.selection).Reply()
	if err != nil {
		return "", fmt.Errorf("get selection owner: %w", err)
	}
	if owner.Owner == xproto.WindowNone {
		return "", nil
	}

	for _, target := range []xproto.Atom{c.atoms.Utf8String, c.atoms.String} {
		data, ok, err := c.convert(target)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}

		if target == c.atoms.String {
			return latin1ToUTF8(data), nil
		}
		return string(data), nil
	}

	return "", nil
}

// convert requests the selection as target. ok is false when the owner
// refused the conversion.
func (c *Clipboard) convert(target xproto.Atom) ([]byte, bool, error) {
	c.drain()

	xproto.DeleteProperty(c.conn, c.win, c.atoms.LocalProp)
	xproto.ConvertSelection(c.conn, c.win, c.selection, target, c.atoms.LocalProp, xproto.TimeCurrentTime)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	for {
		select {
		case <-c.done:
			return nil, false, errDisconnected
		case <-timer.C:
			return nil, false, ErrTimeout
		case e := <-c.notify:
			if e.Requestor != c.win || e.Selection != c.selection || e.Target != target {
				continue
			}
			if e.Property == xproto.AtomNone {
				return nil, false, nil
			}

			data, err := c.readProperty(e.Property)
			return data, err == nil, err
		}
	}
}

func (c *Clipboard) drain() {
	for {
		select {
		case <-c.notify:
		case <-c.props:
		default:
			return
		}
	}
}

func (c *Clipboard) readProperty(prop xproto.Atom) ([]byte, error) {
	head, err := xproto.GetProperty(c.conn, false, c.win, prop, xproto.GetPropertyTypeAny, 0, 0).Reply()
	if err != nil {
		return nil, err
	}

	if head.Type == c.atoms.Incr {
		return c.readIncr(prop)
	}

	if head.BytesAfter > maxDataSize {
		return nil, ErrTooLarge
	}

	reply, err := xproto.GetProperty(
		c.conn,
		true,
		c.win,
		prop,
		xproto.GetPropertyTypeAny,
		0,
		(head.BytesAfter+3)/4,
	).Reply()
	if err != nil {
		return nil, err
	}

	return reply.Value, nil
}

func (c *Clipboard) readIncr(prop xproto.Atom) ([]byte, error) {
	xproto.DeleteProperty(c.conn, c.win, prop)

	var buf bytes.Buffer
	buf.Grow(4096)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	for {
		select {
		case <-c.done:
			return nil, errDisconnected
		case <-timer.C:
			return nil, ErrTimeout
		case event := <-c.props:
			if event.Atom != prop {
				continue
			}

			reply, err := xproto.GetProperty(c.conn, true, c.win, prop, xproto.GetPropertyTypeAny, 0, maxPropSize).Reply()
			if err != nil {
				return nil, err
			}

			if len(reply.Value) == 0 {
				return buf.Bytes(), nil
			}

			if buf.Len()+len(reply.Value) > maxDataSize {
				return nil, ErrTooLarge
			}

			buf.Write(reply.Value)
			timer.Reset(c.timeout)
		}
	}
}

func (c *Clipboard) handleRequest(e xproto.SelectionRequestEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  xproto.AtomNone,
	}

	// obsolete clients leave the property unset
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}

	reply := func(typ xproto.Atom, format uint8, data []byte) {
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, prop, typ, format, uint32(len(data))/(uint32(format)/8), data)
		resp.Property = prop
	}

	switch {
	case e.Selection != c.selection || !c.owned:
	case e.Target == c.atoms.Targets:
		targets := []xproto.Atom{
			c.atoms.Targets, c.atoms.Timestamp, c.atoms.SaveTargets,
			c.atoms.Utf8String, c.atoms.String, c.atoms.Text,
		}

		buf := new(bytes.Buffer)
		_ = binary.Write(buf, binary.LittleEndian, targets)
		reply(xproto.AtomAtom, 32, buf.Bytes())

	case e.Target == c.atoms.Timestamp:
		buf := new(bytes.Buffer)
		_ = binary.Write(buf, binary.LittleEndian, e.Time)
		reply(xproto.AtomInteger, 32, buf.Bytes())

	case e.Target == c.atoms.SaveTargets:
		resp.Property = prop

	case e.Target == c.atoms.Utf8String, e.Target == c.atoms.String, e.Target == c.atoms.Text:
		if len(c.serving) > maxServeSize {
			c.logger.Warn().Int("size", len(c.serving)).Msg("selection too large to serve")
			break
		}

		if e.Target != c.atoms.String {
			reply(c.atoms.Utf8String, 8, c.serving)
			break
		}

		data, err := utf8ToLatin1(c.serving)
		if err != nil {
			c.logger.Debug().Err(err).Msg("refusing STRING target")
			break
		}
		reply(c.atoms.String, 8, data)
	}

	xproto.SendEvent(c.conn, false, e.Requestor, xproto.EventMaskNoEvent, string(resp.Bytes()))
}

// Close releases the selection and the display connection. A pending
// clipboard manager handoff is given up to the timeout to finish first.
func (c *Clipboard) Close() error {
	c.closeOnce.Do(func() {
		c.waitSaved()
		c.disown()
		c.conn.Close()
		<-c.done
	})
	return nil
}

// latin1ToUTF8 decodes the ISO 8859-1 text of the STRING target.
func latin1ToUTF8(b []byte) string {
	buf := make([]byte, 0, len(b))
	for _, c := range b {
		buf = utf8.AppendRune(buf, rune(c))
	}
	return string(buf)
}

// utf8ToLatin1 encodes text for the STRING target, which is ISO 8859-1.
func utf8ToLatin1(b []byte) ([]byte, error) {
	buf := make([]byte, 0, len(b))
	for i, r := range string(b) {
		if r > 0xff {
			return nil, fmt.Errorf("%w: %q at byte %d", ErrNotLatin1, r, i)
		}
		buf = append(buf, byte(r))
	}
	return buf, nil
}
