package x11

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type atomCache struct {
	Clipboard        xproto.Atom
	ClipboardManager xproto.Atom
	Targets          xproto.Atom
	Timestamp        xproto.Atom
	SaveTargets      xproto.Atom
	Incr             xproto.Atom
	Utf8String       xproto.Atom
	String           xproto.Atom
	Text             xproto.Atom
	LocalProp        xproto.Atom
	SaveProp         xproto.Atom
}

func loadAtoms(c *xgb.Conn) (*atomCache, error) {
	names := []string{
		"CLIPBOARD", "CLIPBOARD_MANAGER", "TARGETS", "TIMESTAMP", "SAVE_TARGETS",
		"INCR", "UTF8_STRING", "STRING", "TEXT",
		"PAPERCLIP_SELECTION", "PAPERCLIP_SAVE",
	}

	cookies := make([]xproto.InternAtomCookie, len(names))
	for i, name := range names {
		cookies[i] = xproto.InternAtom(c, false, uint16(len(name)), name)
	}

	atoms := make([]xproto.Atom, len(names))
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return nil, err
		}
		atoms[i] = reply.Atom
	}

	return &atomCache{
		Clipboard:        atoms[0],
		ClipboardManager: atoms[1],
		Targets:          atoms[2],
		Timestamp:        atoms[3],
		SaveTargets:      atoms[4],
		Incr:             atoms[5],
		Utf8String:       atoms[6],
		String:           atoms[7],
		Text:             atoms[8],
		LocalProp:        atoms[9],
		SaveProp:         atoms[10],
	}, nil
}
