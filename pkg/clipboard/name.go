package clipboard

import (
	"strings"
)

// Name identifies a backend.
type Name string

const (
	Windows     Name = "windows"
	AppKit      Name = "appkit"
	PBCopy      Name = "pbcopy"
	XSel        Name = "xsel"
	XClip       Name = "xclip"
	Klipper     Name = "klipper"
	GTK         Name = "gtk"
	X11         Name = "x11"
	WlClipboard Name = "wl-clipboard"
	WSL         Name = "wsl"
	Termux      Name = "termux"
	Unavailable Name = "unavailable"
)

func (n Name) String() string { return string(n) }

// Names lists every backend known to the registry, in default priority order,
// followed by Unavailable.
func Names() []Name {
	return []Name{
		Windows, WSL, AppKit, PBCopy, WlClipboard, GTK,
		XSel, XClip, Klipper, X11, Termux, Unavailable,
	}
}

var aliases = map[string]Name{
	"no":     Unavailable,
	"null":   Unavailable,
	"none":   Unavailable,
	"pyobjc": AppKit,
	"osx":    PBCopy,
	"qt":     X11,
	"wl":     WlClipboard,
}

// ParseName maps a backend name, or one of its historical aliases, to a Name.
// Unknown names yield an error matching ErrUnknownBackend.
func ParseName(s string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(s))

	for _, n := range Names() {
		if string(n) == key {
			return n, nil
		}
	}

	if n, ok := aliases[key]; ok {
		return n, nil
	}

	return "", unknownBackend(s)
}
