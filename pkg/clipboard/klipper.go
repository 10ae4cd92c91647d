package clipboard

import "strings"

// klipper talks to KDE's clipboard daemon over D-Bus through qdbus.
type klipper struct {
	exec Executor
}

func newKlipper(o Options) (Provider, error) {
	return &klipper{exec: o.Executor}, nil
}

// Copy ignores empty text: setClipboardContents cannot represent it.
func (m *klipper) Copy(text string) error {
	if text == "" {
		return nil
	}
	return copyText(Klipper, m.exec, "",
		"qdbus", "org.kde.klipper", "/klipper", "setClipboardContents", text,
	)
}

func (m *klipper) Paste() (string, error) {
	text, err := paste(Klipper, m.exec, "qdbus", "org.kde.klipper", "/klipper", "getClipboardContents")
	if err != nil {
		return "", err
	}
	return klipperFixNewline(text), nil
}

// klipperFixNewline drops the newline Klipper appends to every value
// (https://bugs.kde.org/show_bug.cgi?id=342874). Exactly one is removed.
func klipperFixNewline(text string) string {
	return strings.TrimSuffix(text, "\n")
}
