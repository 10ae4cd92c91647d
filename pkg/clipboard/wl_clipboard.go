package clipboard

type wlClipboard struct {
	exec    Executor
	primary bool
}

func newWlClipboard(o Options) (Provider, error) {
	return &wlClipboard{exec: o.Executor, primary: o.Primary}, nil
}

func (m *wlClipboard) args(argv ...string) []string {
	if m.primary {
		argv = append(argv, "--primary")
	}
	return argv
}

func (m *wlClipboard) Copy(text string) error {
	if text == "" {
		return copyText(WlClipboard, m.exec, "", m.args("wl-copy", "--clear")...)
	}
	return copyText(WlClipboard, m.exec, text, m.args("wl-copy")...)
}

func (m *wlClipboard) Paste() (string, error) {
	text, err := paste(WlClipboard, m.exec, m.args("wl-paste", "--no-newline")...)
	// usually this means the buffer is empty
	if exitedWith(err, 1) {
		return "", nil
	}
	return text, err
}
