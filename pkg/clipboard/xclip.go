package clipboard

type xClip struct {
	exec      Executor
	selection string
}

func newXClip(o Options) (Provider, error) {
	selection := "c"
	if o.Primary {
		selection = "p"
	}
	return &xClip{exec: o.Executor, selection: selection}, nil
}

func (m *xClip) Copy(text string) error {
	return copyText(XClip, m.exec, text, "xclip", "-selection", m.selection)
}

func (m *xClip) Paste() (string, error) {
	text, err := paste(XClip, m.exec, "xclip", "-selection", m.selection, "-o")
	// xclip exits 1 when nobody owns the selection or it holds no text
	if exitedWith(err, 1) {
		return "", nil
	}
	return text, err
}
