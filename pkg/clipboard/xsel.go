package clipboard

type xSel struct {
	exec      Executor
	selection string
}

func newXSel(o Options) (Provider, error) {
	selection := "-b"
	if o.Primary {
		selection = "-p"
	}
	return &xSel{exec: o.Executor, selection: selection}, nil
}

func (m *xSel) Copy(text string) error {
	return copyText(XSel, m.exec, text, "xsel", m.selection, "-i")
}

func (m *xSel) Paste() (string, error) {
	return paste(XSel, m.exec, "xsel", m.selection, "-o")
}
