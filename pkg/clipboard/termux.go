package clipboard

type termux struct {
	exec Executor
}

func newTermux(o Options) (Provider, error) {
	return &termux{exec: o.Executor}, nil
}

func (m *termux) Copy(text string) error {
	return copyText(Termux, m.exec, text, "termux-clipboard-set")
}

func (m *termux) Paste() (string, error) {
	return paste(Termux, m.exec, "termux-clipboard-get")
}
