package clipboard

// pbcopy drives the utilities bundled with macOS. LC_CTYPE is pinned so they
// read and write UTF-8 regardless of the caller's locale.
type pbcopy struct {
	exec Executor
}

func newPBCopy(o Options) (Provider, error) {
	return &pbcopy{exec: o.Executor}, nil
}

func (p *pbcopy) Copy(text string) error {
	return copyText(PBCopy, p.exec, text, "env", "LC_CTYPE=UTF-8", "pbcopy")
}

func (p *pbcopy) Paste() (string, error) {
	return paste(PBCopy, p.exec, "env", "LC_CTYPE=UTF-8", "pbpaste")
}
