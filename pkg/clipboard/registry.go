package clipboard

// Candidate is one row of the backend table.
type Candidate struct {
	Name Name
	// Probe reports whether the host can run the backend. It must not spawn
	// helper programs or initialise native toolkits.
	Probe func(p *Prober) (bool, error)
	// Build constructs the backend. It runs only for the backend that was
	// selected, or when one is forced with SetBackend.
	Build func(o Options) (Provider, error)
}

// ProbeResult is the verdict of one Candidate probe.
type ProbeResult struct {
	Name   Name
	Viable bool
	Err    error
}

// DefaultCandidates returns the built-in backend table in priority order.
// Unavailable is not part of it: it is what selection falls back to.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{
			Name:  Windows,
			Probe: onOS("windows"),
			Build: newWindows,
		},
		{
			Name: WSL,
			Probe: func(p *Prober) (bool, error) {
				if ok, err := p.WSL(); !ok || err != nil {
					return false, err
				}
				return p.Executables("clip.exe", "powershell.exe")
			},
			Build: newWSL,
		},
		{
			Name: AppKit,
			Probe: func(p *Prober) (bool, error) {
				return p.GOOS() == "darwin" && p.Library(appKitLibrary), nil
			},
			Build: newAppKit,
		},
		{
			Name:  PBCopy,
			Probe: onOS("darwin"),
			Build: newPBCopy,
		},
		{
			Name: WlClipboard,
			Probe: func(p *Prober) (bool, error) {
				if !p.Wayland() {
					return false, nil
				}
				return p.Executables("wl-copy", "wl-paste")
			},
			Build: newWlClipboard,
		},
		{
			Name: GTK,
			Probe: func(p *Prober) (bool, error) {
				return p.X11() && p.Library(gtkLibrary), nil
			},
			Build: newGTK,
		},
		{
			Name:  XSel,
			Probe: onDisplayWith("xsel"),
			Build: newXSel,
		},
		{
			Name:  XClip,
			Probe: onDisplayWith("xclip"),
			Build: newXClip,
		},
		{
			Name:  Klipper,
			Probe: onDisplayWith("klipper", "qdbus"),
			Build: newKlipper,
		},
		{
			Name: X11,
			Probe: func(p *Prober) (bool, error) {
				return p.X11(), nil
			},
			Build: newX11,
		},
		{
			Name:  Termux,
			Probe: withPrograms("termux-clipboard-get", "termux-clipboard-set"),
			Build: newTermux,
		},
	}
}

func onOS(goos string) func(*Prober) (bool, error) {
	return func(p *Prober) (bool, error) {
		return p.GOOS() == goos, nil
	}
}

func onDisplayWith(programs ...string) func(*Prober) (bool, error) {
	return func(p *Prober) (bool, error) {
		if !p.X11() {
			return false, nil
		}
		return p.Executables(programs...)
	}
}

func withPrograms(programs ...string) func(*Prober) (bool, error) {
	return func(p *Prober) (bool, error) {
		return p.Executables(programs...)
	}
}

// Select walks the candidates in priority order and builds the first viable
// one. A candidate whose constructor fails is logged and skipped. When nothing
// is viable the Unavailable resolution is returned with a nil error; an error
// is returned only when a probe fails unexpectedly.
func Select(opts Options) (Resolution, error) {
	prober := NewProber(opts.Env)

	for _, cand := range opts.ordered() {
		ok, err := cand.Probe(prober)
		if err != nil {
			return Resolution{}, wrapOp(cand.Name, "probe", err)
		}
		if !ok {
			continue
		}

		p, err := cand.Build(opts)
		if err != nil {
			opts.Logger.Warn().
				Err(err).
				Stringer("backend", cand.Name).
				Msg("backend is viable but failed to initialise, trying next")
			continue
		}

		return Resolution{Name: cand.Name, Provider: p}, nil
	}

	return unavailableResolution(), nil
}

// Probe runs every candidate probe, in priority order, without building any
// backend.
func Probe(opts Options) []ProbeResult {
	prober := NewProber(opts.Env)
	ordered := opts.ordered()

	results := make([]ProbeResult, 0, len(ordered))
	for _, cand := range ordered {
		ok, err := cand.Probe(prober)
		results = append(results, ProbeResult{Name: cand.Name, Viable: ok && err == nil, Err: err})
	}

	return results
}
