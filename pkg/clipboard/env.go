package clipboard

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"runtime"
)

// Env is the view of the host that backend probes inspect.
type Env interface {
	GOOS() string
	LookupEnv(key string) (string, bool)
	LookPath(file string) (string, error)
	ReadFile(name string) ([]byte, error)
	// Loadable reports whether the shared library can be loaded. It must not
	// initialise anything inside the library.
	Loadable(lib string) bool
}

// HostEnv returns the Env of the running process.
func HostEnv() Env { return hostEnv{} }

type hostEnv struct{}

func (hostEnv) GOOS() string                         { return runtime.GOOS }
func (hostEnv) LookupEnv(key string) (string, bool)  { return os.LookupEnv(key) }
func (hostEnv) LookPath(file string) (string, error) { return exec.LookPath(file) }
func (hostEnv) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (hostEnv) Loadable(lib string) bool             { return loadable(lib) }

// Prober answers availability questions against an Env. Executable lookups
// are memoised for the lifetime of the Prober, which is one selection pass.
type Prober struct {
	env   Env
	paths map[string]error
}

func NewProber(env Env) *Prober {
	return &Prober{env: env, paths: make(map[string]error)}
}

func (p *Prober) GOOS() string { return p.env.GOOS() }

func (p *Prober) nonEmpty(key string) bool {
	v, ok := p.env.LookupEnv(key)
	return ok && v != ""
}

// X11 reports whether an X display is advertised.
func (p *Prober) X11() bool { return p.nonEmpty("DISPLAY") }

// Wayland reports whether a Wayland compositor is advertised.
func (p *Prober) Wayland() bool { return p.nonEmpty("WAYLAND_DISPLAY") }

// Executables reports whether every named program is on PATH. A missing
// program is not an error; anything else LookPath reports is.
func (p *Prober) Executables(names ...string) (bool, error) {
	for _, name := range names {
		err, seen := p.paths[name]
		if !seen {
			_, err = p.env.LookPath(name)
			p.paths[name] = err
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, exec.ErrDot), errors.Is(err, fs.ErrNotExist):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

// WSL reports whether the process runs under the Windows Subsystem for Linux.
func (p *Prober) WSL() (bool, error) {
	if p.GOOS() != "linux" {
		return false, nil
	}

	version, err := p.env.ReadFile("/proc/version")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	return bytes.Contains(bytes.ToLower(version), []byte("microsoft")), nil
}

// Library reports whether a shared library can be loaded.
func (p *Prober) Library(lib string) bool { return p.env.Loadable(lib) }
