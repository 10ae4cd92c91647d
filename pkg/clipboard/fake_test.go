package clipboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"sync"
)

type fakeEnv struct {
	goos  string
	vars  map[string]string
	paths map[string]error
	files map[string]string
	libs  map[string]bool

	mu    sync.Mutex
	calls int
}

func (f *fakeEnv) touch() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeEnv) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeEnv) GOOS() string {
	f.touch()
	return f.goos
}

func (f *fakeEnv) LookupEnv(key string) (string, bool) {
	f.touch()
	v, ok := f.vars[key]
	return v, ok
}

func (f *fakeEnv) LookPath(file string) (string, error) {
	f.touch()
	err, ok := f.paths[file]
	if !ok {
		return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
	}
	if err != nil {
		return "", err
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeEnv) ReadFile(name string) ([]byte, error) {
	f.touch()
	content, ok := f.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}

func (f *fakeEnv) Loadable(lib string) bool {
	f.touch()
	return f.libs[lib]
}

func programs(names ...string) map[string]error {
	m := make(map[string]error, len(names))
	for _, n := range names {
		m[n] = nil
	}
	return m
}

type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitError) ExitCode() int { return int(e) }

// fakeExecutor emulates the helper programs on top of an in-memory buffer.
type fakeExecutor struct {
	mu      sync.Mutex
	content string
	calls   [][]string
	inputs  []string
	// fail, when set, is returned by every call.
	fail error
	// emptyExit is the exit code a paste helper reports on an empty buffer.
	emptyExit int
}

func (f *fakeExecutor) record(argv []string) {
	f.calls = append(f.calls, append([]string(nil), argv...))
}

func (f *fakeExecutor) Output(argv ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record(argv)
	if f.fail != nil {
		return nil, f.fail
	}

	if f.content == "" && f.emptyExit != 0 {
		return nil, exitError(f.emptyExit)
	}

	switch program(argv) {
	case "qdbus":
		return []byte(f.content + "\n"), nil
	case "powershell.exe":
		return []byte(f.content + "\r\n"), nil
	}
	return []byte(f.content), nil
}

func (f *fakeExecutor) Input(data []byte, argv ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record(argv)
	f.inputs = append(f.inputs, string(data))
	if f.fail != nil {
		return f.fail
	}

	switch {
	case program(argv) == "qdbus":
		f.content = argv[len(argv)-1]
	case containsArg(argv, "--clear"):
		f.content = ""
	default:
		f.content = string(data)
	}
	return nil
}

func (f *fakeExecutor) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// program skips the env(1) prefix used by pbcopy.
func program(argv []string) string {
	for _, a := range argv {
		if a == "env" || strings.Contains(a, "=") {
			continue
		}
		return a
	}
	return ""
}

func containsArg(argv []string, arg string) bool {
	for _, a := range argv {
		if a == arg {
			return true
		}
	}
	return false
}

var errBoom = errors.New("boom")
