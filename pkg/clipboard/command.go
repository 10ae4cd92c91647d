package clipboard

import (
	"errors"
	"io"
	"os/exec"
)

// Executor runs the helper programs of process backends.
type Executor interface {
	// Output runs argv and returns everything it wrote to stdout.
	Output(argv ...string) ([]byte, error)
	// Input runs argv with data on stdin and waits for it to exit.
	Input(data []byte, argv ...string) error
}

// ProcessExecutor runs helpers with os/exec. Every descriptor the Go runtime
// opens is close-on-exec, so children only inherit stdio.
type ProcessExecutor struct{}

func (ProcessExecutor) Output(argv ...string) ([]byte, error) {
	return clipboardGet(exec.Command(argv[0], argv[1:]...))
}

func (ProcessExecutor) Input(data []byte, argv ...string) error {
	return clipboardSet(data, exec.Command(argv[0], argv[1:]...))
}

func clipboardGet(cmd *exec.Cmd) ([]byte, error) {
	return cmd.Output()
}

// clipboardSet leaves stdout and stderr unpiped: xclip and wl-copy fork a
// child that keeps serving the selection with those descriptors open, and
// Wait would block on it.
func clipboardSet(data []byte, cmd *exec.Cmd) error {
	var (
		in  io.WriteCloser
		err error
	)

	if in, err = cmd.StdinPipe(); err != nil {
		return err
	}

	if err = cmd.Start(); err != nil {
		return err
	}

	if _, err = in.Write(data); err != nil {
		_ = in.Close()
		_ = cmd.Wait()
		return err
	}

	if err = in.Close(); err != nil {
		_ = cmd.Wait()
		return err
	}

	return cmd.Wait()
}

func paste(n Name, e Executor, argv ...string) (string, error) {
	out, err := e.Output(argv...)
	if err != nil {
		return "", wrapOp(n, "paste", err)
	}
	return string(out), nil
}

func copyText(n Name, e Executor, text string, argv ...string) error {
	return wrapOp(n, "copy", e.Input([]byte(text), argv...))
}

// exitedWith reports whether err comes from a helper that exited with one of
// the given codes.
func exitedWith(err error, codes ...int) bool {
	var exit interface{ ExitCode() int }
	if !errors.As(err, &exit) {
		return false
	}

	for _, code := range codes {
		if exit.ExitCode() == code {
			return true
		}
	}
	return false
}
