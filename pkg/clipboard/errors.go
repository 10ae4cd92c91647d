package clipboard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedType     = errors.New("value cannot be copied to the clipboard")
	ErrNoBackend           = errors.New("could not find a copy/paste mechanism for this system")
	ErrUnknownBackend      = errors.New("unknown clipboard backend")
	ErrUnsupportedPlatform = errors.New("clipboard backend is not supported on this platform")
)

// OperationError reports a failure of an otherwise viable backend: a native
// call, a helper process that could not start or exited non-zero, or an
// unexpected probe failure.
type OperationError struct {
	Backend Name
	Op      string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("clipboard %s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func wrapOp(n Name, op string, err error) error {
	if err == nil {
		return nil
	}

	var opErr *OperationError
	if errors.As(err, &opErr) {
		return err
	}

	return &OperationError{Backend: n, Op: op, Err: err}
}

func unknownBackend(name string) error {
	known := make([]string, 0, len(Names()))
	for _, n := range Names() {
		known = append(known, string(n))
	}

	return fmt.Errorf("%w %q: must be one of %s", ErrUnknownBackend, name, strings.Join(known, ", "))
}
