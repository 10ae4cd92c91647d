package clipboard

import "sync"

// ThreadSafe serialises access to a Clipboard, including the lazy selection
// that the first call triggers.
type ThreadSafe struct {
	clipboard *Clipboard
	sync.Mutex
}

func NewThreadSafe(c *Clipboard) *ThreadSafe {
	return &ThreadSafe{clipboard: c}
}

func (t *ThreadSafe) Copy(v any) error {
	t.Lock()
	defer t.Unlock()

	return t.clipboard.Copy(v)
}

func (t *ThreadSafe) Paste() (string, error) {
	t.Lock()
	defer t.Unlock()

	return t.clipboard.Paste()
}

func (t *ThreadSafe) SetBackend(name string) error {
	t.Lock()
	defer t.Unlock()

	return t.clipboard.SetBackend(name)
}

func (t *ThreadSafe) IsAvailable() bool {
	t.Lock()
	defer t.Unlock()

	return t.clipboard.IsAvailable()
}

func (t *ThreadSafe) Backend() Name {
	t.Lock()
	defer t.Unlock()

	return t.clipboard.Backend()
}

func (t *ThreadSafe) Close() error {
	t.Lock()
	defer t.Unlock()

	return t.clipboard.Close()
}
