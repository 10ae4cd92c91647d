// Package null provides an in-memory clipboard. It backs tests and hosts
// where text only needs to survive inside the process.
package null

import "sync"

type Clipboard struct {
	mu   sync.Mutex
	text string
	// Writes receives every text passed to Copy when non-nil. Sends block.
	Writes chan string
}

func NewNull() *Clipboard {
	return &Clipboard{}
}

func (n *Clipboard) Copy(text string) error {
	n.mu.Lock()
	n.text = text
	n.mu.Unlock()

	if n.Writes != nil {
		n.Writes <- text
	}
	return nil
}

func (n *Clipboard) Paste() (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.text, nil
}
