package clipboard

// unavailable is selected when no mechanism works. Every call fails with
// ErrNoBackend.
type unavailable struct{}

func (unavailable) Copy(string) error {
	return ErrNoBackend
}

func (unavailable) Paste() (string, error) {
	return "", ErrNoBackend
}
