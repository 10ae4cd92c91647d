//go:build !windows && !darwin && !linux && !freebsd

package clipboard

func newWindows(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }

func newAppKit(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }

func newGTK(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }
