//go:build darwin

package clipboard

import "github.com/labi-le/paperclip/pkg/clipboard/mac"

func newAppKit(Options) (Provider, error) {
	c, err := mac.New()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newWindows(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }

func newGTK(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }
