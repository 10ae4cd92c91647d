//go:build windows

package clipboard

import "github.com/labi-le/paperclip/pkg/clipboard/windows"

func newWindows(o Options) (Provider, error) {
	c, err := windows.New(windows.Options{Legacy: o.LegacyText})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newAppKit(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }

func newGTK(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }
