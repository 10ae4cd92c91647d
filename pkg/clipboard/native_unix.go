//go:build linux || freebsd

package clipboard

import "github.com/labi-le/paperclip/pkg/clipboard/gtk"

func newGTK(o Options) (Provider, error) {
	c, err := gtk.New(gtk.Options{Primary: o.Primary})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newWindows(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }

func newAppKit(Options) (Provider, error) { return nil, ErrUnsupportedPlatform }
