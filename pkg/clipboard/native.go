package clipboard

import "github.com/labi-le/paperclip/pkg/clipboard/x11"

const (
	appKitLibrary = "/System/Library/Frameworks/AppKit.framework/AppKit"
	gtkLibrary    = "libgtk-3.so.0"
)

func newX11(o Options) (Provider, error) {
	c, err := x11.New(x11.Options{
		Logger:  o.Logger,
		Primary: o.Primary,
		Timeout: o.SelectionTimeout,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
