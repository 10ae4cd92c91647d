//go:build darwin || linux || freebsd

package clipboard

import "github.com/ebitengine/purego"

func loadable(lib string) bool {
	handle, err := purego.Dlopen(lib, purego.RTLD_LAZY|purego.RTLD_LOCAL)
	if err != nil {
		return false
	}
	_ = purego.Dlclose(handle)
	return true
}
