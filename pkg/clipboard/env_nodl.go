//go:build !darwin && !linux && !freebsd

package clipboard

func loadable(string) bool { return false }
