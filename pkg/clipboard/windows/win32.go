//go:build windows

package windows

import "golang.org/x/sys/windows"

const (
	cfText        = 1
	cfUnicodeText = 13

	gmemMoveable = 0x0002
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	openClipboard    = user32.NewProc("OpenClipboard")
	closeClipboard   = user32.NewProc("CloseClipboard")
	emptyClipboard   = user32.NewProc("EmptyClipboard")
	getClipboardData = user32.NewProc("GetClipboardData")
	setClipboardData = user32.NewProc("SetClipboardData")
	createWindowEx   = user32.NewProc("CreateWindowExW")
	destroyWindow    = user32.NewProc("DestroyWindow")

	gLock   = kernel32.NewProc("GlobalLock")
	gUnlock = kernel32.NewProc("GlobalUnlock")
	gAlloc  = kernel32.NewProc("GlobalAlloc")
	gFree   = kernel32.NewProc("GlobalFree")
	gSize   = kernel32.NewProc("GlobalSize")
)

// load resolves every procedure up front so a missing export surfaces as an
// error from New instead of a panic on first use.
func load() error {
	for _, p := range []*windows.LazyProc{
		openClipboard, closeClipboard, emptyClipboard, getClipboardData,
		setClipboardData, createWindowEx, destroyWindow,
		gLock, gUnlock, gAlloc, gFree, gSize,
	} {
		if err := p.Find(); err != nil {
			return err
		}
	}
	return nil
}

func noCheck(_, _ uintptr, _ error) {}
