//go:build darwin

// Package mac reads and writes text through NSPasteboard.
package mac

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
)

const (
	AppKitPath = "/System/Library/Frameworks/AppKit.framework/AppKit"

	typeText           = "public.utf8-plain-text"
	nsUTF8StringEncode = 4
)

var errSetString = errors.New("failed to set clipboard content")

type Clipboard struct {
	clsPasteboard objc.Class
	clsString     objc.Class
	clsPool       objc.Class

	selGeneralPasteboard objc.SEL
	selClearContents     objc.SEL
	selSetString         objc.SEL
	selStringForType     objc.SEL
	selStringWithUTF8    objc.SEL
	selAlloc             objc.SEL
	selInit              objc.SEL
	selInitWithBytes     objc.SEL
	selRelease           objc.SEL
	selDrain             objc.SEL
	selUTF8String        objc.SEL
	selLengthOfBytes     objc.SEL
}

// New loads AppKit and resolves the classes and selectors it needs.
func New() (*Clipboard, error) {
	if _, err := purego.Dlopen(AppKitPath, purego.RTLD_GLOBAL|purego.RTLD_LAZY); err != nil {
		return nil, fmt.Errorf("failed to load AppKit: %w", err)
	}

	m := &Clipboard{
		clsPasteboard: objc.GetClass("NSPasteboard"),
		clsString:     objc.GetClass("NSString"),
		clsPool:       objc.GetClass("NSAutoreleasePool"),

		selGeneralPasteboard: objc.RegisterName("generalPasteboard"),
		selClearContents:     objc.RegisterName("clearContents"),
		selSetString:         objc.RegisterName("setString:forType:"),
		selStringForType:     objc.RegisterName("stringForType:"),
		selStringWithUTF8:    objc.RegisterName("stringWithUTF8String:"),
		selAlloc:             objc.RegisterName("alloc"),
		selInit:              objc.RegisterName("init"),
		selInitWithBytes:     objc.RegisterName("initWithBytes:length:encoding:"),
		selRelease:           objc.RegisterName("release"),
		selDrain:             objc.RegisterName("drain"),
		selUTF8String:        objc.RegisterName("UTF8String"),
		selLengthOfBytes:     objc.RegisterName("lengthOfBytesUsingEncoding:"),
	}

	if m.clsPasteboard == 0 || m.clsString == 0 || m.clsPool == 0 {
		return nil, errors.New("AppKit classes are not available")
	}

	return m, nil
}

func (m *Clipboard) Copy(text string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := objc.ID(m.clsPool).Send(m.selAlloc).Send(m.selInit)
	defer pool.Send(m.selDrain)

	pb := objc.ID(m.clsPasteboard).Send(m.selGeneralPasteboard)
	pb.Send(m.selClearContents)

	content := m.makeString(text)
	defer content.Send(m.selRelease)

	if !objc.Send[bool](pb, m.selSetString, content, m.typeText()) {
		return errSetString
	}

	return nil
}

func (m *Clipboard) Paste() (string, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := objc.ID(m.clsPool).Send(m.selAlloc).Send(m.selInit)
	defer pool.Send(m.selDrain)

	pb := objc.ID(m.clsPasteboard).Send(m.selGeneralPasteboard)

	nsStr := pb.Send(m.selStringForType, m.typeText())
	if nsStr == 0 {
		return "", nil
	}

	length := objc.Send[uint](nsStr, m.selLengthOfBytes, uintptr(nsUTF8StringEncode))
	ptr := nsStr.Send(m.selUTF8String)
	if ptr == 0 || length == 0 {
		return "", nil
	}

	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length)), nil
}

func (m *Clipboard) typeText() objc.ID {
	return objc.ID(m.clsString).Send(m.selStringWithUTF8, typeText)
}

// makeString returns a retained NSString holding text, embedded NULs
// included.
func (m *Clipboard) makeString(text string) objc.ID {
	var bytesPtr unsafe.Pointer
	if len(text) > 0 {
		bytesPtr = unsafe.Pointer(unsafe.StringData(text))
	}

	id := objc.ID(m.clsString).Send(m.selAlloc).Send(
		m.selInitWithBytes,
		uintptr(bytesPtr),
		uintptr(len(text)),
		uintptr(nsUTF8StringEncode),
	)
	runtime.KeepAlive(text)

	return id
}
