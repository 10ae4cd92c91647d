package clipboard

import "strings"

const wslPasteScript = "[Console]::OutputEncoding = [System.Text.Encoding]::UTF8; Get-Clipboard -Raw"

// wsl reaches the Windows clipboard from the Linux side of WSL.
type wsl struct {
	exec Executor
}

func newWSL(o Options) (Provider, error) {
	return &wsl{exec: o.Executor}, nil
}

func (w *wsl) Copy(text string) error {
	return copyText(WSL, w.exec, text, "clip.exe")
}

func (w *wsl) Paste() (string, error) {
	text, err := paste(WSL, w.exec, "powershell.exe", "-NoProfile", "-Command", wslPasteScript)
	if err != nil {
		return "", err
	}
	// powershell terminates its output with CRLF
	return strings.TrimSuffix(text, "\r\n"), nil
}
