//go:build darwin

package mac

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCopyPaste(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Skipf("AppKit unavailable: %v", err)
	}

	tests := []struct {
		name string
		data string
	}{
		{"ascii", "Hello World"},
		{"empty", ""},
		{"cyrillic", "кириллица"},
		{"emoji", "👋 🌍 🧑‍💻 🚀"},
		{"whitespace", " \t\r\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.Copy(tt.data); err != nil {
				t.Fatalf("Copy() error = %v", err)
			}

			got, err := m.Paste()
			if err != nil {
				t.Fatalf("Paste() error = %v", err)
			}

			if diff := cmp.Diff(tt.data, got); diff != "" {
				t.Errorf("Paste() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
