package eventful

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
)

type script struct {
	mu    sync.Mutex
	reads []string
	err   error
}

func (s *script) Paste() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		err := s.err
		s.err = nil
		return "", err
	}

	if len(s.reads) > 1 {
		text := s.reads[0]
		s.reads = s.reads[1:]
		return text, nil
	}
	return s.reads[0], nil
}

func collect(t *testing.T, src Source, opts Options, want int) []string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	upd := make(chan Update)
	errCh := make(chan error, 1)
	go func() { errCh <- Poll(ctx, src, opts, upd) }()

	var got []string
	for u := range upd {
		got = append(got, u.Data)
		if len(got) == want {
			cancel()
		}
	}

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("Poll() error = %v, want context.Canceled", err)
	}
	return got
}

func TestPoll(t *testing.T) {
	tests := []struct {
		name  string
		reads []string
		warm  bool
		want  []string
	}{
		{
			name:  "baseline is not reported",
			reads: []string{"a", "a", "b", "b", "c"},
			want:  []string{"b", "c"},
		},
		{
			name:  "warm start reports initial content",
			reads: []string{"a", "a", "b"},
			warm:  true,
			want:  []string{"a", "b"},
		},
		{
			name:  "change back is reported",
			reads: []string{"a", "b", "a"},
			want:  []string{"b", "a"},
		},
		{
			name:  "empty clipboard is content too",
			reads: []string{"a", "", "x"},
			want:  []string{"", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &script{reads: tt.reads}
			opts := Options{Tick: time.Millisecond, WarmStart: tt.warm}

			got := collect(t, src, opts, len(tt.want))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Poll() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPollSurvivesReadErrors(t *testing.T) {
	src := &script{reads: []string{"a", "b"}, err: errors.New("boom")}

	var logs bytes.Buffer
	opts := Options{Tick: time.Millisecond, WarmStart: true, Logger: zerolog.New(&logs)}

	got := collect(t, src, opts, 2)
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("Poll() mismatch (-want +got):\n%s", diff)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.SplitN(logs.Bytes(), []byte("\n"), 2)[0], &entry); err != nil {
		t.Fatalf("decode log entry %q: %v", logs.String(), err)
	}

	want := map[string]any{
		"level":   "warn",
		"op":      "eventful.Poll",
		"error":   "boom",
		"message": "initial read failed",
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("log entry mismatch (-want +got):\n%s", diff)
	}
}

func TestTickFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  time.Duration
	}{
		{"unset", "", false, time.Second},
		{"valid", "250ms", true, 250 * time.Millisecond},
		{"invalid", "soon", true, time.Second},
		{"negative", "-1s", true, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(TickEnv, tt.value)
			}

			if got := TickFromEnv(time.Second); got != tt.want {
				t.Errorf("TickFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeduplicator(t *testing.T) {
	var d Deduplicator

	tests := []struct {
		name    string
		data    []byte
		changed bool
	}{
		{"first", nil, true},
		{"nil and empty are equal", []byte{}, false},
		{"new content", []byte("x"), true},
		{"repeat", []byte("x"), false},
		{"back to empty", nil, true},
	}

	for _, tt := range tests {
		_, changed := d.Check(tt.data)
		if changed != tt.changed {
			t.Errorf("%s: Check() changed = %v, want %v", tt.name, changed, tt.changed)
		}
	}
}
