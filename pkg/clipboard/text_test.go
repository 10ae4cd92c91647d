package clipboard

import (
	"errors"
	"math"
	"net"
	"testing"
	"time"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{name: "string", in: "hello", want: "hello"},
		{name: "bytes", in: []byte("hi"), want: "hi"},
		{name: "int", in: 42, want: "42"},
		{name: "negative int64", in: int64(-7), want: "-7"},
		{name: "uint8", in: uint8(255), want: "255"},
		{name: "float", in: 1.25, want: "1.25"},
		{name: "float32", in: float32(0.1), want: "0.1"},
		{name: "large float", in: 1e21, want: "1e+21"},
		{name: "inf", in: math.Inf(1), want: "+Inf"},
		{name: "true", in: true, want: "true"},
		{name: "false", in: false, want: "false"},
		{name: "stringer", in: net.IPv4(127, 0, 0, 1), want: "127.0.0.1"},
		{name: "nil", in: nil, wantErr: true},
		{name: "nil stringer pointer", in: (*time.Time)(nil), wantErr: true},
		{name: "nil pointer receiver stringer", in: (*net.IPNet)(nil), wantErr: true},
		{name: "map", in: map[string]int{}, wantErr: true},
		{name: "struct", in: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Text() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("Text() error = %v, want %v", err, ErrUnsupportedType)
			}
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
