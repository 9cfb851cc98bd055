package yamlutil

import (
	"bytes"
	"errors"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshalStrict(t *testing.T) {
	var s sample
	err := UnmarshalStrict([]byte("name: demo\ncount: 3\n"), &s)
	if err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if s.Name != "demo" || s.Count != 3 {
		t.Errorf("got %+v, want {demo 3}", s)
	}
}

func TestUnmarshalStrictUnknownField(t *testing.T) {
	var s sample
	err := UnmarshalStrict([]byte("name: demo\nbogus: 1\n"), &s)
	if err == nil {
		t.Error("unknown field should be rejected")
	}
}

func TestUnmarshalStrictValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{name: "nil data", data: nil, dest: &sample{}, wantErr: ErrNilData},
		{name: "empty data", data: []byte{}, dest: &sample{}, wantErr: ErrNilData},
		{name: "nil destination", data: []byte("name: x"), dest: nil, wantErr: ErrNilDestination},
		{name: "oversized input", data: bytes.Repeat([]byte("a"), MaxInputSize+1), dest: &sample{}, wantErr: ErrInputTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := UnmarshalStrict(tt.data, tt.dest); !errors.Is(err, tt.wantErr) {
				t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
