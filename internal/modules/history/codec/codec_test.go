package codec

import (
	"reflect"
	"testing"

	"soilpico/internal/modules/history/types"
)

func TestRoundTrip(t *testing.T) {
	in := []types.Reading{
		{Timestamp: 0, Moisture: 0, Temperature: -20, Humidity: 0},
		{Timestamp: 61, Moisture: 45, Temperature: 22, Humidity: 60},
		{Timestamp: 4294967295, Moisture: 100, Temperature: 80, Humidity: 100},
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestEncode_Nil(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Encode(nil) = %q; want []", string(data))
	}
}

func TestDecode_MissingFieldsZeroFill(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want types.Reading
	}{
		{
			name: "missing humidity",
			in:   `[{"ts":10,"m":40,"t":21}]`,
			want: types.Reading{Timestamp: 10, Moisture: 40, Temperature: 21},
		},
		{
			name: "only timestamp",
			in:   `[{"ts":10}]`,
			want: types.Reading{Timestamp: 10},
		},
		{
			name: "empty object",
			in:   `[{}]`,
			want: types.Reading{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Decode([]byte(tt.in))
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.in, err)
			}
			if len(out) != 1 {
				t.Fatalf("Decode(%q) len = %d; want 1", tt.in, len(out))
			}
			if out[0] != tt.want {
				t.Errorf("Decode(%q)[0] = %+v; want %+v", tt.in, out[0], tt.want)
			}
		})
	}
}

func TestDecode_MalformedElementDoesNotAbort(t *testing.T) {
	in := `[{"ts":1,"m":40,"t":20,"h":50},{"ts":"bogus","m":41},{"ts":3,"m":42,"t":22,"h":52}]`

	out, err := Decode([]byte(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d; want 3 (malformed element kept, zero-filled)", len(out))
	}
	if out[0].Timestamp != 1 || out[2].Timestamp != 3 {
		t.Errorf("surrounding records damaged: %+v", out)
	}
	// The bogus timestamp zero-fills; sibling fields that parsed are kept.
	if out[1].Timestamp != 0 {
		t.Errorf("malformed field Timestamp = %d; want 0", out[1].Timestamp)
	}
	if out[1].Moisture != 41 {
		t.Errorf("intact field Moisture = %d; want 41", out[1].Moisture)
	}
}

func TestDecode_BadContainer(t *testing.T) {
	tests := []string{
		`{`,
		`{"not":"an array"}`,
		`garbage`,
		``,
	}
	for _, in := range tests {
		if _, err := Decode([]byte(in)); err == nil {
			t.Errorf("Decode(%q) = nil error; want container error", in)
		}
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	out, err := Decode([]byte(`[]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len = %d; want 0", len(out))
	}
}
