package clip

import (
	"errors"
	"testing"
	"time"

	errpkg "github.com/veranemoloko/clipbot/internal/errors"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "hours minutes seconds", input: "01:02:03", want: 3723 * time.Second},
		{name: "minutes seconds", input: "02:03", want: 123 * time.Second},
		{name: "single digit fields", input: "1:23", want: 83 * time.Second},
		{name: "bare zero", input: "0", want: 0},
		{name: "bare seconds", input: "90", want: 90 * time.Second},
		{name: "zero padded", input: "00:00:10", want: 10 * time.Second},
		{name: "letters in field", input: "1x:02", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "too many fields", input: "1:2:3:4", wantErr: true},
		{name: "empty fields", input: "::", wantErr: true},
		{name: "signed field", input: "+1:02", wantErr: true},
		{name: "fractional field", input: "1.5:00", wantErr: true},
		{name: "three digit field", input: "100:00", wantErr: true},
		{name: "trailing colon", input: "10:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				if !errors.Is(err, errpkg.ErrInvalidTimestamp) {
					t.Errorf("expected ErrInvalidTimestamp, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRange_NoTimestamps(t *testing.T) {
	r, err := ParseRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Errorf("expected nil range, got %+v", r)
	}
}

func TestParseRange_StartOnly(t *testing.T) {
	r, err := ParseRange("00:00:10", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Start != 10*time.Second {
		t.Errorf("expected start 10s, got %v", r.Start)
	}
	if !r.OpenEnded() {
		t.Errorf("expected open-ended range, got end %v", r.End)
	}
}

func TestParseRange_StartAndEnd(t *testing.T) {
	r, err := ParseRange("00:00:10", "00:00:20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Start != 10*time.Second || r.End != 20*time.Second {
		t.Errorf("expected 10s-20s, got %v-%v", r.Start, r.End)
	}
	if r.OpenEnded() {
		t.Errorf("range with end must not be open-ended")
	}
}

func TestParseRange_StartNotBeforeEnd(t *testing.T) {
	for _, pair := range [][2]string{
		{"00:00:20", "00:00:10"},
		{"00:00:10", "00:00:10"},
		{"02:03", "0"},
	} {
		_, err := ParseRange(pair[0], pair[1])
		if !errors.Is(err, errpkg.ErrInvalidRange) {
			t.Errorf("ParseRange(%q, %q): expected ErrInvalidRange, got %v", pair[0], pair[1], err)
		}
	}
}

func TestParseRange_MalformedTimestamp(t *testing.T) {
	_, err := ParseRange("1x:02", "")
	if !errors.Is(err, errpkg.ErrInvalidTimestamp) {
		t.Errorf("expected ErrInvalidTimestamp, got %v", err)
	}

	_, err = ParseRange("00:10", "1x:02")
	if !errors.Is(err, errpkg.ErrInvalidTimestamp) {
		t.Errorf("expected ErrInvalidTimestamp for end token, got %v", err)
	}
}
