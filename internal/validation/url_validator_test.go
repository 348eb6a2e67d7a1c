package validation

import (
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid https URL",
			input:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantErr: false,
		},
		{
			name:    "valid http URL",
			input:   "http://example.com/video.mp4",
			wantErr: false,
		},
		{
			name:    "invalid scheme",
			input:   "ftp://example.com/video.mp4",
			wantErr: true,
		},
		{
			name:    "no scheme",
			input:   "www.youtube.com/watch?v=abc",
			wantErr: true,
		},
		{
			name:    "missing host",
			input:   "https:///path",
			wantErr: true,
		},
		{
			name:    "localhost not allowed",
			input:   "http://localhost:8080/clip",
			wantErr: true,
		},
		{
			name:    "private IP not allowed",
			input:   "http://192.168.1.10/video",
			wantErr: true,
		},
		{
			name:    "loopback IP not allowed",
			input:   "https://127.0.0.1",
			wantErr: true,
		},
		{
			name:    "metadata endpoint not allowed",
			input:   "http://169.254.169.254/latest",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
