package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already local format",
			input: "09171234567",
			want:  "09171234567",
		},
		{
			name:  "E.164 format",
			input: "+639171234567",
			want:  "09171234567",
		},
		{
			name:  "international without plus",
			input: "639171234567",
			want:  "09171234567",
		},
		{
			name:  "local with spaces",
			input: "0917 123 4567",
			want:  "09171234567",
		},
		{
			name:  "E.164 with spaces",
			input: "+63 917 123 4567",
			want:  "09171234567",
		},
		{
			name:  "with dashes",
			input: "0917-123-4567",
			want:  "09171234567",
		},
		{
			name:  "leading and trailing spaces",
			input: "  09171234567  ",
			want:  "09171234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "unparseable input returned trimmed",
			input: "  call me maybe  ",
			want:  "call me maybe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
