package sanitize

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Lawmakers push for AI oversight",
			want: "Lawmakers push for AI oversight",
		},
		{
			name: "inline tags removed",
			in:   "Lawmakers push for <strong>AI</strong> oversight",
			want: "Lawmakers push for AI oversight",
		},
		{
			name: "nested markup",
			in:   "<p>A new <b>neural network</b> result</p>",
			want: "A new neural network result",
		},
		{
			name: "whitespace collapsed",
			in:   "  too   many\n\nspaces  ",
			want: "too many spaces",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "anchor text kept, href dropped",
			in:   `Read <a href="https://example.com">the full story</a> now`,
			want: "Read the full story now",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.in); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
