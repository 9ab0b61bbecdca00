package users

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain@x.com", "plain@x.com"},
		{"%", `\%`},
		{"_", `\_`},
		{`\`, `\\`},
		{"100%_off", `100\%\_off`},
		{`a\%b`, `a\\\%b`},
		{"", ""},
	}
	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
