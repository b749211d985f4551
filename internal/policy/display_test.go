package policy

import "testing"

func TestCanViewDetails(t *testing.T) {
	cases := []struct {
		name   string
		token  string
		sender string
		want   bool
	}{
		{"owner sees own asset", "alpha", "alpha", true},
		{"other sender is hidden", "alpha", "beta", false},
		{"softwareag sees everything", "softwareag", "beta", true},
		{"master sees everything", "master", "beta", true},
		{"empty token sees nothing", "", "", false},
		{"empty sender hidden from normal token", "alpha", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanViewDetails(tc.token, tc.sender); got != tc.want {
				t.Errorf("CanViewDetails(%q, %q) = %v, want %v", tc.token, tc.sender, got, tc.want)
			}
		})
	}
}
