package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trunk prefixed", "09171234567", "+639171234567"},
		{"mobile local", "9171234567", "+639171234567"},
		{"international digits", "639171234567", "+639171234567"},
		{"already e164", "+639171234567", "+639171234567"},
		{"formatted with spaces", "+63 917 123 4567", "+639171234567"},
		{"formatted with punctuation", "0917-123-4567", "+639171234567"},
		{"mobile outside assigned ranges", "9001234567", "+639001234567"},
		{"trunk outside assigned ranges", "09001234567", "+639001234567"},
		{"too short", "12345", ""},
		{"too long trunk", "091712345678", ""},
		{"landlike prefix", "0287654321", ""},
		{"empty", "", ""},
		{"letters only", "call me", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeNeverMalformed(t *testing.T) {
	inputs := []string{
		"9171234567", "09171234567", "639171234567", "0000000000",
		"99999999999999", "(0917) 123 4567", "+1 555 123 4567", "63", "9",
	}

	for _, in := range inputs {
		got := Normalize(in)
		if got == "" {
			continue
		}
		if len(got) != 13 || got[:3] != "+63" {
			t.Fatalf("Normalize(%q) = %q, not a +63 E.164 number", in, got)
		}
		for _, r := range got[1:] {
			if r < '0' || r > '9' {
				t.Fatalf("Normalize(%q) = %q contains non-digit", in, got)
			}
		}
	}
}
