package action

import "testing"

func TestParseVK(t *testing.T) {
	cases := map[string]byte{
		"F1":  0x70,
		"f3":  0x72,
		" F9": 0x78,
		"F10": 0x79,
		"F12": 0x7B,
		"r":   'R',
		"Z":   'Z',
		"7":   '7',
		"F13": DefaultToggleVK,
		"F0":  DefaultToggleVK,
		"Fx":  DefaultToggleVK,
		"":    DefaultToggleVK,
		"Esc": DefaultToggleVK,
	}
	for in, want := range cases {
		if got := ParseVK(in); got != want {
			t.Errorf("ParseVK(%q) = %#x want %#x", in, got, want)
		}
	}
}
