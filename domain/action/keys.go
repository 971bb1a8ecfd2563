package action

import "strings"

// DefaultToggleVK is VK_F1, used when a key token cannot be parsed.
const DefaultToggleVK byte = 0x70

// ParseVK converts a key token (e.g. "F1", "R") into a Windows virtual-key
// code. Recognizes F1..F12 and single letters or digits. Unknown tokens
// return DefaultToggleVK.
func ParseVK(key string) byte {
	k := strings.ToUpper(strings.TrimSpace(key))
	if len(k) >= 2 && len(k) <= 3 && k[0] == 'F' {
		n := 0
		for _, c := range k[1:] {
			if c < '0' || c > '9' {
				return DefaultToggleVK
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 12 {
			return byte(0x70 + n - 1)
		}
		return DefaultToggleVK
	}
	if len(k) == 1 && (k[0] >= 'A' && k[0] <= 'Z' || k[0] >= '0' && k[0] <= '9') {
		return k[0] // VK codes for letters and digits equal their ASCII
	}
	return DefaultToggleVK
}
