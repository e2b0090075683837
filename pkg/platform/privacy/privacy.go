// Package privacy redacts personal identifiers before they reach logs.
package privacy

import (
	"net"
	"strings"
)

// AnonymizeIP keeps the network part of an address: /24 for IPv4 and /48 for
// IPv6. Unparseable input is replaced entirely.
func AnonymizeIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "invalid"
	}
	if v4 := parsed.To4(); v4 != nil {
		return v4.Mask(net.CIDRMask(24, 32)).String()
	}
	return parsed.Mask(net.CIDRMask(48, 128)).String()
}

// MaskHKID keeps the prefix letters and hides the serial digits and check
// character: "A123456(3)" becomes "A******(*)". Anything that is not letters
// followed by other characters is fully masked.
func MaskHKID(hkid string) string {
	i := 0
	for i < len(hkid) && i < 2 && hkid[i] >= 'A' && hkid[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return strings.Repeat("*", len(hkid))
	}
	var b strings.Builder
	b.Grow(len(hkid))
	b.WriteString(hkid[:i])
	for j := i; j < len(hkid); j++ {
		switch hkid[j] {
		case '(', ')':
			b.WriteByte(hkid[j])
		default:
			b.WriteByte('*')
		}
	}
	return b.String()
}
