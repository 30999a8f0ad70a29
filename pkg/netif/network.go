package netif

import (
	"net"
	"strconv"
	"strings"

	"github.com/projectdiscovery/mapcidr"
)

// IsLoopback reports whether address is in 127.0.0.0/8
func IsLoopback(address string) bool {
	return strings.HasPrefix(address, "127.")
}

// IsLinkLocal reports whether address is in 169.254.0.0/16
func IsLinkLocal(address string) bool {
	return strings.HasPrefix(address, "169.254.")
}

// DeriveRange converts a dotted-quad IPv4 address to its /24 network by
// zeroing the last octet. Each of the four octets must be one to three
// decimal digits with a value of at most 255, so "256.1.1.1" or "1.2.3.1000"
// yield no range. The first three octets are copied as written.
func DeriveRange(address string) (string, bool) {
	octets := strings.Split(address, ".")
	if len(octets) != 4 {
		return "", false
	}
	for _, octet := range octets {
		if !isOctet(octet) {
			return "", false
		}
	}
	return octets[0] + "." + octets[1] + "." + octets[2] + ".0/24", true
}

func isOctet(s string) bool {
	if s == "" || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s)
	return err == nil && n <= 255
}

// Resolve returns the first address in insertion order that is not loopback
// and has a derivable range
func Resolve(m *AddressMap) (address, networkRange string, ok bool) {
	m.Iterate(func(_, candidate string) bool {
		if IsLoopback(candidate) {
			return true
		}
		if r, derived := DeriveRange(candidate); derived {
			address, networkRange, ok = candidate, r, true
			return false
		}
		return true
	})
	return address, networkRange, ok
}

// ResolvePreferring behaves like Resolve but picks the entry holding preferred
// when it is present and qualifies
func ResolvePreferring(m *AddressMap, preferred net.IP) (address, networkRange string, ok bool) {
	if ip4 := preferred.To4(); ip4 != nil {
		want := ip4.String()
		m.Iterate(func(_, candidate string) bool {
			if candidate != want || IsLoopback(candidate) {
				return true
			}
			if r, derived := DeriveRange(candidate); derived {
				address, networkRange, ok = candidate, r, true
			}
			return false
		})
		if ok {
			return address, networkRange, ok
		}
	}
	return Resolve(m)
}

// RangeSize returns the number of addresses covered by a CIDR range
func RangeSize(networkRange string) (uint64, error) {
	return mapcidr.AddressCount(networkRange)
}
