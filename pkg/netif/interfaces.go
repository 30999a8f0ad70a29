package netif

import (
	"context"
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// Status is the administrative state of an interface, when the OS reports it
type Status int

const (
	StatusUnknown Status = iota
	StatusUp
	StatusDown
)

// Family is the address family of an address entry. FamilyAbsent marks an
// entry whose family could not be determined; such entries are never used.
type Family int

const (
	FamilyAbsent Family = iota
	FamilyIPv4
	FamilyIPv6
)

// AddressEntry is a single address reported for an interface
type AddressEntry struct {
	Family  Family
	Address string
}

// Interface is a host network interface as reported by the OS
type Interface struct {
	Name      string
	Status    Status
	Addresses []AddressEntry
}

// Source enumerates host network interfaces
type Source interface {
	Interfaces(ctx context.Context) ([]Interface, error)
}

// SystemSource enumerates the host interfaces through gopsutil
type SystemSource struct{}

// Interfaces returns every interface in the order the OS reports them
func (SystemSource) Interfaces(ctx context.Context) ([]Interface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	interfaces := make([]Interface, 0, len(stats))
	for _, stat := range stats {
		iface := Interface{
			Name:   stat.Name,
			Status: statusFromFlags(stat.Flags),
		}
		for _, addr := range stat.Addrs {
			iface.Addresses = append(iface.Addresses, ParseAddressEntry(addr.Addr))
		}
		interfaces = append(interfaces, iface)
	}
	return interfaces, nil
}

func statusFromFlags(flags []string) Status {
	if flags == nil {
		return StatusUnknown
	}
	for _, flag := range flags {
		if flag == "up" {
			return StatusUp
		}
	}
	return StatusDown
}

// ParseAddressEntry converts an OS address ("192.168.1.5/24", "fe80::1/64" or a
// bare address) into an entry with an explicit family
func ParseAddressEntry(raw string) AddressEntry {
	address := raw
	if idx := strings.IndexByte(address, '/'); idx >= 0 {
		address = address[:idx]
	}
	// zone suffix, e.g. fe80::1%en0
	if idx := strings.IndexByte(address, '%'); idx >= 0 {
		address = address[:idx]
	}

	ip := net.ParseIP(address)
	switch {
	case ip == nil:
		return AddressEntry{Family: FamilyAbsent, Address: raw}
	case ip.To4() != nil && !strings.Contains(address, ":"):
		return AddressEntry{Family: FamilyIPv4, Address: address}
	default:
		return AddressEntry{Family: FamilyIPv6, Address: address}
	}
}
