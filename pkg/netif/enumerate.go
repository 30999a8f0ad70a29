package netif

import (
	"context"

	errorutil "github.com/projectdiscovery/utils/errors"
)

// Enumerate builds the address map from the source. Down interfaces are
// skipped, and for each remaining interface the first IPv4 address that is
// neither loopback nor link-local is recorded.
//
// When the source fails the returned map is empty and the error describes
// why; callers treat this as a degraded, non-fatal condition.
func Enumerate(ctx context.Context, src Source) (*AddressMap, error) {
	m := NewAddressMap()

	interfaces, err := src.Interfaces(ctx)
	if err != nil {
		return m, errorutil.NewWithErr(err).Msgf("could not enumerate network interfaces")
	}

	for _, iface := range interfaces {
		if iface.Status == StatusDown {
			continue
		}
		for _, entry := range iface.Addresses {
			if entry.Family != FamilyIPv4 {
				continue
			}
			if entry.Address == "" || IsLoopback(entry.Address) || IsLinkLocal(entry.Address) {
				continue
			}
			m.Add(iface.Name, entry.Address)
			break
		}
	}

	return m, nil
}
