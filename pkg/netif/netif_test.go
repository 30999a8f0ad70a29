package netif

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	interfaces []Interface
	err        error
}

func (s staticSource) Interfaces(context.Context) ([]Interface, error) {
	return s.interfaces, s.err
}

func v4(address string) AddressEntry {
	return AddressEntry{Family: FamilyIPv4, Address: address}
}

func v6(address string) AddressEntry {
	return AddressEntry{Family: FamilyIPv6, Address: address}
}

func mapOf(pairs ...string) *AddressMap {
	m := NewAddressMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Add(pairs[i], pairs[i+1])
	}
	return m
}

func entries(m *AddressMap) [][2]string {
	var out [][2]string
	m.Iterate(func(name, address string) bool {
		out = append(out, [2]string{name, address})
		return true
	})
	return out
}

func TestDeriveRange(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "192.168.1.15", want: "192.168.1.0/24", wantOK: true},
		{input: "10.0.0.42", want: "10.0.0.0/24", wantOK: true},
		{input: "172.16.254.1", want: "172.16.254.0/24", wantOK: true},
		{input: "0.0.0.0", want: "0.0.0.0/24", wantOK: true},
		{input: "255.255.255.255", want: "255.255.255.0/24", wantOK: true},
		{input: ""},
		{input: "192.168.1"},
		{input: "192.168.1.1.1"},
		{input: "192.168.one.1"},
		{input: "192.168..1"},
		{input: "256.1.1.1"},
		{input: "1.2.3.1000"},
		{input: "010.1.2.3", want: "010.1.2.0/24", wantOK: true},
		{input: "-1.1.1.1"},
		{input: "fe80::1"},
		{input: " 192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := DeriveRange(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveRangeAllOctets(t *testing.T) {
	for i := 0; i <= 255; i += 17 {
		address := fmt.Sprintf("%d.%d.%d.%d", i, 255-i, i/2, i)
		got, ok := DeriveRange(address)
		require.True(t, ok, address)
		assert.Equal(t, fmt.Sprintf("%d.%d.%d.0/24", i, 255-i, i/2), got)
	}
}

func TestEnumerate(t *testing.T) {
	src := staticSource{interfaces: []Interface{
		{Name: "lo", Status: StatusUp, Addresses: []AddressEntry{v4("127.0.0.1"), v6("::1")}},
		{Name: "eth0", Status: StatusUp, Addresses: []AddressEntry{v6("fe80::1"), v4("192.168.1.15"), v4("192.168.1.16")}},
		{Name: "eth1", Status: StatusDown, Addresses: []AddressEntry{v4("10.1.1.1")}},
		{Name: "wlan0", Status: StatusUnknown, Addresses: []AddressEntry{v4("169.254.10.2"), v4("10.0.0.42")}},
		{Name: "tun0", Status: StatusUp, Addresses: []AddressEntry{{Family: FamilyAbsent, Address: "10.8.0.1"}}},
		{Name: "docker0", Status: StatusUp},
	}}

	m, err := Enumerate(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"eth0", "192.168.1.15"},
		{"wlan0", "10.0.0.42"},
	}, entries(m))
}

func TestEnumerateNeverRecordsLoopbackOrLinkLocal(t *testing.T) {
	var interfaces []Interface
	for i := 0; i < 32; i++ {
		interfaces = append(interfaces, Interface{
			Name:   fmt.Sprintf("if%d", i),
			Status: StatusUp,
			Addresses: []AddressEntry{
				v4(fmt.Sprintf("127.%d.0.1", i)),
				v4(fmt.Sprintf("169.254.%d.7", i)),
			},
		})
	}

	m, err := Enumerate(context.Background(), staticSource{interfaces: interfaces})
	require.NoError(t, err)
	assert.Zero(t, m.Len())
}

func TestEnumerateIsIdempotent(t *testing.T) {
	src := staticSource{interfaces: []Interface{
		{Name: "en0", Status: StatusUp, Addresses: []AddressEntry{v4("10.0.0.42"), v4("10.0.0.43")}},
		{Name: "en1", Status: StatusUp, Addresses: []AddressEntry{v4("192.168.5.5")}},
	}}

	first, err := Enumerate(context.Background(), src)
	require.NoError(t, err)
	second, err := Enumerate(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, entries(first), entries(second))
	assert.Equal(t, [][2]string{{"en0", "10.0.0.42"}, {"en1", "192.168.5.5"}}, entries(first))
}

func TestEnumerateSourceUnavailable(t *testing.T) {
	m, err := Enumerate(context.Background(), staticSource{err: errors.New("not supported")})
	require.Error(t, err)
	require.NotNil(t, m)
	assert.Zero(t, m.Len())
}

func TestAddressMapFirstWins(t *testing.T) {
	m := NewAddressMap()
	assert.True(t, m.Add("eth0", "192.168.1.15"))
	assert.False(t, m.Add("eth0", "192.168.1.99"))

	assert.Equal(t, [][2]string{{"eth0", "192.168.1.15"}}, entries(m))
	assert.Equal(t, 1, m.Len())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		m           *AddressMap
		wantAddress string
		wantRange   string
		wantOK      bool
	}{
		{
			name: "empty map",
			m:    NewAddressMap(),
		},
		{
			name:        "loopback entry is skipped",
			m:           mapOf("eth0", "127.0.0.1", "eth1", "192.168.1.15"),
			wantAddress: "192.168.1.15",
			wantRange:   "192.168.1.0/24",
			wantOK:      true,
		},
		{
			name:        "first eligible wins",
			m:           mapOf("en0", "10.0.0.42", "en1", "192.168.1.15"),
			wantAddress: "10.0.0.42",
			wantRange:   "10.0.0.0/24",
			wantOK:      true,
		},
		{
			name:        "malformed entry is skipped",
			m:           mapOf("utun0", "not-an-ip", "en0", "172.20.1.9"),
			wantAddress: "172.20.1.9",
			wantRange:   "172.20.1.0/24",
			wantOK:      true,
		},
		{
			name: "only loopback",
			m:    mapOf("lo", "127.0.0.1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, networkRange, ok := Resolve(tt.m)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAddress, address)
			assert.Equal(t, tt.wantRange, networkRange)
		})
	}
}

func TestResolvePreferring(t *testing.T) {
	m := mapOf("docker0", "172.17.0.1", "en0", "10.0.0.42")

	address, networkRange, ok := ResolvePreferring(m, net.ParseIP("10.0.0.42"))
	require.True(t, ok)
	assert.Equal(t, "10.0.0.42", address)
	assert.Equal(t, "10.0.0.0/24", networkRange)

	// unknown or missing preference falls back to first match
	address, _, ok = ResolvePreferring(m, net.ParseIP("192.168.9.9"))
	require.True(t, ok)
	assert.Equal(t, "172.17.0.1", address)

	address, _, ok = ResolvePreferring(m, nil)
	require.True(t, ok)
	assert.Equal(t, "172.17.0.1", address)
}

func TestParseAddressEntry(t *testing.T) {
	tests := []struct {
		raw  string
		want AddressEntry
	}{
		{raw: "192.168.1.5/24", want: v4("192.168.1.5")},
		{raw: "10.0.0.1", want: v4("10.0.0.1")},
		{raw: "fe80::1/64", want: v6("fe80::1")},
		{raw: "fe80::1%en0/64", want: v6("fe80::1")},
		{raw: "::ffff:10.0.0.1/128", want: v6("::ffff:10.0.0.1")},
		{raw: "garbage", want: AddressEntry{Family: FamilyAbsent, Address: "garbage"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAddressEntry(tt.raw))
		})
	}
}

func TestStatusFromFlags(t *testing.T) {
	assert.Equal(t, StatusUp, statusFromFlags([]string{"up", "broadcast", "multicast"}))
	assert.Equal(t, StatusDown, statusFromFlags([]string{"broadcast"}))
	assert.Equal(t, StatusUnknown, statusFromFlags(nil))
}

func TestRangeSize(t *testing.T) {
	size, err := RangeSize("192.168.1.0/24")
	require.NoError(t, err)
	assert.Equal(t, uint64(256), size)
}
