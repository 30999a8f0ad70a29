package netif

// AddressMap maps interface names to their chosen IPv4 address, keeping
// enumeration order. Each name holds at most one address.
type AddressMap struct {
	names     []string
	addresses map[string]string
}

// NewAddressMap creates an empty map
func NewAddressMap() *AddressMap {
	return &AddressMap{addresses: make(map[string]string)}
}

// Add records an address for name. The first address wins; later calls for
// the same name are ignored and return false.
func (m *AddressMap) Add(name, address string) bool {
	if _, exists := m.addresses[name]; exists {
		return false
	}
	m.names = append(m.names, name)
	m.addresses[name] = address
	return true
}

// Len returns the number of interfaces in the map
func (m *AddressMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Iterate calls fn for every entry in insertion order until fn returns false
func (m *AddressMap) Iterate(fn func(name, address string) bool) {
	if m == nil {
		return
	}
	for _, name := range m.names {
		if !fn(name, m.addresses[name]) {
			return
		}
	}
}
