package netif

import (
	"net"

	"github.com/jackpal/gateway"
)

// RouteProbe reports the local address of the interface carrying the default route
type RouteProbe interface {
	DefaultInterfaceIP() (net.IP, error)
}

// GatewayProbe queries the OS routing table through jackpal/gateway
type GatewayProbe struct{}

func (GatewayProbe) DefaultInterfaceIP() (net.IP, error) {
	return gateway.DiscoverInterface()
}
