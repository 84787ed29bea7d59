package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a Server accepts connections on, plain or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network server with a blocking Start and a graceful Stop.
// Start returns nil after Stop has been called.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
