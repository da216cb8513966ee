//go:build !linux

package udp

import (
	"net"
)

func SetDSCP(conn *net.UDPConn, dscp uint8) error {
	if dscp > DSCPMax {
		return errInvalidDSCP
	}
	return errUnsupportedOperation
}
