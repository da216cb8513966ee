package udp

import (
	"net"

	"golang.org/x/sys/unix"
)

// SetDSCP marks packets sent on conn with the Differentiated Services
// Codepoint dscp, for IPv4 and IPv6 alike.
func SetDSCP(conn *net.UDPConn, dscp uint8) error {
	if dscp > DSCPMax {
		return errInvalidDSCP
	}
	sconn, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var res struct {
		err error
	}
	err = sconn.Control(func(fd uintptr) {
		tos := int(dscp << 2)
		err4 := unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_TOS, tos)
		err6 := unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_TCLASS, tos)
		if err4 != nil && err6 != nil {
			res.err = err4
		}
	})
	if err != nil {
		return err
	}
	return res.err
}
