package udp

import (
	"errors"
)

const (
	// DSCPMax is the largest valid Differentiated Services Codepoint.
	DSCPMax = 63
)

var (
	errInvalidDSCP          = errors.New("invalid DSCP value")
	errUnsupportedOperation = errors.New("unsupported operation")
)
