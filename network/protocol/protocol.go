// Package protocol names the transport a network client or listener binds
// to, independent of the address string itself.
package protocol

// NetworkProtocol identifies a dial/listen network as understood by the
// standard library's net package (tcp, udp, unix, ...).
type NetworkProtocol string

const (
	NetworkEmpty    NetworkProtocol = ""
	NetworkTCP      NetworkProtocol = "tcp"
	NetworkTCP4     NetworkProtocol = "tcp4"
	NetworkTCP6     NetworkProtocol = "tcp6"
	NetworkUDP      NetworkProtocol = "udp"
	NetworkUDP4     NetworkProtocol = "udp4"
	NetworkUDP6     NetworkProtocol = "udp6"
	NetworkIP       NetworkProtocol = "ip"
	NetworkIP4      NetworkProtocol = "ip4"
	NetworkIP6      NetworkProtocol = "ip6"
	NetworkUnix     NetworkProtocol = "unix"
	NetworkUnixGram NetworkProtocol = "unixgram"
)

var codes = map[NetworkProtocol]int{
	NetworkEmpty:    0,
	NetworkUnix:     1,
	NetworkTCP:      2,
	NetworkTCP4:     3,
	NetworkTCP6:     4,
	NetworkUDP:      5,
	NetworkUDP4:     6,
	NetworkUDP6:     7,
	NetworkIP:       8,
	NetworkIP4:      9,
	NetworkIP6:      10,
	NetworkUnixGram: 11,
}

// Code returns the dial/listen network name as used by net.Dial and net.Listen.
func (n NetworkProtocol) Code() string {
	return string(n)
}

// String is an alias of Code for display purposes.
func (n NetworkProtocol) String() string {
	return string(n)
}

// Int returns a stable small integer identifying the protocol, mainly for
// compact config encoding.
func (n NetworkProtocol) Int() int {
	return codes[n]
}

func (n NetworkProtocol) Int64() int64 {
	return int64(n.Int())
}

func (n NetworkProtocol) Uint() uint {
	return uint(n.Int())
}

// Parse maps a free-form network name onto a NetworkProtocol, defaulting to
// NetworkEmpty when it isn't recognized.
func Parse(s string) NetworkProtocol {
	switch NetworkProtocol(s) {
	case NetworkTCP, NetworkTCP4, NetworkTCP6, NetworkUDP, NetworkUDP4, NetworkUDP6,
		NetworkIP, NetworkIP4, NetworkIP6, NetworkUnix, NetworkUnixGram:
		return NetworkProtocol(s)
	default:
		return NetworkEmpty
	}
}
