package preview

import (
	"fmt"
	"io"
	"net"

	"github.com/mdp/qrterminal/v3"
)

// URLs are the addresses a preview is reachable at.
type URLs struct {
	Local   string
	Network string
}

// DiscoverURLs returns the local and LAN URLs for port. Network falls back to
// localhost when no external IPv4 interface is up.
func DiscoverURLs(port int) URLs {
	host := "localhost"
	if ip := externalIPv4(interfaceAddrs()); ip != "" {
		host = ip
	}
	return URLs{
		Local:   fmt.Sprintf("http://localhost:%d", port),
		Network: fmt.Sprintf("http://%s:%d", host, port),
	}
}

func interfaceAddrs() []net.Addr {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	var addrs []net.Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		a, err := iface.Addrs()
		if err != nil {
			continue
		}
		addrs = append(addrs, a...)
	}
	return addrs
}

// externalIPv4 returns the first non-loopback IPv4 address in addrs.
func externalIPv4(addrs []net.Addr) string {
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil || ip.IsLoopback() {
			continue
		}
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return ""
}

// WriteQR renders url as a terminal QR code.
func WriteQR(w io.Writer, url string) {
	qrterminal.GenerateHalfBlock(url, qrterminal.L, w)
}
