package system

import (
	"net"
	"strings"
)

// ControlURL is the address a phone on the same network should open to reach
// the control UI. It prefers the first non-loopback IPv4 address and falls
// back to localhost.
func ControlURL(listenAddr string) string {
	return controlURL(listenAddr, primaryIPv4())
}

func controlURL(listenAddr, hostIP string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		host, port = "", "80"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = hostIP
	}
	if host == "" {
		host = "localhost"
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port == "80" {
		return "http://" + host + "/"
	}
	return "http://" + host + ":" + port + "/"
}

func primaryIPv4() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return ""
}
