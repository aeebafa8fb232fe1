package main

import (
	"net"
)

// clientServerURL turns a listen address such as ":8080" into a URL the
// local CLI can dial.
func clientServerURL(address string) string {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "http://" + address
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
