package core

import "github.com/baobuildbuddy/baostack/internal/readiness"

// Endpoints are the addresses of the two services once they are ready.
type Endpoints struct {
	Host       string
	ServerPort uint16
	ClientPort uint16
}

// ServerURL returns the backend base URL.
func (e Endpoints) ServerURL() string {
	return "http://" + readiness.Address(e.Host, e.ServerPort)
}

// ClientURL returns the UI base URL.
func (e Endpoints) ClientURL() string {
	return "http://" + readiness.Address(e.Host, e.ClientPort)
}

func (e Endpoints) String() string {
	return "server on " + e.ServerURL() + ", ui on " + e.ClientURL()
}
