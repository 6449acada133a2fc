package utils

import (
	"net/http"
	"strconv"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
)

type GenericClient struct {
	hostPort string
	Client   *http.Client
}

func NewGenericClient(hostPort string) *GenericClient {
	return &GenericClient{
		hostPort: hostPort,
		Client:   &http.Client{Timeout: defaultTimeout},
	}
}

func (c *GenericClient) GetHostPort() string {
	return c.hostPort
}

func (c *GenericClient) SetHostPort(addr string, port int) {
	c.hostPort = addr + ":" + strconv.Itoa(port)
}
