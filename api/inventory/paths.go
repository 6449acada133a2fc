package inventory

import (
	"fmt"
)

// Paths
const (
	PrefixPath = "/inventory"

	ListPath    = ""
	HostPath    = "/hosts/%s"
	RefreshPath = "/refresh"
)

func GetListPath() string {
	return PrefixPath + ListPath
}

func GetHostPath(hostname string) string {
	return PrefixPath + fmt.Sprintf(HostPath, hostname)
}

func GetRefreshPath() string {
	return PrefixPath + RefreshPath
}
