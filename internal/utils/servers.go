package utils

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	// LocalhostAddr contains the default interface address
	LocalhostAddr = "0.0.0.0"
)

type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// NewRouter mounts every route under the given prefix.
func NewRouter(prefixPath string, routes []Route) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	for _, route := range routes {
		router.
			Methods(route.Method).
			Path(prefixPath + route.Pattern).
			Name(route.Name).
			Handler(route.HandlerFunc)
	}

	return router
}

// StartServer starts a server on the default interface and the specified
// port, serving the routes passed with a specified prefix.
func StartServer(serviceName string, port int, prefixPath string, routes []Route) {
	r := NewRouter(prefixPath, routes)

	listenAddrPort := LocalhostAddr + ":" + strconv.Itoa(port)

	log.Infof("%s server listening at %s...", serviceName, listenAddrPort)
	log.Panic(http.ListenAndServe(listenAddrPort, r))
}
