package server

import (
	"fmt"
	"net/http"

	api "github.com/deepthought-solutions/structurizr-inventory/api/inventory"
	"github.com/deepthought-solutions/structurizr-inventory/internal/utils"
)

// Route names
const (
	getInventoryName = "GET_INVENTORY"
	getHostName      = "GET_HOST"
	refreshName      = "REFRESH"
)

// Path variables
const (
	hostnamePathVar = "hostname"
)

var (
	_hostnamePathVarFormatted = fmt.Sprintf(utils.PathVarFormat, hostnamePathVar)

	inventoryRoute = api.ListPath
	hostRoute      = fmt.Sprintf(api.HostPath, _hostnamePathVarFormatted)
	refreshRoute   = api.RefreshPath
)

var Routes = []utils.Route{
	{
		Name:        getInventoryName,
		Method:      http.MethodGet,
		Pattern:     inventoryRoute,
		HandlerFunc: getInventoryHandler,
	},

	{
		Name:        getHostName,
		Method:      http.MethodGet,
		Pattern:     hostRoute,
		HandlerFunc: getHostHandler,
	},

	{
		Name:        refreshName,
		Method:      http.MethodPost,
		Pattern:     refreshRoute,
		HandlerFunc: refreshHandler,
	},
}
