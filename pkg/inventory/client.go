package inventory

import (
	"net/http"

	api "github.com/deepthought-solutions/structurizr-inventory/api/inventory"
	"github.com/deepthought-solutions/structurizr-inventory/internal/utils"
)

// Client talks to a running inventory server.
type Client struct {
	*utils.GenericClient
}

func NewClient(hostPort string) *Client {
	return &Client{
		GenericClient: utils.NewGenericClient(hostPort),
	}
}

// GetInventory fetches the full inventory in the `--list` shape.
func (c *Client) GetInventory() (list map[string]interface{}, status int) {
	path := api.GetListPath()
	req := utils.BuildRequest(http.MethodGet, c.GetHostPort(), path, nil)

	var resp api.GetInventoryResponseBody
	status = utils.DoRequest(c.Client, req, &resp)
	list = resp

	return
}

// GetHost fetches the variables of a single host.
func (c *Client) GetHost(hostname string) (vars map[string]interface{}, status int) {
	path := api.GetHostPath(hostname)
	req := utils.BuildRequest(http.MethodGet, c.GetHostPort(), path, nil)

	var resp api.GetHostResponseBody
	status = utils.DoRequest(c.Client, req, &resp)
	vars = resp

	return
}

// Refresh asks the server to re-read the workspace source. Returns the
// number of hosts in the rebuilt inventory.
func (c *Client) Refresh() (hosts int, status int) {
	path := api.GetRefreshPath()
	req := utils.BuildRequest(http.MethodPost, c.GetHostPort(), path, nil)

	var resp api.RefreshResponseBody
	status = utils.DoRequest(c.Client, req, &resp)
	hosts = resp.Hosts

	return
}
