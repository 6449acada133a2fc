package server

import (
	"net/http"
	"sync"

	api "github.com/deepthought-solutions/structurizr-inventory/api/inventory"
	"github.com/deepthought-solutions/structurizr-inventory/internal/parser"
	"github.com/deepthought-solutions/structurizr-inventory/internal/utils"
	"github.com/deepthought-solutions/structurizr-inventory/pkg/inventory"
	log "github.com/sirupsen/logrus"
)

var (
	opts *parser.Options

	current     *inventory.Inventory
	currentLock sync.RWMutex
)

// InitHandlers builds the initial inventory from the given options.
// Must be called before serving Routes.
func InitHandlers(parserOpts *parser.Options) error {
	opts = parserOpts

	return refresh()
}

// refresh runs a full parse into a fresh inventory and swaps it in
// atomically, so readers never observe a half-built inventory.
func refresh() error {
	fresh := inventory.New()

	p := parser.New(opts, fresh)

	err := p.Parse()
	if err != nil {
		return err
	}

	currentLock.Lock()
	current = fresh
	currentLock.Unlock()

	return nil
}

func currentInventory() *inventory.Inventory {
	currentLock.RLock()
	defer currentLock.RUnlock()

	return current
}

func getInventoryHandler(w http.ResponseWriter, _ *http.Request) {
	utils.SendJSONReplyOK(w, currentInventory().ExportList())
}

func getHostHandler(w http.ResponseWriter, r *http.Request) {
	hostname := utils.ExtractPathVar(r, hostnamePathVar)

	vars, ok := currentInventory().HostVars(hostname)
	if !ok {
		log.Debugf("no host %s in inventory", hostname)
		utils.SendJSONReplyStatus(w, http.StatusNotFound, api.GetHostResponseBody{})

		return
	}

	utils.SendJSONReplyOK(w, vars)
}

func refreshHandler(w http.ResponseWriter, _ *http.Request) {
	err := refresh()
	if err != nil {
		log.Errorf("refresh failed: %v", err)
		utils.SendJSONReplyStatus(w, http.StatusInternalServerError, err.Error())

		return
	}

	reply := api.RefreshResponseBody{Hosts: len(currentInventory().Hosts())}
	utils.SendJSONReplyOK(w, reply)
}
