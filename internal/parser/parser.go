package parser

import (
	"time"

	"github.com/deepthought-solutions/structurizr-inventory/internal/cache"
	"github.com/deepthought-solutions/structurizr-inventory/internal/constructed"
	"github.com/deepthought-solutions/structurizr-inventory/internal/source"
	"github.com/deepthought-solutions/structurizr-inventory/pkg/inventory"
	"github.com/deepthought-solutions/structurizr-inventory/pkg/structurizr"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type workspaceReader interface {
	Read(source string) ([]byte, error)
}

type workspaceCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, data []byte) error
}

// varReader is satisfied by stores that can hand variables back for
// the constructed post-pass.
type varReader interface {
	HostVars(host string) (map[string]interface{}, bool)
}

// Parser turns a Structurizr workspace export into inventory hosts and
// groups, writing every effect into the given store.
type Parser struct {
	opts  *Options
	store inventory.Store

	reader workspaceReader
	cache  workspaceCache

	passthrough map[string]bool
	hosts       []string
}

func New(opts *Options, store inventory.Store) *Parser {
	passthrough := make(map[string]bool, len(opts.AnsiblePropertyPassthrough))
	for _, name := range opts.AnsiblePropertyPassthrough {
		passthrough[name] = true
	}

	p := &Parser{
		opts:        opts,
		store:       store,
		reader:      source.NewReader(),
		passthrough: passthrough,
	}

	if opts.Cache {
		cacheDir := opts.CacheDir
		if cacheDir == "" {
			cacheDir = defaultCacheDir()
		}

		p.cache = cache.New(cacheDir, time.Duration(opts.CacheTTL)*time.Second)
	}

	return p
}

// Parse performs one full run: cache lookup, source read, tree walk
// and the constructed post-pass. All fatal conditions surface as a
// single wrapped parser error; optional-field degradation never fails.
func (p *Parser) Parse() error {
	if p.opts.Source == "" {
		return errors.New("'source' option is required")
	}

	workspace, err := p.loadWorkspace()
	if err != nil {
		return err
	}

	p.hosts = nil
	p.parseWorkspace(workspace)

	log.Infof("parsed %d hosts from %s", len(p.hosts), p.opts.Source)

	return p.applyConstructed()
}

// Hosts returns the hosts materialized by the last Parse, in the order
// they were produced.
func (p *Parser) Hosts() []string {
	hosts := make([]string, len(p.hosts))
	copy(hosts, p.hosts)

	return hosts
}

func (p *Parser) loadWorkspace() (*structurizr.Workspace, error) {
	cacheKey := cache.Key(p.opts.ConfigPath, p.opts.Source)

	if p.cache != nil {
		if data, ok := p.cache.Get(cacheKey); ok {
			workspace, err := structurizr.Decode(data)
			if err == nil {
				return workspace, nil
			}

			log.Warnf("discarding corrupt cache entry: %v", err)
		}
	}

	data, err := p.reader.Read(p.opts.Source)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		err = p.cache.Put(cacheKey, data)
		if err != nil {
			log.Warn(err)
		}
	}

	return structurizr.Decode(data)
}

func (p *Parser) applyConstructed() error {
	reader, ok := p.store.(varReader)
	if !ok {
		return nil
	}

	settings := constructed.Settings{
		Compose:     p.opts.Compose,
		Groups:      p.opts.Groups,
		KeyedGroups: p.opts.KeyedGroups,
		Strict:      p.opts.Strict,
	}

	return constructed.Apply(settings, p.store, reader.HostVars, p.hosts)
}
