package parser

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/deepthought-solutions/structurizr-inventory/internal/constructed"
	"github.com/deepthought-solutions/structurizr-inventory/pkg/inventory"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Plugin tokens accepted in the config document.
const (
	PluginName      = "deepthought_solutions.structurizr_inventory.structurizr"
	PluginShortName = "structurizr"
)

const (
	defaultHostIdentifier = "name"
	defaultCacheDirName   = "structurizr-inventory"
)

// Options is the full configuration surface of a parse.
type Options struct {
	Plugin      string `mapstructure:"plugin"`
	Source      string `mapstructure:"source"`
	Environment string `mapstructure:"environment"`

	IncludeInfrastructureNodes     bool `mapstructure:"include_infrastructure_nodes"`
	IncludeSoftwareSystemInstances bool `mapstructure:"include_software_system_instances"`
	IncludeContainerInstances      bool `mapstructure:"include_container_instances"`

	GroupByEnvironment bool `mapstructure:"group_by_environment"`
	GroupByTags        bool `mapstructure:"group_by_tags"`
	GroupByTechnology  bool `mapstructure:"group_by_technology"`
	GroupByHierarchy   bool `mapstructure:"group_by_hierarchy"`

	HostIdentifier             string   `mapstructure:"host_identifier"`
	PropertyPrefix             string   `mapstructure:"property_prefix"`
	AnsiblePropertyPassthrough []string `mapstructure:"ansible_property_passthrough"`

	Cache    bool   `mapstructure:"cache"`
	CacheDir string `mapstructure:"cache_dir"`
	// CacheTTL is in seconds; 0 disables expiry.
	CacheTTL int `mapstructure:"cache_ttl"`

	Strict      bool                     `mapstructure:"strict"`
	Compose     map[string]string        `mapstructure:"compose"`
	Groups      map[string]string        `mapstructure:"groups"`
	KeyedGroups []constructed.KeyedGroup `mapstructure:"keyed_groups"`

	ServePort int `mapstructure:"serve_port"`

	// ConfigPath is the path of the loaded config document; it anchors
	// relative sources and the cache key.
	ConfigPath string `mapstructure:"-"`
}

func DefaultOptions() Options {
	return Options{
		IncludeInfrastructureNodes: true,
		GroupByEnvironment:         true,
		GroupByTags:                true,
		GroupByHierarchy:           true,
		HostIdentifier:             defaultHostIdentifier,
		ServePort:                  inventory.Port,
	}
}

// LoadOptions reads and validates a YAML config document.
func LoadOptions(path string) (*Options, error) {
	if !strings.HasSuffix(path, ".yml") && !strings.HasSuffix(path, ".yaml") {
		return nil, errors.Errorf("%s is not a yaml inventory config file", path)
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read inventory config file")
	}

	raw := map[string]interface{}{}

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, errors.Wrap(err, "invalid yaml in inventory config file")
	}

	opts := DefaultOptions()

	err = mapstructure.Decode(raw, &opts)
	if err != nil {
		return nil, errors.Wrap(err, "invalid inventory config")
	}

	if opts.Plugin != PluginName && opts.Plugin != PluginShortName {
		return nil, errors.Errorf("config file is not for the %s plugin", PluginShortName)
	}

	if opts.Source == "" {
		return nil, errors.New("'source' option is required")
	}

	opts.ConfigPath = path
	opts.Source = resolveSource(path, opts.Source)

	return &opts, nil
}

func defaultCacheDir() string {
	return filepath.Join(os.TempDir(), defaultCacheDirName)
}

// resolveSource anchors relative file sources at the config file
// location, the way the orchestration tool resolves inventory paths.
func resolveSource(configPath, source string) string {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return source
	}

	if filepath.IsAbs(source) {
		return source
	}

	return filepath.Join(filepath.Dir(configPath), source)
}
