package parser

import (
	"strings"

	"github.com/deepthought-solutions/structurizr-inventory/pkg/inventory"
	"github.com/deepthought-solutions/structurizr-inventory/pkg/structurizr"
	log "github.com/sirupsen/logrus"
)

const (
	// passthroughPrefix exempts matching property names from prefixing
	// regardless of the configured allow-list.
	passthroughPrefix = "ansible_"

	forceHostProperty = "ansible_force_host"
	forceHostValue    = "true"
)

const (
	envGroupPrefix  = "env_"
	tagGroupPrefix  = "tag_"
	techGroupPrefix = "tech_"
)

// Tags every element carries structurally; grouping on them would put
// the whole inventory into three giant groups.
var structuralTags = map[string]struct{}{
	"Element":             {},
	"Deployment Node":     {},
	"Infrastructure Node": {},
}

// hostIdentifier resolves the unique host key for a node. The mode is
// "id", "name" or a property name; unresolvable modes fall back to the
// node name. May return an empty string, which callers treat as "skip".
func (p *Parser) hostIdentifier(node *structurizr.DeploymentNode) string {
	switch p.opts.HostIdentifier {
	case "id":
		if node.Id != "" {
			return node.Id
		}

		return node.Name
	case "name":
		return node.Name
	default:
		if value, ok := node.Properties[p.opts.HostIdentifier]; ok {
			return value
		}

		return node.Name
	}
}

// hostVars derives the full variable mapping for a host.
func (p *Parser) hostVars(node *structurizr.DeploymentNode, environment string, hierarchy []string) map[string]interface{} {
	vars := map[string]interface{}{
		"structurizr_id":   node.Id,
		"structurizr_name": node.Name,
	}

	if node.Description != "" {
		vars["structurizr_description"] = node.Description
	}

	if node.Technology != "" {
		vars["technology"] = node.Technology
	}

	if node.Tags != "" {
		vars["structurizr_tags"] = node.SplitTags()
	}

	if environment != "" {
		vars["structurizr_environment"] = environment
	}

	if len(hierarchy) > 0 {
		vars["structurizr_hierarchy"] = hierarchy
	}

	for name, value := range node.Properties {
		if strings.HasPrefix(name, passthroughPrefix) || p.passthrough[name] {
			vars[name] = value
		} else {
			vars[p.opts.PropertyPrefix+name] = value
		}
	}

	return vars
}

// forceHost reports whether the node carries the force-host property.
// The value comparison is case-insensitive.
func (p *Parser) forceHost(node *structurizr.DeploymentNode) bool {
	value, ok := node.Properties[forceHostProperty]

	return ok && strings.EqualFold(value, forceHostValue)
}

// addHost materializes a single host: identifier, variables and every
// enabled grouping policy. Nodes whose identifier resolves empty are
// skipped with no side effects.
func (p *Parser) addHost(node *structurizr.DeploymentNode, environment string, hierarchy, parentGroups []string) {
	hostName := p.hostIdentifier(node)
	if hostName == "" {
		log.Debugf("skipping node %s: empty host identifier", node.Id)

		return
	}

	p.store.AddHost(hostName)
	p.hosts = append(p.hosts, hostName)

	for name, value := range p.hostVars(node, environment, hierarchy) {
		p.store.SetVariable(hostName, name, value)
	}

	if environment != "" && p.opts.GroupByEnvironment {
		envGroup := inventory.SanitizeGroupName(envGroupPrefix + environment)
		p.store.AddGroup(envGroup)
		p.store.AddChild(envGroup, hostName)
	}

	if p.opts.GroupByTags {
		for _, tag := range node.SplitTags() {
			if tag == "" {
				continue
			}

			if _, structural := structuralTags[tag]; structural {
				continue
			}

			tagGroup := inventory.SanitizeGroupName(tagGroupPrefix + tag)
			p.store.AddGroup(tagGroup)
			p.store.AddChild(tagGroup, hostName)
		}
	}

	if p.opts.GroupByTechnology && node.Technology != "" {
		techGroup := inventory.SanitizeGroupName(techGroupPrefix + node.Technology)
		p.store.AddGroup(techGroup)
		p.store.AddChild(techGroup, hostName)
	}

	if p.opts.GroupByHierarchy {
		for _, group := range parentGroups {
			// A host must never be a member of a group sharing its name.
			if group == hostName {
				continue
			}

			p.store.AddGroup(group)
			p.store.AddChild(group, hostName)
		}
	}
}
