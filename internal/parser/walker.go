package parser

import (
	"strings"

	"github.com/deepthought-solutions/structurizr-inventory/pkg/inventory"
	"github.com/deepthought-solutions/structurizr-inventory/pkg/structurizr"
	log "github.com/sirupsen/logrus"
)

// walkDeploymentNode recursively visits a deployment node. Context is
// passed by value at every call: the environment label is fixed for
// the whole subtree, hierarchy holds the ancestor node names and
// parentGroups the sanitized ancestor hierarchy groups.
func (p *Parser) walkDeploymentNode(node *structurizr.DeploymentNode, environment string, hierarchy, parentGroups []string) {
	currentHierarchy := appendCopy(hierarchy, node.Name)
	currentGroup := inventory.SanitizeGroupName(strings.Join(currentHierarchy, "_"))

	if !node.IsLeaf() && p.opts.GroupByHierarchy && currentGroup != "" {
		p.store.AddGroup(currentGroup)

		for _, parentGroup := range parentGroups {
			if parentGroup == currentGroup {
				continue
			}

			p.store.AddChild(parentGroup, currentGroup)
		}
	}

	newParentGroups := parentGroups
	if currentGroup != "" {
		newParentGroups = appendCopy(parentGroups, currentGroup)
	}

	for _, child := range node.Children {
		p.walkDeploymentNode(child, environment, currentHierarchy, newParentGroups)
	}

	if node.IsLeaf() || p.forceHost(node) {
		p.addHost(node, environment, currentHierarchy, newParentGroups)
	}

	// Instance nodes hang off the current level; they do not spawn
	// hierarchy groups of their own.
	if p.opts.IncludeInfrastructureNodes {
		for _, infraNode := range node.InfrastructureNodes {
			p.addHost(infraNode, environment, currentHierarchy, newParentGroups)
		}
	}

	if p.opts.IncludeSoftwareSystemInstances {
		for _, instance := range node.SoftwareSystemInstances {
			p.addHost(instance, environment, currentHierarchy, newParentGroups)
		}
	}

	if p.opts.IncludeContainerInstances {
		for _, instance := range node.ContainerInstances {
			p.addHost(instance, environment, currentHierarchy, newParentGroups)
		}
	}
}

// parseWorkspace dispatches the top level deployment nodes. Each one
// represents an environment; its children are the entities to walk. A
// top level node without children is walked itself, so single-level
// models still yield a host.
func (p *Parser) parseWorkspace(workspace *structurizr.Workspace) {
	for _, envNode := range workspace.Model.DeploymentNodes {
		envName := envNode.Environment
		if envName == "" {
			envName = envNode.Name
		}

		if p.opts.Environment != "" && envName != p.opts.Environment {
			log.Debugf("skipping environment %s", envName)

			continue
		}

		if envNode.IsLeaf() {
			p.walkDeploymentNode(envNode, envName, nil, nil)

			continue
		}

		for _, node := range envNode.Children {
			p.walkDeploymentNode(node, envName, nil, nil)
		}
	}
}

func appendCopy(slice []string, elem string) []string {
	extended := make([]string, 0, len(slice)+1)
	extended = append(extended, slice...)

	return append(extended, elem)
}
