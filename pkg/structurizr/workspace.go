package structurizr

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Workspace is the root of a Structurizr JSON export. Only the model
// section is relevant for inventory purposes.
type Workspace struct {
	Name  string `json:"name,omitempty"`
	Model Model  `json:"model"`
}

type Model struct {
	DeploymentNodes []*DeploymentNode `json:"deploymentNodes,omitempty"`
}

// DeploymentNode covers every node shape in the deployment view.
// Infrastructure nodes and instances share the same fields minus the
// recursive children, so they reuse this type with Children left empty.
type DeploymentNode struct {
	Id          string     `json:"id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Environment string     `json:"environment,omitempty"`
	Description string     `json:"description,omitempty"`
	Technology  string     `json:"technology,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	Properties  Properties `json:"properties,omitempty"`

	Children                []*DeploymentNode `json:"children,omitempty"`
	InfrastructureNodes     []*DeploymentNode `json:"infrastructureNodes,omitempty"`
	SoftwareSystemInstances []*DeploymentNode `json:"softwareSystemInstances,omitempty"`
	ContainerInstances      []*DeploymentNode `json:"containerInstances,omitempty"`
}

// IsLeaf reports whether the node has no child deployment nodes.
func (n *DeploymentNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// SplitTags splits the comma separated tag string, trimming each entry.
// Order is preserved. Returns nil when the node carries no tags.
func (n *DeploymentNode) SplitTags() []string {
	if n.Tags == "" {
		return nil
	}

	parts := strings.Split(n.Tags, ",")
	tags := make([]string, 0, len(parts))

	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}

	return tags
}

// Decode parses a raw workspace export.
func Decode(data []byte) (*Workspace, error) {
	workspace := &Workspace{}

	err := json.Unmarshal(data, workspace)
	if err != nil {
		return nil, errors.Wrap(err, "invalid structurizr workspace json")
	}

	return workspace, nil
}
