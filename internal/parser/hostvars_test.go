package parser

import (
	"reflect"
	"testing"

	"github.com/deepthought-solutions/structurizr-inventory/pkg/structurizr"
)

func newTestParser(opts Options) *Parser {
	return New(&opts, newRecorder())
}

func TestHostIdentifierName(t *testing.T) {
	p := newTestParser(DefaultOptions())

	node := &structurizr.DeploymentNode{Id: "123", Name: "web-server-01"}
	if got := p.hostIdentifier(node); got != "web-server-01" {
		t.Errorf("got %q, want web-server-01", got)
	}
}

func TestHostIdentifierId(t *testing.T) {
	opts := DefaultOptions()
	opts.HostIdentifier = "id"
	p := newTestParser(opts)

	node := &structurizr.DeploymentNode{Id: "123", Name: "web-server-01"}
	if got := p.hostIdentifier(node); got != "123" {
		t.Errorf("got %q, want 123", got)
	}

	// Absent id falls back to the name.
	node = &structurizr.DeploymentNode{Name: "web-server-01"}
	if got := p.hostIdentifier(node); got != "web-server-01" {
		t.Errorf("got %q, want web-server-01", got)
	}
}

func TestHostIdentifierProperty(t *testing.T) {
	opts := DefaultOptions()
	opts.HostIdentifier = "fqdn"
	p := newTestParser(opts)

	node := &structurizr.DeploymentNode{
		Id:         "123",
		Name:       "x",
		Properties: structurizr.Properties{"fqdn": "x.example.com"},
	}
	if got := p.hostIdentifier(node); got != "x.example.com" {
		t.Errorf("got %q, want x.example.com", got)
	}
}

func TestHostIdentifierPropertyFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.HostIdentifier = "fqdn"
	p := newTestParser(opts)

	node := &structurizr.DeploymentNode{Id: "123", Name: "x", Properties: structurizr.Properties{}}
	if got := p.hostIdentifier(node); got != "x" {
		t.Errorf("got %q, want x", got)
	}
}

func TestHostVars(t *testing.T) {
	p := newTestParser(DefaultOptions())

	node := &structurizr.DeploymentNode{
		Id:          "111",
		Name:        "web-prod-01",
		Description: "Primary web server",
		Technology:  "Ubuntu 22.04",
		Tags:        "Element,Deployment Node,Web",
		Properties: structurizr.Properties{
			"ansible_host":  "10.0.1.10",
			"ansible_user":  "ubuntu",
			"instance_type": "t3.large",
		},
	}

	vars := p.hostVars(node, "Production", []string{"EU-West"})

	if vars["structurizr_id"] != "111" {
		t.Errorf("structurizr_id = %v", vars["structurizr_id"])
	}
	if vars["structurizr_name"] != "web-prod-01" {
		t.Errorf("structurizr_name = %v", vars["structurizr_name"])
	}
	if vars["structurizr_description"] != "Primary web server" {
		t.Errorf("structurizr_description = %v", vars["structurizr_description"])
	}
	if vars["technology"] != "Ubuntu 22.04" {
		t.Errorf("technology = %v", vars["technology"])
	}

	wantTags := []string{"Element", "Deployment Node", "Web"}
	if !reflect.DeepEqual(vars["structurizr_tags"], wantTags) {
		t.Errorf("structurizr_tags = %v, want %v", vars["structurizr_tags"], wantTags)
	}

	if vars["structurizr_environment"] != "Production" {
		t.Errorf("structurizr_environment = %v", vars["structurizr_environment"])
	}

	wantHierarchy := []string{"EU-West"}
	if !reflect.DeepEqual(vars["structurizr_hierarchy"], wantHierarchy) {
		t.Errorf("structurizr_hierarchy = %v, want %v", vars["structurizr_hierarchy"], wantHierarchy)
	}

	if vars["ansible_host"] != "10.0.1.10" || vars["ansible_user"] != "ubuntu" {
		t.Error("ansible_* properties must pass through verbatim")
	}
	if vars["instance_type"] != "t3.large" {
		t.Errorf("instance_type = %v", vars["instance_type"])
	}
}

func TestHostVarsOmitsAbsentOptionalFields(t *testing.T) {
	p := newTestParser(DefaultOptions())

	node := &structurizr.DeploymentNode{Id: "1", Name: "bare"}
	vars := p.hostVars(node, "", nil)

	for _, key := range []string{"structurizr_description", "technology", "structurizr_tags",
		"structurizr_environment", "structurizr_hierarchy"} {
		if _, ok := vars[key]; ok {
			t.Errorf("%s should be absent for a bare node", key)
		}
	}
}

func TestHostVarsWithPrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.PropertyPrefix = "structurizr_"
	p := newTestParser(opts)

	node := &structurizr.DeploymentNode{
		Id:   "111",
		Name: "web-prod-01",
		Properties: structurizr.Properties{
			"ansible_host": "10.0.1.10",
			"custom_var":   "custom_value",
		},
	}

	vars := p.hostVars(node, "", nil)

	if vars["ansible_host"] != "10.0.1.10" {
		t.Errorf("ansible_host should not be prefixed, got %v", vars["ansible_host"])
	}
	if vars["structurizr_custom_var"] != "custom_value" {
		t.Errorf("custom_var should be prefixed, got vars %v", vars)
	}
	if _, ok := vars["custom_var"]; ok {
		t.Error("unprefixed custom_var should not be set")
	}
}

func TestHostVarsPassthroughList(t *testing.T) {
	opts := DefaultOptions()
	opts.PropertyPrefix = "structurizr_"
	opts.AnsiblePropertyPassthrough = []string{"fqdn"}
	p := newTestParser(opts)

	node := &structurizr.DeploymentNode{
		Id:   "1",
		Name: "web01",
		Properties: structurizr.Properties{
			"fqdn":  "web01.example.com",
			"other": "value",
		},
	}

	vars := p.hostVars(node, "", nil)

	if vars["fqdn"] != "web01.example.com" {
		t.Errorf("allow-listed property should pass through, got %v", vars)
	}
	if vars["structurizr_other"] != "value" {
		t.Errorf("other property should be prefixed, got %v", vars)
	}
}

func TestForceHostCaseInsensitive(t *testing.T) {
	p := newTestParser(DefaultOptions())

	for _, value := range []string{"true", "TRUE", "True"} {
		node := &structurizr.DeploymentNode{
			Name:       "dc",
			Properties: structurizr.Properties{"ansible_force_host": value},
		}

		if !p.forceHost(node) {
			t.Errorf("force host should trigger for value %q", value)
		}
	}

	node := &structurizr.DeploymentNode{
		Name:       "dc",
		Properties: structurizr.Properties{"ansible_force_host": "yes"},
	}
	if p.forceHost(node) {
		t.Error("force host should not trigger for value \"yes\"")
	}
}

func TestAddHostEmptyIdentifierSkipped(t *testing.T) {
	rec := newRecorder()
	opts := DefaultOptions()
	p := New(&opts, rec)

	p.addHost(&structurizr.DeploymentNode{Id: "9"}, "Production", nil, nil)

	if len(rec.hosts) != 0 {
		t.Errorf("node with empty identifier produced hosts %v", rec.hosts)
	}
	if len(rec.groups) != 0 || len(rec.variables) != 0 {
		t.Error("skipped node must have no side effects")
	}
}

func TestAddHostStructuralTagsNotGrouped(t *testing.T) {
	rec := newRecorder()
	opts := DefaultOptions()
	opts.GroupByTechnology = true
	p := New(&opts, rec)

	node := &structurizr.DeploymentNode{
		Id:         "3",
		Name:       "web01",
		Technology: "Ubuntu 22.04",
		Tags:       "Element,Deployment Node,Web",
	}

	p.addHost(node, "", nil, nil)

	if !rec.inGroup("tag_web", "web01") {
		t.Error("web01 should be in tag_web")
	}
	if !rec.inGroup("tech_ubuntu_22_04", "web01") {
		t.Error("web01 should be in tech_ubuntu_22_04")
	}

	for group := range rec.children {
		if group == "tag_element" || group == "tag_deployment_node" {
			t.Errorf("structural tag produced group %s", group)
		}
	}
}

func TestAddHostSelfReferentialGroupSkipped(t *testing.T) {
	rec := newRecorder()
	opts := DefaultOptions()
	p := New(&opts, rec)

	node := &structurizr.DeploymentNode{Id: "1", Name: "server_01"}
	p.addHost(node, "", []string{"server_01"}, []string{"server_01"})

	if rec.inGroup("server_01", "server_01") {
		t.Error("host must never be a member of a group sharing its name")
	}
}
