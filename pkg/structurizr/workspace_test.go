package structurizr

import (
	"reflect"
	"testing"
)

func TestDecodePropertiesListFormat(t *testing.T) {
	data := []byte(`{
		"model": {
			"deploymentNodes": [
				{
					"id": "1",
					"name": "server",
					"properties": [
						{"name": "fqdn", "value": "server.example.com"},
						{"name": "ansible_user", "value": "ubuntu"}
					]
				}
			]
		}
	}`)

	workspace, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	node := workspace.Model.DeploymentNodes[0]
	want := Properties{"fqdn": "server.example.com", "ansible_user": "ubuntu"}

	if !reflect.DeepEqual(node.Properties, want) {
		t.Errorf("got properties %v, want %v", node.Properties, want)
	}
}

func TestDecodePropertiesDirectMapping(t *testing.T) {
	data := []byte(`{
		"model": {
			"deploymentNodes": [
				{
					"id": "1",
					"name": "server",
					"properties": {"fqdn": "server.example.com", "ansible_user": "ubuntu"}
				}
			]
		}
	}`)

	workspace, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	node := workspace.Model.DeploymentNodes[0]
	want := Properties{"fqdn": "server.example.com", "ansible_user": "ubuntu"}

	if !reflect.DeepEqual(node.Properties, want) {
		t.Errorf("got properties %v, want %v", node.Properties, want)
	}
}

func TestDecodePropertiesBothFormatsMatch(t *testing.T) {
	listForm := []byte(`{"model": {"deploymentNodes": [
		{"name": "a", "properties": [{"name": "k1", "value": "v1"}, {"name": "k2", "value": "v2"}]}
	]}}`)
	mapForm := []byte(`{"model": {"deploymentNodes": [
		{"name": "a", "properties": {"k1": "v1", "k2": "v2"}}
	]}}`)

	fromList, err := Decode(listForm)
	if err != nil {
		t.Fatalf("decode list form: %v", err)
	}

	fromMap, err := Decode(mapForm)
	if err != nil {
		t.Fatalf("decode map form: %v", err)
	}

	got := fromList.Model.DeploymentNodes[0].Properties
	want := fromMap.Model.DeploymentNodes[0].Properties

	if !reflect.DeepEqual(got, want) {
		t.Errorf("list form produced %v, map form produced %v", got, want)
	}
}

func TestDecodePropertiesDegradation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"absent", `{"name": "a"}`},
		{"empty list", `{"name": "a", "properties": []}`},
		{"empty mapping", `{"name": "a", "properties": {}}`},
		{"unexpected shape", `{"name": "a", "properties": "nope"}`},
		{"unexpected number", `{"name": "a", "properties": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`{"model": {"deploymentNodes": [` + tt.data + `]}}`)

			workspace, err := Decode(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			props := workspace.Model.DeploymentNodes[0].Properties
			if len(props) != 0 {
				t.Errorf("got %v, want empty properties", props)
			}
		})
	}
}

func TestDecodePropertiesListDuplicatesLastWriteWins(t *testing.T) {
	data := []byte(`{"model": {"deploymentNodes": [
		{"name": "a", "properties": [{"name": "k", "value": "first"}, {"name": "k", "value": "second"}]}
	]}}`)

	workspace, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := workspace.Model.DeploymentNodes[0].Properties["k"]
	if got != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`not valid json {`))
	if err == nil {
		t.Fatal("expected an error decoding invalid json")
	}
}

func TestSplitTags(t *testing.T) {
	node := &DeploymentNode{Tags: "Element, Deployment Node ,Web"}

	want := []string{"Element", "Deployment Node", "Web"}
	if !reflect.DeepEqual(node.SplitTags(), want) {
		t.Errorf("got %v, want %v", node.SplitTags(), want)
	}
}

func TestSplitTagsEmpty(t *testing.T) {
	node := &DeploymentNode{}

	if tags := node.SplitTags(); tags != nil {
		t.Errorf("got %v, want nil", tags)
	}
}

func TestIsLeaf(t *testing.T) {
	leaf := &DeploymentNode{Name: "server"}
	parent := &DeploymentNode{Name: "datacenter", Children: []*DeploymentNode{leaf}}

	if !leaf.IsLeaf() {
		t.Error("node without children should be a leaf")
	}

	if parent.IsLeaf() {
		t.Error("node with children should not be a leaf")
	}
}
