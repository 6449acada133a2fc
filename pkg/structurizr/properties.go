package structurizr

import (
	json "github.com/goccy/go-json"
)

// Properties is the canonical property mapping of a node. Structurizr
// exports encode properties either as an ordered list of name/value
// pairs or as a plain string mapping; both decode into this type.
// Unrecognized shapes degrade to an empty mapping, never an error.
type Properties map[string]string

type propertyPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	var pairs []propertyPair
	if err := json.Unmarshal(data, &pairs); err == nil {
		props := make(Properties, len(pairs))
		// Duplicate names in the list format resolve to last write wins.
		for _, pair := range pairs {
			props[pair.Name] = pair.Value
		}

		*p = props

		return nil
	}

	var direct map[string]string
	if err := json.Unmarshal(data, &direct); err == nil {
		*p = direct

		return nil
	}

	*p = Properties{}

	return nil
}
