package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the flow document schema.
const SchemaID = "https://github.com/aretw0/wayfinder/schemas/flow-v0.json"

// Generate produces a JSON Schema Draft 2020-12 document from FlowDocument.
func Generate() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&FlowDocument{})
	s.ID = SchemaID
	s.Title = "Wayfinder Flow v0"
	s.Description = "Schema for wayfinder flow documents (YAML or JSON)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
