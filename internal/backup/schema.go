package backup

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"techfab-billing/internal/core"
)

// Schema returns the JSON Schema of the backup payload, reflected from the
// aggregate types. Exposed through the `schema` subcommand so integrators
// can validate backup files out of band.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&core.AppState{})
	schema.Title = "Techfab Billing Backup"
	schema.Description = "Full application-state snapshot: documents, customers, products and company settings."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
