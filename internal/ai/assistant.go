// Package ai implements the optional billing assistant: polishing line
// item descriptions and classifying SST taxability. Both calls are
// advisory; nothing here mutates state.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// SSTClassification is the structured answer to "is this item taxable
// under Malaysian SST".
type SSTClassification struct {
	Taxable bool   `json:"taxable" jsonschema_description:"True if the item is likely taxable under Malaysian SST, false if exempt"`
	Reason  string `json:"reason" jsonschema_description:"A short explanation of the classification"`
}

type Assistant struct {
	client *openai.Client
}

// NewAssistant builds an assistant around the given API key.
func NewAssistant(apiKey string) *Assistant {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Assistant{client: &client}
}

// SuggestDescription rewrites a short item description into professional
// invoice wording. Callers should fall back to the original text on error.
func (a *Assistant) SuggestDescription(ctx context.Context, shortDesc string) (string, error) {
	prompt := fmt.Sprintf(`Enhance this billing item description for a professional Malaysian invoice.
Keep it concise but professional. Reply with the enhanced description only.
Input: %q`, shortDesc)

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses error: %w", err)
	}
	content := resp.OutputText()
	if content == "" {
		return "", fmt.Errorf("empty response content")
	}
	return content, nil
}

// ClassifySST decides whether an item description is likely taxable under
// Malaysian SST, using strict structured output.
func (a *Assistant) ClassifySST(ctx context.Context, description string) (*SSTClassification, error) {
	prompt := fmt.Sprintf(`Classify whether the following item description is likely taxable under
Malaysian SST (Sales and Service Tax) or exempt.
Item: %q`, description)

	schemaJSON, err := json.Marshal(classificationSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "sst_classification",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("SST taxability classification of a billing item"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}
	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var result SSTClassification
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse classification: %w", err)
	}
	return &result, nil
}

func classificationSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&SSTClassification{})
}
