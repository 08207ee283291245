package pipeline

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/blueprint-v1.json
var BlueprintSchema string

// Blueprint mirrors schemas/blueprint-v1.json. The document keeps the raw map
// form; this type exists for callers that want the well-known fields.
type Blueprint struct {
	Objective   string   `json:"objective"`
	Audience    string   `json:"audience"`
	PrimaryGoal string   `json:"primary_goal"`
	ContentType string   `json:"content_type,omitempty"`
	Tone        string   `json:"tone,omitempty"`
	DraftMode   string   `json:"draft_mode,omitempty"`
	ProofLevel  string   `json:"proof_level,omitempty"`
	PageType    string   `json:"page_type,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Questions   []string `json:"questions,omitempty"`
}

// ValidateBlueprintJSON checks stage-1 output against the blueprint schema.
func ValidateBlueprintJSON(b []byte) error {
	loader := gojsonschema.NewBytesLoader(b)
	schemaLoader := gojsonschema.NewStringLoader(BlueprintSchema)
	result, err := gojsonschema.Validate(schemaLoader, loader)
	if err != nil {
		return err
	}
	if !result.Valid() {
		return fmt.Errorf("blueprint invalid: %s", collect(result.Errors()))
	}
	return nil
}

func collect(errs []gojsonschema.ResultError) string {
	var buf bytes.Buffer
	for _, e := range errs {
		buf.WriteString(e.String())
		buf.WriteByte(';')
	}
	return buf.String()
}
