package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var openapiDocument []byte

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// specDoc serves a rendered document to swag, which echo-swagger reads from.
type specDoc struct {
	json string
}

func (d specDoc) ReadDoc() string {
	return d.json
}

// registerDocs renders doc as JSON and registers it as the default swag
// instance. It returns the JSON for /openapi.json.
func registerDocs(doc *openapi3.T) ([]byte, error) {
	rendered, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}
	if swag.GetSwagger(swag.Name) == nil {
		swag.Register(swag.Name, specDoc{json: string(rendered)})
	}
	return rendered, nil
}
