package documents

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of the record for the given document type.
func Schema(doc DocType) (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	switch doc {
	case TypeInvoice:
		return reflector.Reflect(&Invoice{}), nil
	case TypePO:
		return reflector.Reflect(&PO{}), nil
	case TypeContract:
		return reflector.Reflect(&Contract{}), nil
	default:
		return nil, fmt.Errorf("no schema for document type %q", doc)
	}
}
