package remarks

import "github.com/holywrit/ideas/pkg/openapi"

// Spec returns the OpenAPI paths and schemas for remarks endpoints.
func Spec() (map[string]*openapi.PathItem, map[string]*openapi.Schema) {
	paths := map[string]*openapi.PathItem{
		"/remarks/extract": {
			Post: &openapi.Operation{
				Summary:     "Preview remarks extraction for a document",
				Description: "Runs extraction only. No notification is sent.",
				Tags:        []string{"Remarks"},
				RequestBody: openapi.RequestBodyJSON("ExtractRequest", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Extracted remarks", "ExtractResponse"),
					400: openapi.ResponseRef("BadRequest"),
					502: openapi.ResponseRef("BadGateway"),
					503: openapi.ResponseRef("ServiceUnavailable"),
				},
			},
		},
	}

	schemas := map[string]*openapi.Schema{
		"ExtractRequest": {
			Type:     "object",
			Required: []string{"document"},
			Properties: map[string]*openapi.Schema{
				"document":   {Type: "string", Description: "Base64 data URI"},
				"class_name": {Type: "string", MaxLength: new(100)},
			},
		},
		"ExtractResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"extracted_data": {Type: "string", Description: "Null when nothing was found"},
			},
		},
	}

	return paths, schemas
}
