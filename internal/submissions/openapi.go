package submissions

import "github.com/holywrit/ideas/pkg/openapi"

// Spec returns the OpenAPI paths and schemas for submission endpoints.
func Spec() (map[string]*openapi.PathItem, map[string]*openapi.Schema) {
	tags := []string{"Submissions"}
	responses := func() map[int]*openapi.Response {
		return map[int]*openapi.Response{
			200: openapi.ResponseJSON("Submission processed and sent", "Result"),
			400: openapi.ResponseJSON("Submission rejected", "Result"),
			413: openapi.ResponseRef("TooLarge"),
			502: openapi.ResponseJSON("Notification failed", "Result"),
		}
	}

	paths := map[string]*openapi.PathItem{
		"/submissions": {
			Post: &openapi.Operation{
				Summary:     "Submit a project idea",
				Description: "Extraction and notification run in parallel. Extraction failures never fail the submission.",
				Tags:        tags,
				RequestBody: openapi.RequestBodyJSON("Submission", true),
				Responses:   responses(),
			},
		},
		"/submissions/upload": {
			Post: &openapi.Operation{
				Summary: "Submit a project idea as a file upload",
				Tags:    tags,
				RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
					Type:     "object",
					Required: []string{"file", "class_name"},
					Properties: map[string]*openapi.Schema{
						"file":             {Type: "string", Format: "binary"},
						"class_name":       {Type: "string"},
						"team_name":        {Type: "string"},
						"team_leader_name": {Type: "string"},
						"team_members":     {Type: "string"},
						"student_info":     {Type: "string"},
					},
				}),
				Responses: responses(),
			},
		},
	}

	schemas := map[string]*openapi.Schema{
		"Submission": {
			Type:     "object",
			Required: []string{"document", "class_name"},
			Properties: map[string]*openapi.Schema{
				"document":         {Type: "string", Description: "Base64 data URI with an application/* media type"},
				"class_name":       {Type: "string", MaxLength: new(100)},
				"team_name":        {Type: "string"},
				"team_leader_name": {Type: "string"},
				"team_members":     {Type: "string"},
				"student_info":     {Type: "string"},
				"filename":         {Type: "string"},
			},
		},
		"Result": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"state":          {Type: "string", Enum: []any{"rejected", "succeeded", "failed"}},
				"success":        {Type: "boolean"},
				"message":        {Type: "string"},
				"extracted_data": {Type: "string", Description: "Null when extraction failed or found nothing"},
			},
		},
	}

	return paths, schemas
}
