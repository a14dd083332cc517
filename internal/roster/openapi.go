package roster

import "github.com/holywrit/ideas/pkg/openapi"

// Spec returns the OpenAPI paths and schemas for roster endpoints.
func Spec() (map[string]*openapi.PathItem, map[string]*openapi.Schema) {
	tags := []string{"Classes"}

	paths := map[string]*openapi.PathItem{
		"/classes": {
			Get: &openapi.Operation{
				Summary: "List classes with their students",
				Tags:    tags,
				Responses: map[int]*openapi.Response{
					200: {
						Description: "All classes",
						Content: map[string]*openapi.MediaType{
							"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Class")}},
						},
					},
				},
			},
		},
		"/classes/export": {
			Get: &openapi.Operation{
				Summary: "Download the roster as an XLSX workbook",
				Tags:    tags,
				Responses: map[int]*openapi.Response{
					200: {
						Description: "Workbook with one sheet per class",
						Content: map[string]*openapi.MediaType{
							xlsxContentType: {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
						},
					},
				},
			},
		},
		"/classes/{id}": {
			Get: &openapi.Operation{
				Summary:    "Find a class",
				Tags:       tags,
				Parameters: []*openapi.Parameter{openapi.PathParam("id", "string", "Class id")},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("The class", "Class"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/classes/{classId}/students/{studentId}/remarks": {
			Put: &openapi.Operation{
				Summary: "Record remarks for a student",
				Tags:    tags,
				Parameters: []*openapi.Parameter{
					openapi.PathParam("classId", "string", "Class id"),
					openapi.PathParam("studentId", "integer", "Student id"),
				},
				RequestBody: openapi.RequestBodyJSON("RemarksRequest", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("The updated student", "Student"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
	}

	schemas := map[string]*openapi.Schema{
		"Student": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":      {Type: "integer"},
				"name":    {Type: "string"},
				"roll_no": {Type: "string"},
				"section": {Type: "string"},
				"remarks": {Type: "string"},
			},
		},
		"Class": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":       {Type: "string", Example: "class-x"},
				"name":     {Type: "string", Example: "Class X"},
				"students": {Type: "array", Items: openapi.SchemaRef("Student")},
			},
		},
		"RemarksRequest": {
			Type:     "object",
			Required: []string{"remarks"},
			Properties: map[string]*openapi.Schema{
				"remarks": {Type: "string", MaxLength: new(10000)},
			},
		},
	}

	return paths, schemas
}
