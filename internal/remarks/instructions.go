package remarks

import "strings"

const instructions = `You are an expert in extracting project remarks from school project-idea documents.

The user will attach one document and name the class it was submitted for. Extract the project remarks from the document: the description of the proposed project idea, its goals, and any notes the team wrote about it. Do not include other content from the document such as headers, team rosters, or boilerplate.

Respond with a JSON object of the form {"extracted_data": "<remarks>"}. The remarks must be a single string. If the document contains no project remarks, respond with {"extracted_data": ""}.`

// ComposePrompt builds the user prompt for a document submitted for label.
func ComposePrompt(label string) string {
	var b strings.Builder
	b.WriteString("Class Name: ")
	if label = strings.TrimSpace(label); label == "" {
		label = "Unspecified"
	}
	b.WriteString(label)
	b.WriteString("\nDocument: attached")
	return b.String()
}

// Instructions returns the system instructions sent with every extraction.
func Instructions() string {
	return instructions
}
