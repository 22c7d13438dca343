package byelaws

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildPrompt is the task description given to the model.
func BuildPrompt() string {
	return "Extract structured entities from BMC (MCGM) building bye-laws. " +
		"Return sections, clauses, definitions, FSI-related rules, and penalties as structured items."
}

// BuildExamples returns the few-shot guidance.
func BuildExamples() []ExampleData {
	return []ExampleData{
		{
			Text: "Section 5: Water Supply. Clause 5.1: The corporation shall ensure adequate supply. " +
				"Penalty: A fine of Rs. 5000 shall be imposed for non-compliance.",
			Extractions: []Extraction{
				{Class: ClassSection, Text: "Section 5: Water Supply"},
				{Class: ClassClause, Text: "Clause 5.1: The corporation shall ensure adequate supply."},
				{Class: ClassPenalty, Text: "A fine of Rs. 5000 shall be imposed for non-compliance."},
			},
		},
	}
}

const systemPrompt = `You are an information extraction engine. Respond with a single JSON object:
{"extractions": [{"extraction_class": "<class>", "extraction_text": "<exact quote>", "attributes": {"<key>": "<value>"}}]}
Allowed classes: %s.
Quote extraction_text exactly as it appears in the input, in order of appearance. Do not paraphrase.`

func buildSystemPrompt() string {
	return fmt.Sprintf(systemPrompt, strings.Join(Classes, ", "))
}

// renderPrompt assembles description, examples and the chunk to annotate.
func renderPrompt(description string, examples []ExampleData, text string) string {
	var b strings.Builder
	b.WriteString(description)
	b.WriteString("\n\n")

	for i, ex := range examples {
		out := struct {
			Extractions []exampleItem `json:"extractions"`
		}{}
		for _, e := range ex.Extractions {
			out.Extractions = append(out.Extractions, exampleItem{Class: e.Class, Text: e.Text})
		}
		data, _ := json.Marshal(out)
		fmt.Fprintf(&b, "Example %d\nInput: %s\nOutput: %s\n\n", i+1, ex.Text, data)
	}

	b.WriteString("Input: ")
	b.WriteString(text)
	b.WriteString("\nOutput:")
	return b.String()
}

type exampleItem struct {
	Class string `json:"extraction_class"`
	Text  string `json:"extraction_text"`
}
