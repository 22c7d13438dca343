// Package byelaws extracts structured entities (sections, clauses,
// definitions, FSI rules, penalties) from municipal building bye-law text
// with an LLM and writes them out as JSONL and an annotated HTML page.
//
// The entities are reference material for whoever prepares project inputs;
// nothing here feeds the feasibility engine.
package byelaws

// Extraction classes requested from the model.
const (
	ClassSection    = "section"
	ClassClause     = "clause"
	ClassDefinition = "definition"
	ClassFSIRule    = "fsi_rule"
	ClassPenalty    = "penalty"
)

// Classes lists the extraction classes in prompt order.
var Classes = []string{ClassSection, ClassClause, ClassDefinition, ClassFSIRule, ClassPenalty}

// Extraction is one entity quoted from the source text. Start and End are
// byte offsets into AnnotatedDocument.Text; both are -1 when the quote could
// not be found verbatim.
type Extraction struct {
	Class      string            `json:"extraction_class"`
	Text       string            `json:"extraction_text"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Start      int               `json:"char_start"`
	End        int               `json:"char_end"`
}

// Located reports whether the extraction was aligned to the source text.
func (e Extraction) Located() bool { return e.Start >= 0 && e.End > e.Start }

// ExampleData is a few-shot example shown to the model.
type ExampleData struct {
	Text        string       `json:"text"`
	Extractions []Extraction `json:"extractions"`
}

// AnnotatedDocument is the source text with its extractions.
type AnnotatedDocument struct {
	ID          string       `json:"document_id"`
	Source      string       `json:"source,omitempty"`
	Model       string       `json:"model,omitempty"`
	Text        string       `json:"text"`
	Extractions []Extraction `json:"extractions"`
}

// CountByClass tallies extractions per class.
func (d *AnnotatedDocument) CountByClass() map[string]int {
	counts := make(map[string]int)
	for _, e := range d.Extractions {
		counts[e.Class]++
	}
	return counts
}
