package byelaws

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"realty_feasibility/pkg/core/llm"
	"realty_feasibility/pkg/core/utils"
)

// DefaultMaxChunkChars bounds the text sent in one request.
const DefaultMaxChunkChars = 4000

// Extractor runs the extraction prompt against an LLM provider.
type Extractor struct {
	provider      llm.Provider
	model         string
	examples      []ExampleData
	MaxChunkChars int
}

// NewExtractor creates an extractor. An empty model lets the provider decide.
func NewExtractor(provider llm.Provider, model string) *Extractor {
	return &Extractor{
		provider:      provider,
		model:         model,
		examples:      BuildExamples(),
		MaxChunkChars: DefaultMaxChunkChars,
	}
}

type modelOutput struct {
	Extractions []Extraction `json:"extractions"`
}

// Extract annotates text. Long inputs are split at paragraph breaks and sent
// chunk by chunk; offsets always refer to the full text.
func (x *Extractor) Extract(ctx context.Context, text string) (*AnnotatedDocument, error) {
	if x.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("input text is empty")
	}

	doc := &AnnotatedDocument{
		ID:    uuid.New().String(),
		Model: x.model,
		Text:  text,
	}

	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	if x.model != "" {
		options["model"] = x.model
	}

	chunks := splitChunks(text, x.MaxChunkChars)
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Printf("[BYELAWS] Extracting chunk %d/%d (%d chars)\n", i+1, len(chunks), len(c.text))

		prompt := renderPrompt(BuildPrompt(), x.examples, c.text)
		raw, err := x.provider.GenerateResponse(ctx, prompt, buildSystemPrompt(), options)
		if err != nil {
			return nil, fmt.Errorf("extraction failed on chunk %d: %w", i+1, err)
		}

		items, err := parseExtractions(raw)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i+1, err)
		}
		doc.Extractions = append(doc.Extractions, align(c, items)...)
	}

	fmt.Printf("[BYELAWS] %d extractions from %d chunks\n", len(doc.Extractions), len(chunks))
	return doc, nil
}

// parseExtractions accepts {"extractions": [...]} or a bare array, fenced or not.
func parseExtractions(raw string) ([]Extraction, error) {
	cleaned := utils.CleanMarkdown(raw)
	// skip any prose before the payload
	start := strings.IndexAny(cleaned, "{[")
	if start < 0 {
		return nil, fmt.Errorf("no JSON in model response: %.120q", cleaned)
	}
	cleaned = cleaned[start:]

	var out modelOutput
	if _, err := utils.SmartParse(cleaned, &out); err == nil && out.Extractions != nil {
		return out.Extractions, nil
	}

	var list []Extraction
	if _, err := utils.SmartParse(cleaned, &list); err == nil {
		return list, nil
	}
	return nil, fmt.Errorf("unparseable model response: %.120q", cleaned)
}

type chunk struct {
	offset int
	text   string
}

// splitChunks groups paragraphs into chunks of at most max bytes. A single
// paragraph longer than max becomes its own chunk.
func splitChunks(text string, max int) []chunk {
	if max <= 0 || len(text) <= max {
		return []chunk{{offset: 0, text: text}}
	}

	var chunks []chunk
	start, end := 0, 0
	for end < len(text) {
		next := strings.Index(text[end:], "\n\n")
		paraEnd := len(text)
		if next >= 0 {
			paraEnd = end + next + 2
		}
		if paraEnd-start > max && end > start {
			chunks = append(chunks, chunk{offset: start, text: text[start:end]})
			start = end
		}
		end = paraEnd
	}
	if start < len(text) {
		chunks = append(chunks, chunk{offset: start, text: text[start:]})
	}
	return chunks
}

// align locates each quote in the chunk, preferring matches after the
// previous one so repeated phrases map in order.
func align(c chunk, items []Extraction) []Extraction {
	out := make([]Extraction, 0, len(items))
	lower := strings.ToLower(c.text)
	cursor := 0

	for _, e := range items {
		e.Class = strings.ToLower(strings.TrimSpace(e.Class))
		e.Text = strings.TrimSpace(e.Text)
		if e.Text == "" {
			continue
		}
		e.Start, e.End = -1, -1

		idx := -1
		if i := strings.Index(c.text[cursor:], e.Text); i >= 0 {
			idx = cursor + i
		} else if i := strings.Index(c.text, e.Text); i >= 0 {
			idx = i
		} else if q := strings.ToLower(e.Text); len(q) == len(e.Text) && len(lower) == len(c.text) {
			idx = strings.Index(lower, q)
		}

		if idx >= 0 {
			e.Start = c.offset + idx
			e.End = e.Start + len(e.Text)
			if idx+len(e.Text) > cursor {
				cursor = idx + len(e.Text)
			}
		}
		out = append(out, e)
	}
	return out
}
