package byelaws

import (
	"bufio"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"realty_feasibility/pkg/core/utils"
)

const (
	ResultsFile       = "results.jsonl"
	VisualizationFile = "visualization.html"
)

// SaveJSONL writes one annotated document per line.
func SaveJSONL(path string, docs ...*AnnotatedDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, d := range docs {
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode document %s: %w", d.ID, err)
		}
	}
	return w.Flush()
}

// LoadJSONL reads documents written by SaveJSONL.
func LoadJSONL(path string) ([]*AnnotatedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []*AnnotatedDocument
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var d AnnotatedDocument
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			return nil, fmt.Errorf("invalid JSONL line: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, sc.Err()
}

var classColors = map[string]string{
	ClassSection:    "#ffe08a",
	ClassClause:     "#b5e3ff",
	ClassDefinition: "#c9f2c7",
	ClassFSIRule:    "#f5c6ff",
	ClassPenalty:    "#ffb3b3",
}

// Visualize renders docs as a standalone HTML page: a count table per class
// and the source text with each located extraction highlighted.
func Visualize(docs ...*AnnotatedDocument) (string, error) {
	var md strings.Builder
	md.WriteString("# Bye-law extractions\n\n")

	for _, d := range docs {
		fmt.Fprintf(&md, "## Document %s\n\n", d.ID)

		counts := d.CountByClass()
		classes := make([]string, 0, len(counts))
		for c := range counts {
			classes = append(classes, c)
		}
		sort.Strings(classes)
		md.WriteString("| Class | Count |\n|---|---|\n")
		for _, c := range classes {
			fmt.Fprintf(&md, "| %s | %d |\n", c, counts[c])
		}
		md.WriteString("\n")

		// one HTML block; newlines become <br> so goldmark keeps it intact
		md.WriteString("<div class=\"document\">")
		md.WriteString(highlight(d))
		md.WriteString("</div>\n\n")
	}

	body, err := utils.MarkdownToHTML(md.String())
	if err != nil {
		return "", fmt.Errorf("failed to render visualization: %w", err)
	}
	return "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Bye-law extractions</title>\n" +
		"<style>body{font-family:sans-serif;max-width:960px;margin:auto}mark{padding:0 2px}</style>\n" +
		"</head><body>\n" + body + "</body></html>\n", nil
}

// highlight wraps located, non-overlapping extractions in <mark>.
func highlight(d *AnnotatedDocument) string {
	spans := make([]Extraction, 0, len(d.Extractions))
	for _, e := range d.Extractions {
		if e.Located() && e.End <= len(d.Text) {
			spans = append(spans, e)
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var b strings.Builder
	pos := 0
	for _, e := range spans {
		if e.Start < pos {
			continue
		}
		b.WriteString(escape(d.Text[pos:e.Start]))
		color := classColors[e.Class]
		if color == "" {
			color = "#e0e0e0"
		}
		fmt.Fprintf(&b, "<mark class=\"%s\" title=\"%s\" style=\"background:%s\">%s</mark>",
			html.EscapeString(e.Class), html.EscapeString(e.Class), color, escape(d.Text[e.Start:e.End]))
		pos = e.End
	}
	b.WriteString(escape(d.Text[pos:]))
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>\n")
}

// WriteOutputs saves results.jsonl and visualization.html under dir and
// returns both paths.
func WriteOutputs(dir string, docs ...*AnnotatedDocument) (string, string, error) {
	jsonlPath := filepath.Join(dir, ResultsFile)
	if err := SaveJSONL(jsonlPath, docs...); err != nil {
		return "", "", err
	}

	page, err := Visualize(docs...)
	if err != nil {
		return "", "", err
	}
	htmlPath := filepath.Join(dir, VisualizationFile)
	if err := os.WriteFile(htmlPath, []byte(page), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write visualization: %w", err)
	}
	return jsonlPath, htmlPath, nil
}
