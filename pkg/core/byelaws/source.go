package byelaws

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LoadText reads a bye-law source. HTML files are reduced to their text.
func LoadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("input text file not found: %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return TextFromHTML(f)
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// TextFromHTML keeps the readable block text of an HTML page, one block per
// paragraph, dropping scripts, styles and navigation.
func TextFromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	const blocks = "h1, h2, h3, h4, h5, h6, p, li, td, th, pre"
	var paras []string
	doc.Find(blocks).Each(func(_ int, s *goquery.Selection) {
		// nested blocks are visited on their own; keep only this block's text
		if s.Find(blocks).Length() > 0 {
			s = s.Clone()
			s.Find(blocks).Remove()
		}
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			paras = append(paras, t)
		}
	})

	if len(paras) == 0 {
		if t := strings.Join(strings.Fields(doc.Find("body").Text()), " "); t != "" {
			paras = append(paras, t)
		}
	}
	return strings.Join(paras, "\n\n"), nil
}
