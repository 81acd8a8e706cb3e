package preview

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DocxRenderer is the bundled Renderer: it unpacks the OOXML archive and
// paints paragraph text into the mount target, one block per page when page
// breaks are honored. It aims for readable text, not visual fidelity; a
// richer renderer can be swapped in behind the Renderer interface.
type DocxRenderer struct{}

var pageDividerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

func (DocxRenderer) Render(raw []byte, target MountTarget, style MountTarget, opts RenderOptions) error {
	pages, err := extractPages(raw, opts.PageBreaks)
	if err != nil {
		return err
	}

	width, _ := target.Size()

	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(pageDividerStyle.Render(pageDivider(i+1, width)))
			b.WriteString("\n\n")
		}
		b.WriteString(strings.Join(page, "\n\n"))
	}

	content := b.String()
	if opts.RespectWidth && width > 0 {
		content = lipgloss.NewStyle().Width(width).Render(content)
	}
	target.SetContent(content)
	return nil
}

func pageDivider(page, width int) string {
	label := fmt.Sprintf(" page %d ", page)
	if width < len(label)+4 {
		width = len(label) + 4
	}
	side := (width - len(label)) / 2
	return strings.Repeat("─", side) + label + strings.Repeat("─", width-side-len(label))
}

// extractPages pulls paragraph text out of word/document.xml. Each page is a
// slice of paragraphs; explicit page-break runs start a new page when
// breakPages is set.
func extractPages(raw []byte, breakPages bool) ([][]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, errors.New("not a valid document archive")
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("open document body: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return nil, errors.New("document body missing from archive")
	}
	defer doc.Close()

	var (
		pages     [][]string
		page      []string
		paragraph strings.Builder
		inPara    bool
		inText    bool
	)

	flushParagraph := func() {
		if text := strings.TrimRight(paragraph.String(), " "); text != "" {
			page = append(page, text)
		}
		paragraph.Reset()
	}

	dec := xml.NewDecoder(doc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
			case "t":
				inText = true
			case "br":
				for _, attr := range t.Attr {
					if attr.Name.Local == "type" && attr.Value == "page" && breakPages {
						flushParagraph()
						pages = append(pages, page)
						page = nil
					}
				}
			case "tab":
				if inPara {
					paragraph.WriteString("\t")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					flushParagraph()
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inPara && inText {
				paragraph.Write(t)
			}
		}
	}
	flushParagraph()
	pages = append(pages, page)

	return pages, nil
}
