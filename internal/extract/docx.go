package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"claimlens/internal/domain"
)

// extractDOCX pulls paragraphs in document order, then tables (each table row
// flattened to one pipe-delimited line), and concatenates paragraphs before
// tables. DOCX is a zip of WordprocessingML; the main part is
// word/document.xml.
func (p *Pipeline) extractDOCX(data []byte) (*domain.ExtractedDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening docx archive: %w", domain.ErrCorruptInput)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, oerr := f.Open()
		if oerr != nil {
			return nil, fmt.Errorf("opening document part: %w", domain.ErrCorruptInput)
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading document part: %w", domain.ErrCorruptInput)
		}
		break
	}
	if docXML == nil {
		return nil, fmt.Errorf("docx missing word/document.xml: %w", domain.ErrCorruptInput)
	}

	paragraphs, tableRows, err := walkDocumentXML(docXML)
	if err != nil {
		return nil, fmt.Errorf("parsing document xml: %w", domain.ErrCorruptInput)
	}

	parts := append(paragraphs, tableRows...)
	text := joinNonEmpty(parts, "\n")
	if text == "" {
		return nil, fmt.Errorf("docx: %w", domain.ErrNoTextRecovered)
	}

	return &domain.ExtractedDocument{
		SourceFormat: domain.SourceDOCX,
		RawText:      text,
		Method:       domain.MethodDocxStructured,
		Confidence:   domain.ConfidenceHigh,
	}, nil
}

// walkDocumentXML streams WordprocessingML tokens, collecting body paragraph
// text and table rows separately. w:t carries text runs; w:p delimits
// paragraphs; w:tbl/w:tr/w:tc delimit tables, rows, and cells.
func walkDocumentXML(docXML []byte) (paragraphs, tableRows []string, err error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))

	tableDepth := 0
	var para strings.Builder
	var cell strings.Builder
	var row []string

	for {
		tok, terr := dec.Token()
		if errors.Is(terr, io.EOF) {
			break
		}
		if terr != nil {
			return nil, nil, terr
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					row = row[:0]
				}
			case "t":
				var text string
				if derr := dec.DecodeElement(&text, &t); derr != nil {
					return nil, nil, derr
				}
				if tableDepth > 0 {
					cell.WriteString(text)
				} else {
					para.WriteString(text)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "tc":
				if tableDepth > 0 {
					row = append(row, strings.TrimSpace(cell.String()))
					cell.Reset()
				}
			case "tr":
				if tableDepth > 0 && len(row) > 0 {
					tableRows = append(tableRows, strings.Join(row, " | "))
					row = nil
				}
			case "p":
				if tableDepth == 0 {
					if s := strings.TrimSpace(para.String()); s != "" {
						paragraphs = append(paragraphs, s)
					}
					para.Reset()
				}
			}
		}
	}
	return paragraphs, tableRows, nil
}
