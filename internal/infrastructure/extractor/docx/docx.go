// Package docx extracts plain text from DOCX documents. A DOCX file is
// a zip archive; the text lives in word/document.xml as w:t runs inside
// w:p paragraphs.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentEntry = "word/document.xml"

// ExtractText reads the main document part and joins paragraph runs with
// newlines.
func ExtractText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}

	entry, err := findDocumentEntry(archive)
	if err != nil {
		return "", err
	}

	reader, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", documentEntry, err)
	}
	defer reader.Close()

	text, err := decodeDocumentXML(reader)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", documentEntry, err)
	}
	return text, nil
}

func findDocumentEntry(archive *zip.Reader) (*zip.File, error) {
	for _, f := range archive.File {
		if f.Name == documentEntry {
			return f, nil
		}
	}
	return nil, fmt.Errorf("docx archive has no %s", documentEntry)
}

func decodeDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		builder   strings.Builder
		inTextRun bool
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				builder.Write(t)
			}
		}
	}
	return strings.TrimSpace(builder.String()), nil
}
