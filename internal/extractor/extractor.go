package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumeforge/pkg/utils"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExtractUpload copies an uploaded document into a temp file, extracts its
// text, and removes the temp file on every exit path. The upload itself is
// never persisted.
func ExtractUpload(fileHeader *multipart.FileHeader, tempDir string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", utils.NewExtractionError("failed to open uploaded file", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(tempDir, "upload-*")
	if err != nil {
		return "", utils.NewExtractionError("failed to create temp file", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return "", utils.NewExtractionError("failed to buffer uploaded file", err)
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	return ExtractFile(tmp.Name(), mimeType, fileHeader.Filename)
}

// ExtractFile extracts text from a document on disk.
func ExtractFile(path string, mimeType string, fileName string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", utils.NewExtractionError("failed to read document", err)
	}
	return ExtractBytes(data, mimeType, fileName)
}

// ExtractBytes extracts plain text from an in-memory document. Page
// boundaries are collapsed into blank lines and the result is trimmed. A
// document with no recoverable text (e.g. a scanned image) is an extraction
// failure, never an empty success.
func ExtractBytes(data []byte, mimeType string, fileName string) (string, error) {
	var (
		text string
		err  error
	)

	switch normalizeMimeType(mimeType, fileName, data) {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", utils.NewInvalidInputError("unsupported document format: " + mimeType)
	}
	if err != nil {
		return "", utils.NewExtractionError("document could not be parsed", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", utils.NewExtractionError("no text could be extracted from the document", nil)
	}
	return text, nil
}

// extractPDF pulls the text layer of each page and joins pages with a blank
// line. Library: github.com/ledongthuc/pdf.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue // pages without a recoverable text layer are skipped
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

// stripDocxXML walks the document XML and keeps character data, turning
// paragraph and line-break ends into newlines.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return buf.String()
}

// normalizeMimeType resolves the declared media type against the file
// extension and content, since browsers report OOXML uploads as generic
// zip/octet-stream types.
func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case MimePDF, MimeDOCX:
		return clean
	}

	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return MimePDF
	}
	if hasDocxPayload(data) {
		return MimeDOCX
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	default:
		return clean
	}
}

func hasDocxPayload(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
