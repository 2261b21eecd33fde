// Package pptx extracts slide text from PowerPoint decks.
//
// A .pptx file is a zip archive; each slide lives at ppt/slides/slideN.xml
// and its visible text sits in DrawingML <a:t> runs grouped into <a:p>
// paragraphs. Slides are emitted in numeric order separated by
// domain.PageSeparator so the cleaner can treat each slide as a page.
package pptx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

const (
	slidePrefix = "ppt/slides/slide"
	slideSuffix = ".xml"

	// drawingML is the namespace of <a:p> and <a:t>.
	drawingML = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

// Extractor handles PowerPoint documents.
type Extractor struct{}

// New creates a new PPTX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return "pptx"
}

// SupportedTypes returns the file extensions this extractor handles.
func (e *Extractor) SupportedTypes() []string {
	return []string{"pptx"}
}

// Extract opens the archive at path and returns the text of every slide.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", domain.ErrExtractionFailed, path, err)
	}
	defer rc.Close()

	text, err := extractSlides(ctx, &rc.Reader)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, path, err)
	}
	return text, nil
}

type slideFile struct {
	number int
	file   *zip.File
}

// extractSlides reads the slides of an opened archive in numeric order.
func extractSlides(ctx context.Context, reader *zip.Reader) (string, error) {
	var slides []slideFile
	for _, file := range reader.File {
		n, ok := slideNumber(file.Name)
		if ok {
			slides = append(slides, slideFile{number: n, file: file})
		}
	}
	if len(slides) == 0 {
		return "", errors.New("no slides found")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	pages := make([]string, 0, len(slides))
	for _, s := range slides {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := readSlide(s.file)
		if err != nil {
			return "", fmt.Errorf("slide %d: %w", s.number, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, domain.PageSeparator), nil
}

// slideNumber parses N from "ppt/slides/slideN.xml". Layouts, masters and
// the _rels directory do not match.
func slideNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, slidePrefix) || !strings.HasSuffix(name, slideSuffix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, slidePrefix), slideSuffix))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func readSlide(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return parseSlideXML(rc)
}

// parseSlideXML walks the slide XML and joins <a:t> runs, one line per
// <a:p> paragraph. Empty paragraphs are dropped.
func parseSlideXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines   []string
		current strings.Builder
		inText  bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == drawingML && t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Space != drawingML {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if line := strings.TrimSpace(current.String()); line != "" {
					lines = append(lines, line)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
