// Package manifest loads YAML ingest manifests describing which files
// belong to which course.
//
//	courses:
//	  - title: Algebra 101
//	    links: [https://algebra.example/syllabus]
//	    files: [week1.pdf, slides/week2.pptx]
//
// Relative file paths are resolved against the manifest's directory.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// Course is one course block of a manifest.
type Course struct {
	Title string   `yaml:"title"`
	Links []string `yaml:"links"`
	Files []string `yaml:"files"`
}

// Manifest is the root manifest structure.
type Manifest struct {
	Courses []Course `yaml:"courses"`
}

// Entry is one file to ingest with the course it belongs to.
type Entry struct {
	Path        string
	CourseTitle string
	UsefulLinks []string
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse manifest %s: %w", domain.ErrInvalidInput, path, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	m.resolve(filepath.Dir(path))
	return &m, nil
}

// Entries flattens the manifest into one entry per file, in file order.
func (m *Manifest) Entries() []Entry {
	var entries []Entry
	for _, c := range m.Courses {
		for _, f := range c.Files {
			links := make([]string, len(c.Links))
			copy(links, c.Links)
			entries = append(entries, Entry{
				Path:        f,
				CourseTitle: c.Title,
				UsefulLinks: links,
			})
		}
	}
	return entries
}

func (m *Manifest) validate() error {
	if len(m.Courses) == 0 {
		return fmt.Errorf("%w: manifest lists no courses", domain.ErrInvalidInput)
	}
	var errs []error
	for i, c := range m.Courses {
		if strings.TrimSpace(c.Title) == "" {
			errs = append(errs, fmt.Errorf("course %d: title is required", i+1))
		}
		if len(c.Files) == 0 {
			errs = append(errs, fmt.Errorf("course %q: no files", c.Title))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

func (m *Manifest) resolve(baseDir string) {
	for i := range m.Courses {
		m.Courses[i].Title = strings.TrimSpace(m.Courses[i].Title)
		for j, f := range m.Courses[i].Files {
			if !filepath.IsAbs(f) {
				m.Courses[i].Files[j] = filepath.Join(baseDir, f)
			}
		}
	}
}
