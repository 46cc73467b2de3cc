// Copyright 2026 Colliderlab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/colliderlab/physrag/core"
)

// loadableExtensions lists the file extensions the loader understands.
var loadableExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// LoadDocument reads a single file into a Document. The document ID is
// the given id, or the file path when id is empty. Markdown files are
// split into heading sections; plain text files become one untitled
// section.
func LoadDocument(path string, id string) (*core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if id == "" {
		id = filepath.ToSlash(path)
	}

	content := string(data)
	doc := &core.Document{
		ID:      id,
		Source:  path,
		Content: content,
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".md" || ext == ".markdown" {
		doc.Title, doc.Sections = ExtractSections(content)
	} else if content != "" {
		doc.Sections = []core.Section{{Start: 0, End: len(content)}}
	}

	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), ext)
	}

	return doc, nil
}

// LoadDirectory walks a directory tree and loads every markdown and text
// file into a Document. Document IDs are slash-separated paths relative
// to the directory root, so repeated loads of the same tree produce the
// same IDs. Results follow the lexical walk order.
func LoadDirectory(dir string) ([]*core.Document, error) {
	var docs []*core.Document

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !loadableExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		doc, err := LoadDocument(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}
