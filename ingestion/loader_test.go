package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDocument_Markdown(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "higgs.md", "# Higgs Discovery\n\nObserved at 125 GeV.\n")

	doc, err := LoadDocument(filepath.Join(dir, "higgs.md"), "notes/higgs.md")
	require.NoError(t, err)

	assert.Equal(t, "notes/higgs.md", doc.ID)
	assert.Equal(t, "Higgs Discovery", doc.Title)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Higgs Discovery", doc.Sections[0].Title)
}

func TestLoadDocument_PlainText(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "notes.txt", "Plain notes about cross sections.")

	doc, err := LoadDocument(filepath.Join(dir, "notes.txt"), "")
	require.NoError(t, err)

	// Falls back to the file name for the title and path for the ID.
	assert.Equal(t, "notes", doc.Title)
	assert.Contains(t, doc.ID, "notes.txt")
	require.Len(t, doc.Sections, 1)
	assert.Empty(t, doc.Sections[0].Title)
	assert.Equal(t, len(doc.Content), doc.Sections[0].End)
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.md"), "")
	require.Error(t, err)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.md", "# Alpha\n\nText.\n")
	writeTestFile(t, dir, "sub/b.markdown", "# Beta\n\nText.\n")
	writeTestFile(t, dir, "sub/c.txt", "Gamma text.")
	writeTestFile(t, dir, "ignore.json", "{}")

	docs, err := LoadDirectory(dir)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// IDs are slash-separated relative paths in lexical walk order.
	assert.Equal(t, "a.md", docs[0].ID)
	assert.Equal(t, "sub/b.markdown", docs[1].ID)
	assert.Equal(t, "sub/c.txt", docs[2].ID)
	assert.Equal(t, "Alpha", docs[0].Title)
	assert.Equal(t, "Beta", docs[1].Title)
}

func TestLoadDirectory_Empty(t *testing.T) {
	docs, err := LoadDirectory(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
