package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examgen/internal/model"
)

func TestSaveAndLoadRoundtrip(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "json"))
	require.NoError(t, err)

	doc := &model.DocumentRecord{
		Filename: "paper one.pdf",
		Questions: []model.QuestionRecord{
			{Questions: []string{"What is X?", "What is Y?"}, Context: "C", Marks: "5"},
			{Questions: []string{"Explain Z."}},
		},
	}

	path, err := s.Save(doc)
	require.NoError(t, err)
	assert.Equal(t, "paper one.json", filepath.Base(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := s.Save(&model.DocumentRecord{
		Filename:  "a.pdf",
		Questions: []model.QuestionRecord{{Questions: []string{"Q?"}}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if !strings.Contains(string(data), "\n    ") {
		t.Error("record file should be indented JSON")
	}
}

func TestListReturnsOnlyRecordFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	_, err = s.Save(&model.DocumentRecord{Filename: "b.pdf"})
	require.NoError(t, err)
	_, err = s.Save(&model.DocumentRecord{Filename: "a.pdf"})
	require.NoError(t, err)

	// Lock file and unrelated entries must not be listed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	paths, err := s.List()
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "a.json", filepath.Base(paths[0]))
	assert.Equal(t, "b.json", filepath.Base(paths[1]))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing record file")
	}
}

func TestLockUnlock(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Lock())
	require.NoError(t, s.Unlock())
}
