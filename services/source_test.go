package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSourceFileCSV(t *testing.T) {
	path := writeTempCSV(t,
		"Name,Position,Research Interest,Departmental Affiliation,Article,Conference Paper\n"+
			"A. Smith,Professor,Machine Learning,School of Computer Science,1. A Paper,\n"+
			"B. Jones,,,School of Computer Science,,1. Some Talk\n")

	rows, err := ReadSourceFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, 2, rows[0].SheetRow())
	assert.Equal(t, "A. Smith", rows[0].Name)
	assert.Equal(t, "Professor", rows[0].Position)
	assert.Equal(t, "Machine Learning", rows[0].ResearchInterest)
	assert.Equal(t, "School of Computer Science", rows[0].Affiliation)
	assert.Equal(t, "1. A Paper", rows[0].Articles)
	assert.Equal(t, "", rows[0].ConferencePapers)

	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, "", rows[1].Position)
	assert.Equal(t, "1. Some Talk", rows[1].ConferencePapers)
}

func TestReadSourceFileHeaderMapping(t *testing.T) {
	t.Run("headers match case-insensitively", func(t *testing.T) {
		path := writeTempCSV(t, "name,POSITION\nA. Smith,Reader\n")
		rows, err := ReadSourceFile(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "A. Smith", rows[0].Name)
		assert.Equal(t, "Reader", rows[0].Position)
	})

	t.Run("ragged rows read as empty cells", func(t *testing.T) {
		path := writeTempCSV(t, "Name,Position,Article\nA. Smith\n")
		rows, err := ReadSourceFile(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0].Position)
		assert.Equal(t, "", rows[0].Articles)
	})

	t.Run("missing name column is fatal", func(t *testing.T) {
		path := writeTempCSV(t, "Position,Article\nProfessor,Paper\n")
		_, err := ReadSourceFile(path)
		assert.Error(t, err)
	})
}

func TestReadSourceFileErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ReadSourceFile("data.ods")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSourceFile(filepath.Join(t.TempDir(), "gone.csv"))
		assert.Error(t, err)
	})
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional(""))
	assert.Nil(t, optional("   "))
	if got := optional(" Professor "); assert.NotNil(t, got) {
		assert.Equal(t, "Professor", *got)
	}
}
