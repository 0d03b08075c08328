package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/autolog-dev/autolog/internal/document"
	"github.com/autolog-dev/autolog/internal/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() document.Document {
	return document.Document{
		{
			Client: &document.Client{ID: "client-a", Name: "alphabet"},
			User:   &document.User{ID: "user-1", Name: "Jim Jones", Email: "jim@jones.com"},
			Repositories: []document.Repository{
				{
					ID:         "repo-1",
					Namespace:  "timesheet-gen",
					RepoPath:   "/home/jim/timesheet-gen",
					GitPath:    "/home/jim/timesheet-gen/.git/",
					Name:       "Jim Jones",
					Email:      "jim@jones.com",
					ClientName: "alphabet",
					WorkedDays: timesheet.WorkedDayIndex{2021: {11: {1: true, 2: true}}},
					Timesheet: timesheet.Sheet{
						2021: {11: timesheet.AllocateMonth(2021, 11, timesheet.DaySet{1: true, 2: true}, nil, nil)},
					},
				},
			},
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "autolog.json"))

	require.NoError(t, st.Save(testDocument()))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, testDocument(), loaded)
}

func TestLoadMissingDocument(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "autolog.json"))

	doc, err := st.Load()
	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.False(t, st.Exists())
}

func TestLoadCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autolog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := New(path).Load()
	assert.Error(t, err)
}

func TestLoadMigratesLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autolog.json")
	legacy := `[{"repositories":[{"namespace":"timesheet-gen","name":"Jim Jones","email":"jim@jones.com","client_name":"alphabet"}]}]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	doc, err := New(path).Load()
	require.NoError(t, err)
	require.Len(t, doc, 1)
	require.NotNil(t, doc[0].Client)
	assert.Equal(t, "alphabet", doc[0].Client.Name)
	assert.NotEmpty(t, doc[0].Repositories[0].ID)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nested", "dir", "autolog.json"))

	require.NoError(t, st.Save(testDocument()))
	assert.True(t, st.Exists())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st := New(filepath.Join(dir, "autolog.json"))
	require.NoError(t, st.Save(testDocument()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "autolog.json", entries[0].Name())
}

func TestDelete(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "autolog.json"))
	require.NoError(t, st.Save(testDocument()))

	require.NoError(t, st.Delete())
	assert.False(t, st.Exists())

	// deleting an already-missing document is fine
	require.NoError(t, st.Delete())
}
