package document

import (
	"testing"

	"github.com/autolog-dev/autolog/internal/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(clientID, clientName string, namespaces ...string) ClientRepositories {
	repos := make([]Repository, 0, len(namespaces))
	for _, ns := range namespaces {
		repos = append(repos, Repository{
			ID:         ns + "-id",
			Namespace:  ns,
			RepoPath:   "/home/jim/" + ns,
			GitPath:    "/home/jim/" + ns + "/.git/",
			Name:       "Jim Jones",
			Email:      "jim@jones.com",
			ClientName: clientName,
			Timesheet:  timesheet.Sheet{2021: {11: make(timesheet.MonthSheet, 30)}},
		})
	}
	return ClientRepositories{
		Client: &Client{ID: clientID, Name: clientName, Address: "Spaghetti Way, USA", ContactPerson: "John Smith"},
		User:   &User{ID: "user-1", Name: "Jim Jones", Email: "jim@jones.com"},
		Repositories: repos,
	}
}

func testDoc() Document {
	return Document{
		testEntry("client-a", "alphabet", "timesheet-gen", "billing-api"),
		testEntry("client-b", "bravo", "widgets"),
	}
}

func TestUpsertReplacesSingleRepository(t *testing.T) {
	doc := testDoc()

	record := testEntry("client-a", "alphabet", "billing-api")
	record.Repositories[0].Timesheet = timesheet.Sheet{2021: {12: make(timesheet.MonthSheet, 31)}}

	merged := Upsert(doc, record)

	require.Len(t, merged, 2)
	require.Len(t, merged[0].Repositories, 2)
	// only the matching repository changed
	assert.Contains(t, merged[0].Repositories[1].Timesheet[2021], 12)
	assert.Contains(t, merged[0].Repositories[0].Timesheet[2021], 11)
	// the sibling client is untouched
	assert.Equal(t, "widgets", merged[1].Repositories[0].Namespace)
}

func TestUpsertReplacesMovedRepositoryByID(t *testing.T) {
	doc := testDoc()

	// moving a repository re-derives its namespace; the ID still matches
	record := testEntry("client-a", "alphabet", "timesheet-gen")
	record.Repositories[0].Namespace = "timesheet-gen-v2"
	record.Repositories[0].RepoPath = "/home/jim/timesheet-gen-v2"
	record.Repositories[0].GitPath = "/home/jim/timesheet-gen-v2/.git/"

	merged := Upsert(doc, record)

	require.Len(t, merged, 2)
	require.Len(t, merged[0].Repositories, 2)
	assert.Equal(t, "timesheet-gen-v2", merged[0].Repositories[0].Namespace)
	assert.Equal(t, "/home/jim/timesheet-gen-v2", merged[0].Repositories[0].RepoPath)
	assert.Equal(t, "billing-api", merged[0].Repositories[1].Namespace)
}

func TestUpsertAppendsNewNamespaceToExistingClient(t *testing.T) {
	doc := testDoc()

	record := testEntry("client-a", "alphabet", "new-service")
	merged := Upsert(doc, record)

	require.Len(t, merged, 2)
	assert.Len(t, merged[0].Repositories, 3)
}

func TestUpsertReplacesWholeEntry(t *testing.T) {
	doc := testDoc()

	record := testEntry("client-a", "alphabet", "timesheet-gen", "billing-api", "third")
	merged := Upsert(doc, record)

	require.Len(t, merged, 2)
	assert.Len(t, merged[0].Repositories, 3)
}

func TestUpsertAppendsUnknownClient(t *testing.T) {
	doc := testDoc()

	merged := Upsert(doc, testEntry("client-c", "charlie", "rockets"))

	require.Len(t, merged, 3)
	assert.Equal(t, "charlie", merged[2].Client.Name)
}

func TestUpsertBootstrapsEmptyDocument(t *testing.T) {
	var doc Document

	merged := Upsert(doc, testEntry("client-a", "alphabet", "timesheet-gen"))

	require.Len(t, merged, 1)
	assert.Equal(t, "alphabet", merged[0].Client.Name)
}

func TestUpsertMatchesByNameWhenIDsMissing(t *testing.T) {
	doc := testDoc()
	doc[0].Client.ID = ""

	record := testEntry("", "ALPHABET", "timesheet-gen")
	merged := Upsert(doc, record)

	assert.Len(t, merged, 2)
}

func TestRemoveRepository(t *testing.T) {
	doc := testDoc()

	pruned, err := RemoveRepository(doc, "", "billing-api")
	require.NoError(t, err)
	assert.Len(t, pruned[0].Repositories, 1)
	assert.Len(t, pruned[1].Repositories, 1)
}

func TestRemoveRepositoryCaseInsensitive(t *testing.T) {
	doc := testDoc()

	pruned, err := RemoveRepository(doc, "alphabet", "BILLING-API")
	require.NoError(t, err)
	assert.Len(t, pruned[0].Repositories, 1)
}

func TestRemoveRepositoryNotFound(t *testing.T) {
	doc := testDoc()

	got, err := RemoveRepository(doc, "", "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, testDoc(), got)
}

func TestRemoveRepositoryWrongClient(t *testing.T) {
	doc := testDoc()

	_, err := RemoveRepository(doc, "bravo", "billing-api")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveClient(t *testing.T) {
	doc := testDoc()

	pruned, err := RemoveClient(doc, "Alphabet")
	require.NoError(t, err)
	require.Len(t, pruned, 1)
	assert.Equal(t, "bravo", pruned[0].Client.Name)
}

func TestRemoveClientNotFound(t *testing.T) {
	doc := testDoc()

	got, err := RemoveClient(doc, "delta")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, testDoc(), got)
}

func TestRemoveLastClientLeavesEmptyDocument(t *testing.T) {
	doc := Document{testEntry("client-a", "alphabet", "timesheet-gen")}

	pruned, err := RemoveClient(doc, "alphabet")
	require.NoError(t, err)
	assert.Empty(t, pruned)
}

func TestResolve(t *testing.T) {
	doc := testDoc()

	ci, ri, err := doc.Resolve(LookupByNamespace("billing-api"))
	require.NoError(t, err)
	assert.Equal(t, 0, ci)
	assert.Equal(t, 1, ri)

	ci, ri, err = doc.Resolve(LookupByPath("/home/jim/widgets"))
	require.NoError(t, err)
	assert.Equal(t, 1, ci)
	assert.Equal(t, 0, ri)

	ci, ri, err = doc.Resolve(LookupByClientName("BRAVO"))
	require.NoError(t, err)
	assert.Equal(t, 1, ci)
	assert.Equal(t, -1, ri)

	_, _, err = doc.Resolve(LookupByNamespace("nope"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveNamespaceAlias(t *testing.T) {
	doc := testDoc()
	doc[0].Repositories[0].NamespaceAlias = "Friendly Name"

	ci, ri, err := doc.Resolve(LookupByNamespace("friendly name"))
	require.NoError(t, err)
	assert.Equal(t, 0, ci)
	assert.Equal(t, 0, ri)
}
