package model

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var testScope = Scope{OwnerID: 1, Visibility: VisibilityShared}

func folderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "parent_id", "owner_id", "visibility"})
}

func TestGetFolderByID(t *testing.T) {
	asserts := assert.New(t)

	// found
	{
		mock.ExpectQuery("SELECT(.+)folders(.+)").
			WithArgs(1, "shared", "f1").
			WillReturnRows(folderRows().AddRow("f1", "docs", nil, 1, "shared"))
		folder, err := GetFolderByID("f1", testScope)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Equal("docs", folder.Name)
		asserts.Nil(folder.ParentID)
		asserts.Equal(testScope, folder.Scope())
	}

	// not found
	{
		mock.ExpectQuery("SELECT(.+)folders(.+)").WillReturnRows(folderRows())
		_, err := GetFolderByID("f1", testScope)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.Error(err)
	}
}

func TestGetFoldersByParent(t *testing.T) {
	asserts := assert.New(t)

	// root
	{
		mock.ExpectQuery("SELECT(.+)folders(.+)parent_id IS NULL(.+)").
			WillReturnRows(folderRows().AddRow("f1", "a", nil, 1, "shared"))
		folders, err := GetFoldersByParent(nil, testScope)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Len(folders, 1)
	}

	// nested
	{
		parent := "f1"
		mock.ExpectQuery("SELECT(.+)folders(.+)parent_id = \\?(.+)").
			WillReturnRows(folderRows().AddRow("f2", "b", "f1", 1, "shared"))
		folders, err := GetFoldersByParent(&parent, testScope)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Equal("f1", *folders[0].ParentID)
	}

	// many parents
	{
		mock.ExpectQuery("SELECT(.+)folders(.+)parent_id IN(.+)").
			WillReturnRows(folderRows().AddRow("f3", "c", "f1", 1, "shared").AddRow("f4", "d", "f2", 1, "shared"))
		folders, err := GetFoldersByParentIDs([]string{"f1", "f2"}, testScope)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Len(folders, 2)
	}
}

func TestTraceRoot(t *testing.T) {
	asserts := assert.New(t)

	// three levels
	{
		mock.ExpectQuery("SELECT(.+)folders(.+)").WillReturnRows(folderRows().AddRow("c", "c", "b", 1, "shared"))
		mock.ExpectQuery("SELECT(.+)folders(.+)").WillReturnRows(folderRows().AddRow("b", "b", "a", 1, "shared"))
		mock.ExpectQuery("SELECT(.+)folders(.+)").WillReturnRows(folderRows().AddRow("a", "a", nil, 1, "shared"))
		chain, err := TraceRoot("c", testScope, 10)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.NoError(err)
		asserts.Len(chain, 3)
		asserts.Equal("a", chain[0].ID)
		asserts.Equal("c", chain[2].ID)
	}

	// loop
	{
		mock.ExpectQuery("SELECT(.+)folders(.+)").WillReturnRows(folderRows().AddRow("a", "a", "b", 1, "shared"))
		mock.ExpectQuery("SELECT(.+)folders(.+)").WillReturnRows(folderRows().AddRow("b", "b", "a", 1, "shared"))
		_, err := TraceRoot("a", testScope, 10)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.True(errors.Is(err, ErrBrokenAncestry))
	}

	// missing ancestor
	{
		mock.ExpectQuery("SELECT(.+)folders(.+)").WillReturnRows(folderRows().AddRow("a", "a", "gone", 1, "shared"))
		mock.ExpectQuery("SELECT(.+)folders(.+)").WillReturnRows(folderRows())
		_, err := TraceRoot("a", testScope, 10)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.Error(err)
	}
}

func TestInsertFolders(t *testing.T) {
	asserts := assert.New(t)
	parent := "p"

	// nothing to insert
	asserts.NoError(InsertFolders(DB, nil))

	mock.ExpectExec("INSERT INTO folders \\(id,name,parent_id(.+)\\) VALUES \\((.+)\\),\\((.+)\\)").
		WillReturnResult(sqlmock.NewResult(0, 2))
	err := InsertFolders(DB, []Folder{
		{ID: "a", Name: "a", OwnerID: 1, Visibility: VisibilityShared},
		{ID: "b", Name: "b", ParentID: &parent, OwnerID: 1, Visibility: VisibilityShared},
	})
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.NoError(err)

	mock.ExpectExec("INSERT(.+)").WillReturnError(errors.New("error"))
	err = InsertFolders(DB, []Folder{{ID: "a"}})
	asserts.NoError(mock.ExpectationsWereMet())
	asserts.Error(err)
}

func TestFolderMutations(t *testing.T) {
	asserts := assert.New(t)
	parent := "p"

	mock.ExpectExec("UPDATE folders SET parent_id = CASE id WHEN \\? THEN \\? WHEN \\? THEN \\? END, "+
		"name = CASE id WHEN \\? THEN \\? WHEN \\? THEN \\? END, updated_at = \\? WHERE id IN \\(\\?,\\?\\)").
		WithArgs("a", "p", "b", nil, "a", "a (1)", "b", "b", sqlmock.AnyArg(), "a", "b").
		WillReturnResult(sqlmock.NewResult(0, 2))
	asserts.NoError(MoveFolders(DB, []FolderMove{
		{ID: "a", ParentID: &parent, Name: "a (1)"},
		{ID: "b", Name: "b"},
	}))
	asserts.NoError(mock.ExpectationsWereMet())

	asserts.NoError(MoveFolders(DB, nil))
	asserts.NoError(mock.ExpectationsWereMet())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)folders(.+)").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	asserts.NoError(RenameFolder(DB, "a", "b"))
	asserts.NoError(mock.ExpectationsWereMet())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE(.+)folders(.+)archived(.+)").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	asserts.NoError(SetFoldersArchived(DB, []string{"a", "b"}, true))
	asserts.NoError(mock.ExpectationsWereMet())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE(.+)folders(.+)").WillReturnError(errors.New("error"))
	mock.ExpectRollback()
	asserts.Error(DeleteFolderByIDs(DB, []string{"a"}))
	asserts.NoError(mock.ExpectationsWereMet())
}
