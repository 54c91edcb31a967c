package user

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/serializer"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
)

var mock sqlmock.Sqlmock

func TestMain(m *testing.M) {
	var db *sql.DB
	var err error
	db, mock, err = sqlmock.New()
	if err != nil {
		panic("An error was not expected when opening a stub database connection")
	}
	model.DB, _ = gorm.Open("mysql", db)
	defer db.Close()
	m.Run()
}

func TestNotificationService_List(t *testing.T) {
	asserts := assert.New(t)
	user := &model.User{}
	user.ID = 2

	// default limit
	{
		service := &NotificationService{}
		mock.ExpectQuery("SELECT(.+)notifications(.+)").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content"}).AddRow(3, "Copied", "2 items"))
		res := service.List(nil, user)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.Equal(0, res.Code)
		list := res.Data.([]Notification)
		asserts.Len(list, 1)
		asserts.EqualValues(3, list[0].ID)
		asserts.Equal("Copied", list[0].Title)
	}

	// query error
	{
		service := &NotificationService{Limit: 5}
		mock.ExpectQuery("SELECT(.+)notifications(.+)").WillReturnError(errors.New("error"))
		res := service.List(nil, user)
		asserts.NoError(mock.ExpectationsWereMet())
		asserts.Equal(serializer.CodeDBReadError, res.Code)
		asserts.True(res.Retryable)
	}
}
