package model

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/docfold/docfold/pkg/cache"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
)

var mock sqlmock.Sqlmock
var mockDB *gorm.DB

// TestMain replaces the catalog with a mocked connection
func TestMain(m *testing.M) {
	var db *sql.DB
	var err error
	db, mock, err = sqlmock.New()
	if err != nil {
		panic("An error was not expected when opening a stub database connection")
	}
	DB, _ = gorm.Open("mysql", db)
	mockDB = DB
	defer db.Close()
	m.Run()
}

func TestGetSettingByType(t *testing.T) {
	cache.Store = cache.NewMemoStore()
	asserts := assert.New(t)

	rows := sqlmock.NewRows([]string{"name", "value", "type"}).
		AddRow("transfer_chunk_size", "100", "transfer").
		AddRow("transfer_concurrency", "8", "transfer")
	mock.ExpectQuery("^SELECT \\* FROM `(.+)` WHERE `(.+)`\\.`deleted_at` IS NULL AND(.+)$").WillReturnRows(rows)
	settings := GetSettingByType([]string{"transfer"})
	asserts.Equal(map[string]string{
		"transfer_chunk_size":  "100",
		"transfer_concurrency": "8",
	}, settings)
	asserts.NoError(mock.ExpectationsWereMet())
}

func TestGetSettingByName(t *testing.T) {
	cache.Store = cache.NewMemoStore()
	asserts := assert.New(t)

	// found in catalog
	rows := sqlmock.NewRows([]string{"name", "value", "type"}).AddRow("max_name_attempts", "999", "transfer")
	mock.ExpectQuery("^SELECT \\* FROM `(.+)` WHERE `(.+)`\\.`deleted_at` IS NULL AND(.+)$").WillReturnRows(rows)
	asserts.Equal("999", GetSettingByName("max_name_attempts"))
	asserts.NoError(mock.ExpectationsWereMet())

	// served from cache
	asserts.Equal("999", GetSettingByName("max_name_attempts"))
	asserts.NoError(mock.ExpectationsWereMet())

	// missing
	mock.ExpectQuery("^SELECT \\* FROM `(.+)` WHERE `(.+)`\\.`deleted_at` IS NULL AND(.+)$").
		WillReturnRows(sqlmock.NewRows([]string{"name", "value", "type"}))
	asserts.Equal("fallback", GetSettingByNameWithDefault("nope", "fallback"))
	asserts.NoError(mock.ExpectationsWereMet())
}

func TestGetSettingByNames(t *testing.T) {
	cache.Store = cache.NewMemoStore()
	asserts := assert.New(t)
	asserts.NoError(cache.Set(settingCachePrefix+"cached", "1", -1))

	rows := sqlmock.NewRows([]string{"name", "value", "type"}).AddRow("fresh", "2", "basic")
	mock.ExpectQuery("^SELECT \\* FROM `(.+)` WHERE `(.+)`\\.`deleted_at` IS NULL AND(.+)$").WillReturnRows(rows)
	res := GetSettingByNames("cached", "fresh")
	asserts.Equal(map[string]string{"cached": "1", "fresh": "2"}, res)
	asserts.NoError(mock.ExpectationsWereMet())

	// both cached now
	res = GetSettingByNames("cached", "fresh")
	asserts.Equal(map[string]string{"cached": "1", "fresh": "2"}, res)
	asserts.NoError(mock.ExpectationsWereMet())
}

func TestGetIntSetting(t *testing.T) {
	cache.Store = cache.NewMemoStore()
	asserts := assert.New(t)
	asserts.NoError(cache.Set(settingCachePrefix+"int", "42", -1))
	asserts.NoError(cache.Set(settingCachePrefix+"bad", "abc", -1))
	asserts.NoError(cache.Set(settingCachePrefix+"seconds", "120", -1))

	asserts.Equal(42, GetIntSetting("int", 1))
	asserts.Equal(1, GetIntSetting("bad", 1))
	asserts.Equal(120*time.Second, GetDurationSetting("seconds", time.Second))
	asserts.Equal(time.Second, GetDurationSetting("bad", time.Second))
}

func TestIsTrueVal(t *testing.T) {
	asserts := assert.New(t)

	asserts.True(IsTrueVal("1"))
	asserts.True(IsTrueVal("true"))
	asserts.False(IsTrueVal("0"))
	asserts.False(IsTrueVal("false"))
}
