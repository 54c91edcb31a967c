package model

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

// DB is the catalog connection.
var DB *gorm.DB

// Init opens the catalog and applies pending migrations.
func Init() {
	util.Log().Info("Initializing database connection...")

	var (
		db  *gorm.DB
		err error
	)

	if gin.Mode() == gin.TestMode {
		db, err = openSQLite(":memory:")
	} else {
		switch conf.DatabaseConfig.Type {
		case "", conf.SQLiteDB, conf.SQLite3DB:
			db, err = openSQLite(util.RelativePath(conf.DatabaseConfig.DBFile))
		case conf.PostgresDB:
			db, err = gorm.Open("postgres", fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
				conf.DatabaseConfig.Host,
				conf.DatabaseConfig.User,
				conf.DatabaseConfig.Password,
				conf.DatabaseConfig.Name,
				conf.DatabaseConfig.Port,
				conf.DatabaseConfig.SSLMode,
			))
		case conf.MySqlDB:
			db, err = gorm.Open("mysql", fmt.Sprintf("%s:%s@(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
				conf.DatabaseConfig.User,
				conf.DatabaseConfig.Password,
				conf.DatabaseConfig.Host,
				conf.DatabaseConfig.Port,
				conf.DatabaseConfig.Name,
				conf.DatabaseConfig.Charset,
			))
		default:
			util.Log().Panic("Unsupported database type %q.", conf.DatabaseConfig.Type)
		}
	}

	if err != nil {
		util.Log().Panic("Failed to connect to database: %s", err)
	}

	gorm.DefaultTableNameHandler = func(db *gorm.DB, defaultTableName string) string {
		return conf.DatabaseConfig.TablePrefix + defaultTableName
	}

	if conf.SystemConfig.Debug {
		db.LogMode(true)
	}

	db.DB().SetMaxIdleConns(50)
	if conf.DatabaseConfig.Type == "" || conf.DatabaseConfig.Type == conf.SQLiteDB || conf.DatabaseConfig.Type == conf.SQLite3DB {
		// SQLite allows a single writer
		db.DB().SetMaxOpenConns(1)
	} else {
		db.DB().SetMaxOpenConns(100)
	}
	db.DB().SetConnMaxLifetime(time.Second * 30)

	DB = db

	migration()
}

// openSQLite opens a file with the pure Go driver and hands it to gorm's sqlite3 dialect.
func openSQLite(path string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}

	return gorm.Open("sqlite3", sqlDB)
}
