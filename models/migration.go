package model

import (
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/util"
	"github.com/jinzhu/gorm"
)

// needMigration reports whether the schema version marker is missing.
func needMigration() bool {
	var setting Setting
	return DB.Where("name = ?", "db_version_"+conf.RequiredDBVersion).First(&setting).Error != nil
}

// migration creates the schema and seeds defaults.
func migration() {
	if !needMigration() {
		util.Log().Info("Database version matched, skipping migration.")
		return
	}

	util.Log().Info("Start initializing database schema...")

	if conf.DatabaseConfig.Type == conf.MySqlDB {
		DB = DB.Set("gorm:table_options", "ENGINE=InnoDB")
	}

	DB.AutoMigrate(&User{}, &Setting{}, &Group{}, &Folder{}, &File{}, &Notification{})

	addDefaultSettings()
	addDefaultGroups()
	addDefaultUser()

	util.Log().Info("Database schema initialized.")
}

func addDefaultSettings() {
	for _, value := range defaultSettings {
		DB.Where(Setting{Name: value.Name}).Create(&value)
	}
}

func addDefaultGroups() {
	_, err := GetGroupByID(1)
	if gorm.IsRecordNotFoundError(err) {
		defaultAdminGroup := Group{
			Name:  "Admin",
			Admin: true,
		}
		if err := DB.Create(&defaultAdminGroup).Error; err != nil {
			util.Log().Panic("Failed to create admin user group: %s", err)
		}
	}

	_, err = GetGroupByID(2)
	if gorm.IsRecordNotFoundError(err) {
		defaultUserGroup := Group{
			Name:       "User",
			MaxStorage: 1 << 30,
		}
		if err := DB.Create(&defaultUserGroup).Error; err != nil {
			util.Log().Panic("Failed to create initial user group: %s", err)
		}
	}
}

func addDefaultUser() {
	_, err := GetUserByID(1)
	if gorm.IsRecordNotFoundError(err) {
		defaultUser := User{
			Email:   "admin@docfold.local",
			Nick:    "admin",
			Status:  Active,
			GroupID: 1,
		}
		if err := DB.Create(&defaultUser).Error; err != nil {
			util.Log().Panic("Failed to create initial admin user: %s", err)
		}
	}
}
