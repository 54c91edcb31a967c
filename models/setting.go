package model

import (
	"strconv"
	"time"

	"github.com/docfold/docfold/pkg/cache"
	"github.com/jinzhu/gorm"
)

const settingCachePrefix = "setting_"

// Setting is a runtime tunable stored in the catalog.
type Setting struct {
	gorm.Model
	Type  string `gorm:"not null"`
	Name  string `gorm:"unique;not null;index:setting_key"`
	Value string `gorm:"size:65535"`
}

// IsTrueVal reports whether a setting value means enabled.
func IsTrueVal(val string) bool {
	return val == "1" || val == "true"
}

// GetSettingByName reads one setting, preferring the cache.
func GetSettingByName(name string) string {
	return GetSettingByNameWithDefault(name, "")
}

// GetSettingByNameWithDefault reads one setting, returning fallback when absent.
func GetSettingByNameWithDefault(name, fallback string) string {
	var setting Setting

	cacheKey := settingCachePrefix + name
	if optionValue, ok := cache.Get(cacheKey); ok {
		if v, ok := optionValue.(string); ok {
			return v
		}
	}

	result := DB.Where("name = ?", name).First(&setting)
	if result.Error == nil {
		_ = cache.Set(cacheKey, setting.Value, -1)
		return setting.Value
	}
	return fallback
}

// GetSettingByNames reads several settings, querying only cache misses.
func GetSettingByNames(names ...string) map[string]string {
	var queryRes []Setting
	res, miss := cache.GetSettings(names, settingCachePrefix)

	if len(miss) > 0 {
		DB.Where("name IN (?)", miss).Find(&queryRes)
		fresh := make(map[string]string, len(queryRes))
		for _, setting := range queryRes {
			res[setting.Name] = setting.Value
			fresh[setting.Name] = setting.Value
		}
		_ = cache.SetSettings(fresh, settingCachePrefix)
	}

	return res
}

// GetSettingByType reads every setting of the given groups.
func GetSettingByType(types []string) map[string]string {
	var queryRes []Setting
	res := make(map[string]string)

	DB.Where("type IN (?)", types).Find(&queryRes)
	for _, setting := range queryRes {
		res[setting.Name] = setting.Value
	}

	return res
}

// GetIntSetting reads an integer setting, returning fallback when absent or malformed.
func GetIntSetting(key string, fallback int) int {
	res, err := strconv.Atoi(GetSettingByName(key))
	if err != nil {
		return fallback
	}
	return res
}

// GetDurationSetting reads a setting holding seconds.
func GetDurationSetting(key string, fallback time.Duration) time.Duration {
	res, err := strconv.Atoi(GetSettingByName(key))
	if err != nil || res < 0 {
		return fallback
	}
	return time.Duration(res) * time.Second
}
