package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/docfold/docfold/pkg/util"
	"github.com/go-ini/ini"
	"github.com/go-playground/validator/v10"
)

const (
	envConfOverrideKey = "DF_CONF_"
)

const defaultConf = `[System]
Debug = false
Listen = :5212
LogLevel = info
HashIDSalt = {HashIDSalt}
`

// Init loads the config file at path, creating a default one when it does
// not exist. Any failure is fatal.
func Init(path string) {
	if err := Load(path); err != nil {
		util.Log().Panic("%s", err)
	}
}

// Load parses the config file at path into the package level config structs.
func Load(path string) error {
	if path == "" || !util.Exists(path) {
		util.Log().Info("Config file %q not found, creating a new one.", path)
		confContent := util.Replace(map[string]string{
			"{HashIDSalt}": util.RandStringRunes(64),
		}, defaultConf)
		f, err := util.CreatNestedFile(path)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		_, err = f.WriteString(confContent)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
	}

	cfg, err := ini.Load(path, []byte(getOverrideConfFromEnv()))
	if err != nil {
		return fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	sections := map[string]interface{}{
		"System":      SystemConfig,
		"Database":    DatabaseConfig,
		"Redis":       RedisConfig,
		"ObjectStore": ObjectStoreConfig,
		"CORS":        CORSConfig,
	}
	for sectionName, sectionStruct := range sections {
		if err := mapSection(cfg, sectionName, sectionStruct); err != nil {
			return fmt.Errorf("failed to parse config section %q: %w", sectionName, err)
		}
	}

	util.BuildLogger(SystemConfig.LogLevel)
	return nil
}

// mapSection maps one section onto confStruct and validates the result.
func mapSection(cfg *ini.File, section string, confStruct interface{}) error {
	err := cfg.Section(section).MapTo(confStruct)
	if err != nil {
		return err
	}

	validate := validator.New()
	return validate.Struct(confStruct)
}

func getOverrideConfFromEnv() string {
	confMaps := make(map[string]map[string]string)
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envConfOverrideKey) {
			continue
		}

		kv := strings.SplitN(env, "=", 2)
		configKey := strings.TrimPrefix(kv[0], envConfOverrideKey)
		sectionKey := strings.SplitN(configKey, ".", 2)
		if len(sectionKey) != 2 {
			continue
		}

		if confMaps[sectionKey[0]] == nil {
			confMaps[sectionKey[0]] = make(map[string]string)
		}

		confMaps[sectionKey[0]][sectionKey[1]] = kv[1]
		util.Log().Info("Override config %q = %q", configKey, kv[1])
	}

	var sb strings.Builder
	for section, kvs := range confMaps {
		sb.WriteString(fmt.Sprintf("[%s]\n", section))
		for k, v := range kvs {
			sb.WriteString(fmt.Sprintf("%s = %s\n", k, v))
		}
	}

	return sb.String()
}
