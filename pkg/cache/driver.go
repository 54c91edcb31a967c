package cache

import (
	"github.com/docfold/docfold/pkg/conf"
	"github.com/docfold/docfold/pkg/util"
)

// Store is the process-wide cache backend.
var Store Driver = NewMemoStore()

// Driver is a key/value cache.
type Driver interface {
	// Set stores value under key, expiring after ttl seconds. ttl <= 0 never expires.
	Set(key string, value interface{}, ttl int) error

	// Get loads key, reporting whether it was present.
	Get(key string) (interface{}, bool)

	// Gets loads prefix+key for every key, returning hits keyed without
	// prefix and the keys that missed.
	Gets(keys []string, prefix string) (map[string]interface{}, []string)

	// Sets stores every value under prefix+key.
	Sets(values map[string]interface{}, prefix string) error

	// Delete removes prefix+key for every key.
	Delete(keys []string, prefix string) error
}

// Init selects redis when a server is configured, the in-memory store otherwise.
func Init() {
	if conf.RedisConfig.Server != "" {
		Store = NewRedisStore(
			10,
			conf.RedisConfig.Network,
			conf.RedisConfig.Server,
			conf.RedisConfig.User,
			conf.RedisConfig.Password,
			conf.RedisConfig.DB,
		)
		util.Log().Info("Cache backed by redis at %q.", conf.RedisConfig.Server)
	}
}

// Set stores a value in the global store.
func Set(key string, value interface{}, ttl int) error {
	return Store.Set(key, value, ttl)
}

// Get loads a value from the global store.
func Get(key string) (interface{}, bool) {
	return Store.Get(key)
}

// Deletes removes keys from the global store.
func Deletes(keys []string, prefix string) error {
	return Store.Delete(keys, prefix)
}

// GetSettings loads string settings, returning hits and missed names.
func GetSettings(keys []string, prefix string) (map[string]string, []string) {
	raw, miss := Store.Gets(keys, prefix)

	res := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			res[k] = s
		} else {
			miss = append(miss, k)
		}
	}

	return res, miss
}

// SetSettings caches string settings without expiry.
func SetSettings(values map[string]string, prefix string) error {
	var toBeSet = make(map[string]interface{}, len(values))
	for key, value := range values {
		toBeSet[key] = value
	}
	return Store.Sets(toBeSet, prefix)
}
