package conf

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitPanic(t *testing.T) {
	asserts := assert.New(t)

	// unreadable path
	asserts.Panics(func() {
		Init("/")
	})

	// invalid section value
	testCase := `[System]
Listen = :5212
LogLevel = verbose`
	err := os.WriteFile("testConf.ini", []byte(testCase), 0644)
	defer func() { err = os.Remove("testConf.ini") }()
	if err != nil {
		panic(err)
	}
	asserts.Panics(func() {
		Init("testConf.ini")
	})
	SystemConfig.LogLevel = "info"
}

func TestInitDefault(t *testing.T) {
	asserts := assert.New(t)
	defer os.Remove("not_exist.ini")

	asserts.NotPanics(func() {
		Init("not_exist.ini")
	})
	asserts.FileExists("not_exist.ini")
	asserts.Len(SystemConfig.HashIDSalt, 64)
}

func TestLoad(t *testing.T) {
	asserts := assert.New(t)

	testCase := `[System]
Listen = :3000
LogLevel = warning
HashIDSalt = salt

[Database]
Type = mysql
User = root
Password = root
Host = 127.0.0.1
Name = docfold

[ObjectStore]
Endpoint = http://minio:9000
Bucket = docfold
Burst = 4
DeleteBatchSize = 500
`
	err := os.WriteFile("testConf.ini", []byte(testCase), 0644)
	defer func() { err = os.Remove("testConf.ini") }()
	if err != nil {
		panic(err)
	}

	os.Setenv("DF_CONF_Redis.Server", "127.0.0.1:6379")
	defer os.Unsetenv("DF_CONF_Redis.Server")

	asserts.NoError(Load("testConf.ini"))
	asserts.Equal(":3000", SystemConfig.Listen)
	asserts.Equal("salt", SystemConfig.HashIDSalt)
	asserts.Equal("X-Df-User", SystemConfig.UserHeader)
	asserts.Equal(MySqlDB, DatabaseConfig.Type)
	asserts.Equal("http://minio:9000", ObjectStoreConfig.Endpoint)
	asserts.Equal(500, ObjectStoreConfig.DeleteBatchSize)
	asserts.Equal(4, ObjectStoreConfig.Burst)
	asserts.Equal(int64(25<<20), ObjectStoreConfig.ChunkSize)
	asserts.Equal("127.0.0.1:6379", RedisConfig.Server)
}
