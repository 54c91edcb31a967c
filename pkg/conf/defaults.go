package conf

// RedisConfig defaults to the in-memory cache
var RedisConfig = &Redis{
	Network:  "tcp",
	Server:   "",
	Password: "",
	DB:       "0",
}

// DatabaseConfig defaults to a local SQLite file
var DatabaseConfig = &Database{
	Type:    "",
	Charset: "utf8mb4",
	DBFile:  "docfold.db",
	Port:    3306,
	SSLMode: "disable",
}

// SystemConfig common defaults
var SystemConfig = &System{
	Debug:      false,
	Listen:     ":5212",
	LogLevel:   "info",
	UserHeader: "X-Df-User",
}

// ObjectStoreConfig bucket defaults
var ObjectStoreConfig = &ObjectStore{
	Region:          "us-east-1",
	ForcePathStyle:  true,
	ChunkSize:       25 << 20,
	DeleteBatchSize: 1000,
	OpsPerSecond:    0,
	Burst:           1,
}

// CORSConfig cross origin defaults
var CORSConfig = &Cors{
	AllowOrigins:     []string{"UNSET"},
	AllowMethods:     []string{"PUT", "POST", "GET", "PATCH", "DELETE", "OPTIONS"},
	AllowHeaders:     []string{"Authorization", "Content-Length", "Content-Type", "X-Df-User", "X-Df-FileName"},
	AllowCredentials: false,
	ExposeHeaders:    nil,
}
