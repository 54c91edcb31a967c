package conf

type DBType string

var (
	SQLiteDB   DBType = "sqlite"
	SQLite3DB  DBType = "sqlite3"
	MySqlDB    DBType = "mysql"
	PostgresDB DBType = "postgres"
)

// Database catalog connection
type Database struct {
	Type        DBType `validate:"omitempty,oneof=sqlite sqlite3 mysql postgres"`
	User        string
	Password    string
	Host        string
	Name        string
	TablePrefix string
	DBFile      string
	Port        int
	Charset     string
	SSLMode     string
}

// System common settings
type System struct {
	Listen     string `validate:"required"`
	Debug      bool
	LogLevel   string `validate:"oneof=debug info warning error"`
	HashIDSalt string
	// UserHeader carries the hashed ID of the user resolved by the gateway.
	UserHeader string `validate:"required"`
}

// Redis cache server, leave Server empty to use the in-memory cache.
type Redis struct {
	Network  string
	Server   string
	User     string
	Password string
	DB       string
}

// ObjectStore S3 compatible bucket
type ObjectStore struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKey       string
	SecretKey       string
	ForcePathStyle  bool
	ChunkSize       int64 `validate:"gte=5242880"`
	DeleteBatchSize int   `validate:"gte=1,lte=1000"`
	// OpsPerSecond caps copy requests, 0 means unlimited.
	OpsPerSecond float64 `validate:"gte=0"`
	Burst        int     `validate:"gte=1"`
}

// Cors cross origin settings
type Cors struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
	ExposeHeaders    []string
}
