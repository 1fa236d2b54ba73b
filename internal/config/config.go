package config

import "time"

// Config is the root application configuration.
type Config struct {
	Translator TranslatorConfig `yaml:"translator"`
	Bing       BingConfig       `yaml:"bing"`
	Google     GoogleConfig     `yaml:"google"`
	Store      StoreConfig      `yaml:"store"`
	Log        LogConfig        `yaml:"log"`
}

// TranslatorConfig selects the translation method and its prompt options.
// The prompt flags default to true in Load rather than through env-default,
// which cleanenv would re-apply over an explicit false from YAML.
type TranslatorConfig struct {
	Method         string        `yaml:"method"          env:"TRANSLATOR_METHOD"          env-default:"sliding_window_bing"`
	GroupBy        int           `yaml:"group_by"        env:"TRANSLATOR_GROUP_BY"        env-default:"3"`
	AddOr          bool          `yaml:"add_or"          env:"TRANSLATOR_ADD_OR"`
	AddQuotes      bool          `yaml:"add_quotes"      env:"TRANSLATOR_ADD_QUOTES"`
	CombineInOne   bool          `yaml:"combine_in_one"  env:"TRANSLATOR_COMBINE_IN_ONE"`
	AddAuxWords    bool          `yaml:"add_aux_words"   env:"TRANSLATOR_ADD_AUX_WORDS"`
	SourceLanguage string        `yaml:"source_language" env:"TRANSLATOR_SOURCE_LANGUAGE" env-default:"en"`
	TargetLanguage string        `yaml:"target_language" env:"TRANSLATOR_TARGET_LANGUAGE" env-default:"uk"`
	Sleep          time.Duration `yaml:"sleep"           env:"TRANSLATOR_SLEEP"           env-default:"1s"`
	BatchSize      int           `yaml:"batch_size"      env:"TRANSLATOR_BATCH_SIZE"      env-default:"100"`
	// PricePerMB overrides the provider list price used by estimates. Zero keeps the default.
	PricePerMB float64 `yaml:"price_per_mb" env:"TRANSLATOR_PRICE_PER_MB" env-default:"0"`
}

// BingConfig holds Microsoft Translator settings.
type BingConfig struct {
	// KeyFile is a JSON object of request headers carrying the subscription key.
	KeyFile  string `yaml:"key_file" env:"BING_KEY_FILE"`
	Endpoint string `yaml:"endpoint" env:"BING_ENDPOINT" env-default:"https://api.cognitive.microsofttranslator.com"`
}

// GoogleConfig holds Cloud Translation settings.
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Endpoint        string `yaml:"endpoint"         env:"GOOGLE_TRANSLATE_ENDPOINT"`
}

// StoreConfig selects the task store backend.
type StoreConfig struct {
	Driver   string         `yaml:"driver"   env:"STORE_DRIVER" env-default:"mongo"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres DatabaseConfig `yaml:"postgres"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI            string        `yaml:"uri"             env:"MONGO_URI"             env-default:"mongodb://localhost:27017/"`
	Database       string        `yaml:"database"        env:"MONGO_DATABASE"        env-default:"wordnet"`
	Collection     string        `yaml:"collection"      env:"MONGO_COLLECTION"      env-default:"tasks"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)
