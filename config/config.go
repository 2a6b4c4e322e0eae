package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mbolis/survey-studio/log"
)

type Storage string

const (
	StorageSQLite Storage = "sqlite"
	StorageRedis  Storage = "redis"
	StorageMongo  Storage = "mongo"
	StorageMemory Storage = "memory"
)

type Config struct {
	Addr    string
	Storage Storage

	DBUrl string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	MongoURI      string
	MongoDatabase string

	TokenSecret       string
	TokenTTL          time.Duration
	RefreshTTL        time.Duration
	AdminUser         string
	AdminPasswordHash string

	// SubmitRate is the number of runner requests allowed per minute per client IP.
	SubmitRate int

	LogLevel log.Level
	LogJSON  bool
}

// ParseFlags loads .env, then reads flags, settings.toml and QSURVEY_*
// environment variables, in increasing order of precedence for env and flags.
func ParseFlags() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded")
	}
	return Parse(os.Args[1:])
}

func Parse(args []string) (cfg Config, err error) {
	flags := pflag.NewFlagSet("qsurvey", pflag.ContinueOnError)
	flags.String("host", "0.0.0.0", "listen host name")
	flags.Uint("port", 80, "listen port number")
	flags.String("storage", string(StorageSQLite), "storage backend: sqlite, redis, mongo or memory")
	flags.String("db-url", "qsurvey.sqlite", "path to SQLite3 DB file")
	flags.String("redis-addr", "localhost:6379", "Redis server address")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database number")
	flags.String("redis-prefix", "qsurvey:", "prefix of every Redis key")
	flags.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	flags.String("mongo-database", "qsurvey", "MongoDB database name")
	flags.String("token-secret", "", "secret key for token encryption and decryption")
	flags.Uint("token-ttl", 120, "token TTL in seconds")
	flags.Uint("refresh-ttl", 8760, "refresh token TTL in hours")
	flags.String("admin-user", "admin", "admin user name")
	flags.String("admin-password-hash", "", "bcrypt hash of the admin password")
	flags.Int("submit-rate", 30, "runner requests per minute per client IP")
	flags.String("log-level", "info", "log level: fatal, error, warn, info or debug")
	flags.Bool("log-json", false, "log one JSON object per line")
	if err = flags.Parse(args); err != nil {
		return
	}

	v := viper.New()
	v.SetConfigName("settings")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	v.SetEnvPrefix("QSURVEY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err = v.BindPFlags(flags); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(v.GetString("host"), strconv.Itoa(v.GetInt("port")))
	cfg.Storage = Storage(v.GetString("storage"))
	cfg.DBUrl = v.GetString("db-url")
	cfg.RedisAddr = v.GetString("redis-addr")
	cfg.RedisPassword = v.GetString("redis-password")
	cfg.RedisDB = v.GetInt("redis-db")
	cfg.RedisPrefix = v.GetString("redis-prefix")
	cfg.MongoURI = v.GetString("mongo-uri")
	cfg.MongoDatabase = v.GetString("mongo-database")
	cfg.TokenSecret = v.GetString("token-secret")
	cfg.TokenTTL = time.Duration(v.GetInt("token-ttl")) * time.Second
	cfg.RefreshTTL = time.Duration(v.GetInt("refresh-ttl")) * time.Hour
	cfg.AdminUser = v.GetString("admin-user")
	cfg.AdminPasswordHash = v.GetString("admin-password-hash")
	cfg.SubmitRate = v.GetInt("submit-rate")
	cfg.LogJSON = v.GetBool("log-json")
	if cfg.LogLevel, err = log.ParseLevel(v.GetString("log-level")); err != nil {
		return
	}

	err = cfg.check()
	return
}

func (cfg Config) check() error {
	switch cfg.Storage {
	case StorageSQLite, StorageRedis, StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	if cfg.TokenSecret == "" {
		return errors.New("missing parameter --token-secret")
	}
	if cfg.AdminPasswordHash == "" {
		return errors.New("missing parameter --admin-password-hash")
	}
	if cfg.SubmitRate <= 0 {
		return fmt.Errorf("submit-rate must be positive, got %d", cfg.SubmitRate)
	}
	return nil
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
