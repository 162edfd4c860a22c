package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/Tomlord1122/taskflow/internal/domain"
)

// StoreKind selects the slot repository backend.
type StoreKind string

const (
	StorePostgres StoreKind = "postgres"
	StoreAzure    StoreKind = "azure"
	StoreMemory   StoreKind = "memory"
)

const defaultPort = 8080

// Database holds the Postgres connection settings.
type Database struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Schema   string
}

// DSN builds a gorm postgres DSN.
func (d Database) DSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.Username, d.Password, d.Name, d.Port)
	if d.Schema != "" {
		dsn += " search_path=" + d.Schema
	}
	return dsn
}

// Config is the process configuration, read from the environment and an
// optional .env file.
type Config struct {
	Port  int
	Store StoreKind
	// StoreDefaulted is set when Store fell back to memory because neither
	// TASKFLOW_STORE nor a database host was configured.
	StoreDefaulted bool
	Database       Database

	TableConnectionString string
	TableName             string

	RedisURL    string
	AssetOrigin string

	GeminiAPIKey string
	GeminiModel  string

	RestorePolicy domain.RestorePolicy
	Debug         bool
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		Port: defaultPort,
		Database: Database{
			Host:     get("BLUEPRINT_DB_HOST"),
			Port:     get("BLUEPRINT_DB_PORT"),
			Username: get("BLUEPRINT_DB_USERNAME"),
			Password: get("BLUEPRINT_DB_PASSWORD"),
			Name:     get("BLUEPRINT_DB_DATABASE"),
			Schema:   get("BLUEPRINT_DB_SCHEMA"),
		},
		TableConnectionString: get("STORAGE_CONNECTION_STRING"),
		TableName:             get("TASKFLOW_TABLE"),
		RedisURL:              get("REDIS_URL"),
		AssetOrigin:           get("ASSET_ORIGIN"),
		GeminiAPIKey:          get("GEMINI_API_KEY"),
		GeminiModel:           get("GEMINI_MODEL"),
	}

	if portStr := get("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			log.Warnf("Invalid PORT environment variable '%s'. Using default %d.", portStr, defaultPort)
		} else {
			cfg.Port = port
		}
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = get("API_KEY")
	}
	if cfg.TableName == "" {
		cfg.TableName = "taskflowslots"
	}

	switch kind := StoreKind(strings.ToLower(get("TASKFLOW_STORE"))); kind {
	case "":
		if cfg.Database.Host != "" {
			cfg.Store = StorePostgres
		} else {
			cfg.Store = StoreMemory
			cfg.StoreDefaulted = true
		}
	case StorePostgres, StoreAzure, StoreMemory:
		cfg.Store = kind
	default:
		return nil, fmt.Errorf("invalid TASKFLOW_STORE %q", kind)
	}
	if cfg.Store == StoreAzure && cfg.TableConnectionString == "" {
		return nil, fmt.Errorf("TASKFLOW_STORE=azure requires STORAGE_CONNECTION_STRING")
	}

	policy, err := domain.ParseRestorePolicy(get("RESTORE_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESTORE_POLICY: %w", err)
	}
	cfg.RestorePolicy = policy

	if dbg, err := strconv.ParseBool(get("DEBUG")); err == nil {
		cfg.Debug = dbg
	}
	return cfg, nil
}

// ApplyLogging sets the global log level from the configuration.
func (c *Config) ApplyLogging() {
	if c.Debug {
		log.SetLevel(log.DebugLevel)
	}
}
