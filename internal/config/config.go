package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// StoreDriver selects the backend: memory (default), postgres, sqlite.
	StoreDriver string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	SQLitePath string

	SeedDemoData bool
}

func Load() *Config {
	// Best effort; a missing .env just means plain environment variables.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		driver = "memory"
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432 // fallback
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "smart-todo.db"
	}

	seed, _ := strconv.ParseBool(os.Getenv("SEED_DEMO_DATA"))

	return &Config{
		Port:        port,
		StoreDriver: driver,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     dbPort,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		SQLitePath: sqlitePath,

		SeedDemoData: seed,
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
