package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	// Expected admin credential pair. Injected, never hard-coded: the
	// lifecycle core stays free of identity concerns.
	AdminEmail    string
	AdminPassword string

	JWTSecret     string
	TokenTTLMins  int
	IdempTTLSecs  int
	WatchTickSecs int

	// Payee for outbound UPI payment links.
	UPIAddress   string
	UPIPayeeName string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "edfund"),
		MySQLUser: getenv("MYSQL_USER", "edfund"),
		MySQLPass: getenv("MYSQL_PASS", "edfund"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		AdminEmail:    getenv("ADMIN_EMAIL", ""),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),

		JWTSecret:     getenv("JWT_SECRET", ""),
		TokenTTLMins:  getenvInt("TOKEN_TTL_MINUTES", 60),
		IdempTTLSecs:  getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		WatchTickSecs: getenvInt("WATCH_TICK_SECONDS", 60),

		UPIAddress:   getenv("UPI_ADDRESS", ""),
		UPIPayeeName: getenv("UPI_PAYEE_NAME", "EdFund"),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return errors.New("missing admin credentials (ADMIN_EMAIL/ADMIN_PASSWORD)")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
