package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/kerjalink/kerjalink/internal/pkg/models"
)

// InitConfig loads configuration from an optional YAML file and the process
// environment. Every key has a default so the service can boot in local dev
// with nothing but JWT_SECRET set.
func InitConfig(configPath string) *models.Config {
	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Error reading config file: %s", err)
		}
	}

	configs := &models.Config{}
	if err := v.Unmarshal(configs); err != nil {
		log.Printf("Warning: failed to unmarshal config, using defaults: %v", err)
	}

	return configs
}

func setDefaults(v *viper.Viper) {
	// App config
	v.SetDefault("app.name", "kerjalink-identity")
	v.SetDefault("app.environment", "local")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "development")

	// Server config
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 9990)
	v.SetDefault("server.readtimeout", 10)
	v.SetDefault("server.writetimeout", 10)
	v.SetDefault("server.shutdowntimeout", 30)

	// Database config
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", "kerjalink")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxconns", 10)
	v.SetDefault("database.idleconns", 2)

	// Redis config
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.poolsize", 10)

	// NSQ config
	v.SetDefault("nsq.address", "localhost:4150")

	// JWT config
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", 1440) // minutes; sessions live 24 hours
	v.SetDefault("jwt.issuer", "kerjalink")

	// OTP config
	v.SetDefault("otp.ttlseconds", 300)
	v.SetDefault("otp.codelength", 6)

	// Logger config
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.filepath", "")
}
