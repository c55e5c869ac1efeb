package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config собирается один раз при старте процесса и передается
// по ссылке тем, кому нужен - глобального состояния нет
type Config struct {
	ListenAddr     string
	DatabaseURL    string
	JWTSecret      string
	AccessTokenTTL time.Duration

	ScheduleLogFile string
	ProfileLogFile  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %s", err.Error())
	}

	cfg := &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", "hr.db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MIN", 60)) * time.Minute,
		ScheduleLogFile: getEnv("SCHEDULE_LOG_FILE", "schedule_changes.log"),
		ProfileLogFile:  getEnv("PROFILE_LOG_FILE", "profile_changes.log"),
	}

	if cfg.JWTSecret == "" {
		logrus.Fatal("could not get jwt secret")
	}

	return cfg
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
