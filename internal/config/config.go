// Package config — загрузка окружения процесса при старте.
// Все обязательные переменные читаются один раз в main и дальше внедряются
// явно, по месту из окружения ничего не достается.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv подхватывает .env рядом с бинарем; его отсутствие не ошибка —
// в проде переменные приходят из окружения
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using process environment")
	}
}

// GetEnv возвращает обязательную переменную; без нее процесс не стартует
func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("environment variable %s is not set", key)
	}
	return value
}
