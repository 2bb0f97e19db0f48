package initializers

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on environment variables")
	}
}
