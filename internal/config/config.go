package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PORT              string
	MONGO_URI         string
	DB_NAME           string
	JWT_SECRET        string
	STRIPE_SECRET_KEY string
	KAFKA_ADDRESS     string
	ES_URL            string
	ES_USER           string
	ES_PASSWORD       string
	LOG_LEVEL         string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:              os.Getenv("PORT"),
		MONGO_URI:         os.Getenv("MONGO_URI"),
		DB_NAME:           os.Getenv("DB_NAME"),
		JWT_SECRET:        os.Getenv("JWT_SECRET"),
		STRIPE_SECRET_KEY: os.Getenv("STRIPE_SECRET_KEY"),
		KAFKA_ADDRESS:     os.Getenv("KAFKA_ADDRESS"),
		ES_URL:            os.Getenv("ES_URL"),
		ES_USER:           os.Getenv("ES_USER"),
		ES_PASSWORD:       os.Getenv("ES_PASSWORD"),
		LOG_LEVEL:         os.Getenv("LOG_LEVEL"),
	}

	if config.PORT == "" {
		config.PORT = "3000"
	}
	if config.DB_NAME == "" {
		config.DB_NAME = "wholesale_market"
	}

	return config, nil
}
