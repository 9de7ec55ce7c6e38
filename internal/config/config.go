package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Gateway GatewayConfig
	Store   StoreConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	GoogleGemini string
}

type GatewayConfig struct {
	Provider           string // "gemini"
	BaseURL            string
	TranscriptionModel string
	ImageModel         string
	TextModel          string
	TTSModel           string
	TTSVoice           string
	DefaultImageSize   string // "1K" | "2K" | "4K"
}

type StoreConfig struct {
	GuestbookFilePath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/village.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Gateway: GatewayConfig{
			Provider:           getEnv("GATEWAY_PROVIDER", "gemini"),
			BaseURL:            getEnv("GATEWAY_BASE_URL", ""),
			TranscriptionModel: getEnv("GATEWAY_TRANSCRIPTION_MODEL", "gemini-2.5-flash"),
			ImageModel:         getEnv("GATEWAY_IMAGE_MODEL", "gemini-3-pro-image-preview"),
			TextModel:          getEnv("GATEWAY_TEXT_MODEL", "gemini-3-pro-preview"),
			TTSModel:           getEnv("GATEWAY_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
			TTSVoice:           getEnv("GATEWAY_TTS_VOICE", "Kore"),
			DefaultImageSize:   getEnv("GATEWAY_DEFAULT_IMAGE_SIZE", "1K"),
		},
		Store: StoreConfig{
			GuestbookFilePath: getEnv("GUESTBOOK_FILE_PATH", "data/guestbook.snapshot"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
