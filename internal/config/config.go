package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	// AI provider
	AIProvider    string
	GeminiAPIKey  string
	ModelID       string // optional; each provider falls back to its own default
	OllamaBaseURL string
	OllamaModel   string

	// Course store
	StoreBackend  string // file | db | redis
	CoursesDir    string
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Session
	SessionJWTSecret string
	HistoryFile      string
}

// Load reads configuration from a .env file (if present) and the process
// environment, applying defaults. Validation of required secrets happens at
// startup, not here.
func Load() Config {
	_ = godotenv.Load()

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	provider := os.Getenv("AI_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	ollamaBaseURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434"
	}
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "llama3:latest"
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "file"
	}

	coursesDir := os.Getenv("COURSES_DIR")
	if coursesDir == "" {
		coursesDir = "courses"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}
	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	secret := os.Getenv("SESSION_JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	historyFile := os.Getenv("HISTORY_FILE")
	if historyFile == "" {
		historyFile = "history.json"
	}

	return Config{
		HTTPAddr: httpAddr,

		AIProvider:    provider,
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		ModelID:       os.Getenv("MODEL_ID"),
		OllamaBaseURL: ollamaBaseURL,
		OllamaModel:   ollamaModel,

		StoreBackend:  backend,
		CoursesDir:    coursesDir,
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     redisAddr,
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		SessionJWTSecret: secret,
		HistoryFile:      historyFile,
	}
}
