package main

import (
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/jmliang/coursenotes/internal/ai"
	"github.com/jmliang/coursenotes/internal/config"
	"github.com/jmliang/coursenotes/internal/course"
	"github.com/jmliang/coursenotes/internal/extract"
	"github.com/jmliang/coursenotes/internal/httpapi"
	"github.com/jmliang/coursenotes/internal/session"
)

func main() {
	cfg := config.Load()

	reg := newProviderRegistry(cfg)

	// Missing credentials for the selected provider abort startup.
	provider, err := reg.Get(cfg.AIProvider, cfg.ModelID)
	if err != nil {
		log.Fatalf("ai provider: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("course store: %v", err)
	}

	svc := session.NewService(store, provider, extract.NewPDFExtractor(), cfg.HistoryFile)
	r := httpapi.NewRouter(cfg, svc)

	log.Printf("coursenotes listening on %s (store=%s provider=%s)", cfg.HTTPAddr, cfg.StoreBackend, cfg.AIProvider)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

// newProviderRegistry wires the known providers. MODEL_ID is optional; when
// it is unset each factory applies its provider's own default model, so the
// ollama fallback never inherits a Gemini model name.
func newProviderRegistry(cfg config.Config) *ai.Registry {
	reg := ai.NewRegistry()
	reg.Register("gemini", func(model string) (ai.Provider, error) {
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY not found in environment")
		}
		if model == "" {
			model = cfg.ModelID
		}
		return ai.NewGeminiProvider(cfg.GeminiAPIKey, model), nil
	})
	reg.Register("ollama", func(model string) (ai.Provider, error) {
		if model == "" {
			model = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, model), nil
	})
	return reg
}

func openStore(cfg config.Config) (course.Store, error) {
	switch cfg.StoreBackend {
	case "file":
		return course.NewFileStore(cfg.CoursesDir)
	case "db":
		if cfg.DBDSN == "" {
			return nil, errors.New("DB_DSN is required for the db backend")
		}
		db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return course.NewDBStore(db)
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return course.NewRedisStore(rdb), nil
	default:
		return nil, errors.New("unknown STORE_BACKEND: " + cfg.StoreBackend)
	}
}
