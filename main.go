package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"equipment-cloud/internal/audit"
	"equipment-cloud/internal/auth"
	"equipment-cloud/internal/dataset/application"
	dataset "equipment-cloud/internal/dataset/domain"
	datasetmemory "equipment-cloud/internal/dataset/infrastructure/memory"
	datasetpostgres "equipment-cloud/internal/dataset/infrastructure/postgres"
	datasetinterfaces "equipment-cloud/internal/dataset/interfaces"
	"equipment-cloud/internal/observability/metrics"
	"equipment-cloud/internal/report"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	var db *sql.DB
	var repo dataset.Repository
	var userStore auth.UserStore
	var auditLogger audit.Logger

	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
		repo = datasetpostgres.NewDatasetRepository(db, dataset.SystemClock{})
		userStore = auth.NewPostgresUserStore(db)
		auditLogger = audit.NewRepository(db)
	} else {
		logger.Printf("DATABASE_URL not set, using in-memory stores")
		repo = datasetmemory.NewDatasetRepository(dataset.SystemClock{})
		userStore = auth.NewMemoryUserStore()
	}

	metrics.Init(db, logger)

	reportCfg, err := report.LoadConfig()
	if err != nil {
		logger.Fatalf("report config error: %v", err)
	}

	ingestionService, err := application.NewIngestionService(repo)
	if err != nil {
		logger.Fatalf("ingestion service error: %v", err)
	}
	datasetService, err := application.NewDatasetService(repo, cfg.HistoryLimit)
	if err != nil {
		logger.Fatalf("dataset service error: %v", err)
	}
	datasetHandler, err := datasetinterfaces.NewDatasetHandler(ingestionService, datasetService, reportCfg, auditLogger)
	if err != nil {
		logger.Fatalf("dataset handler error: %v", err)
	}

	authService, err := auth.NewService(userStore, []byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		logger.Fatalf("auth service error: %v", err)
	}
	authHandler, err := auth.NewHandler(authService)
	if err != nil {
		logger.Fatalf("auth handler error: %v", err)
	}

	policy := auth.NewPolicy([]string{"/healthz", "/metrics", "/api/auth/"})
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/auth/", authHandler)
	mux.Handle("/api/datasets/", datasetHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL  string
	HTTPAddr     string
	JWTSecret    string
	HistoryLimit int
	TokenTTL     time.Duration
}

func loadConfig() config {
	return config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		HTTPAddr:     getenvDefault("HTTP_ADDR", ":8000"),
		JWTSecret:    getenvDefault("JWT_SECRET", "dev-secret"),
		HistoryLimit: getenvIntDefault("HISTORY_LIMIT", dataset.DefaultHistoryLimit),
		TokenTTL:     getenvDurationDefault("TOKEN_TTL", 24*time.Hour),
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDurationDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
