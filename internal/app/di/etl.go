package di

import (
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	catalogadapters "gamedeals_backend/internal/feature/catalog/adapters"
	etladapters "gamedeals_backend/internal/feature/etl/adapters"
	"gamedeals_backend/internal/feature/etl/adapters/cheapshark"
	"gamedeals_backend/internal/feature/etl/adapters/gog"
	"gamedeals_backend/internal/feature/etl/adapters/igdb"
	etlusecase "gamedeals_backend/internal/feature/etl/usecase"
	infrahttp "gamedeals_backend/internal/platform/http"
	"gamedeals_backend/internal/shared/ratelimiter"
	"gamedeals_backend/internal/shared/retry"
)

// defaultRates は基準通貨USDへの換算テーブルです。
// 為替APIを叩くほどの精度は不要なので固定値を使います。
var defaultRates = map[string]float64{
	"EUR": 1.08,
	"GBP": 1.27,
	"JPY": 0.0067,
	"PLN": 0.25,
	"RUB": 0.011,
	"CNY": 0.14,
	"BRL": 0.18,
}

// NewStoreAdapters creates the configured store adapters with their HTTP clients.
func NewStoreAdapters() []etlusecase.StoreAdapter {
	csCfg := cheapshark.LoadConfig()
	gogCfg := gog.LoadConfig()
	return []etlusecase.StoreAdapter{
		cheapshark.NewAdapter(csCfg, infrahttp.NewHTTPClient(csCfg.Timeout)),
		gog.NewAdapter(gogCfg, infrahttp.NewHTTPClient(gogCfg.Timeout)),
	}
}

// NewNormalizer creates the price normalizer with the fixed conversion table.
func NewNormalizer() *etlusecase.Normalizer {
	return etlusecase.NewNormalizer(os.Getenv("ETL_BASE_CURRENCY"), defaultRates)
}

// NewEnricher creates the IGDB metadata enricher, or nil when the
// Twitch credentials are not configured. The orchestrator treats a nil
// enricher as "no enrichment".
func NewEnricher(db *gorm.DB) etlusecase.Enricher {
	cfg := igdb.LoadConfig()
	if !cfg.Enabled() {
		return nil
	}
	client := igdb.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	return etladapters.NewIGDBEnricher(client, catalogadapters.NewGameRepository(db))
}

// NewRetryPolicy builds the fetch retry policy from the environment.
// Only transient source errors are retried.
func NewRetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: envInt("ETL_MAX_ATTEMPTS", 3),
		Backoff:     []time.Duration{500 * time.Millisecond, 2 * time.Second, 5 * time.Second},
		Retryable:   etlusecase.IsTransient,
	}
}

// NewOrchestrator assembles the full ETL pipeline on top of the given
// database connection and price writer.
func NewOrchestrator(db *gorm.DB, prices etlusecase.PriceWriter) *etlusecase.Orchestrator {
	games := catalogadapters.NewGameRepository(db)
	stores := catalogadapters.NewStoreRepository(db)

	return etlusecase.NewOrchestrator(
		NewStoreAdapters(),
		NewNormalizer(),
		prices,
		etladapters.NewRunRepository(db),
		etladapters.NewCatalogPairSource(games, stores),
		NewEnricher(db),
		ratelimiter.NewRateLimiter(envInt("ETL_RATE_LIMIT", 8), time.Minute),
		NewRetryPolicy(),
		envInt("ETL_CONCURRENCY", 4),
	)
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
