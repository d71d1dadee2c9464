package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dharmasatrya/travelhub/internal/airports"
	"github.com/dharmasatrya/travelhub/internal/cache"
	"github.com/dharmasatrya/travelhub/internal/handler"
	"github.com/dharmasatrya/travelhub/internal/normalizer"
	"github.com/dharmasatrya/travelhub/internal/orchestrator"
	"github.com/dharmasatrya/travelhub/internal/providers"
	"github.com/dharmasatrya/travelhub/internal/ratelimit"
	"github.com/dharmasatrya/travelhub/pkg/logger"
	"github.com/dharmasatrya/travelhub/pkg/metrics"
)

type Config struct {
	Port          string
	SearchTimeout time.Duration

	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration

	Amadeus  providers.AmadeusConfig
	Tripjack providers.TripjackConfig
	TBO      providers.TBOConfig
}

func main() {
	godotenv.Load()
	cfg := loadConfig()

	log := logger.NewLogger()
	m := metrics.NewMetrics("travelhub", prometheus.DefaultRegisterer)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	index := airports.NewIndex()

	providerList := initializeProviders(cfg, log, m)
	log.Info("initialized travel providers", "count", len(providerList))

	rateLimiter := ratelimit.NewProviderLimiter(ratelimit.DefaultConfig(), map[string]ratelimit.Config{
		"amadeus":  {RequestsPerSecond: 10, BurstSize: 20},
		"tripjack": {RequestsPerSecond: 5, BurstSize: 10},
		"tbo":      {RequestsPerSecond: 5, BurstSize: 10},
	})

	norm := normalizer.New(log, m)
	orc := orchestrator.New(providerList, index, norm, rateLimiter, log, m)

	var offerCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatal("failed to connect to Redis", "error", err)
		}
		offerCache = redisCache
		log.Info("redis cache enabled",
			"host", cfg.RedisHost, "port", cfg.RedisPort, "ttl", cfg.RedisTTL)
	} else {
		offerCache = cache.NewNoOpCache()
		log.Info("cache disabled")
	}

	searchHandler := handler.NewSearchHandler(orc, index, offerCache, log)

	api := e.Group("/api/v1")
	api.POST("/flights/search", searchHandler.SearchFlights)
	api.POST("/hotels/search", searchHandler.SearchHotels)
	api.GET("/airports/search", searchHandler.SearchAirports)
	e.GET("/health", handler.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	log.Info("starting travel aggregator server", "port", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func loadConfig() Config {
	searchTimeout := getEnvDuration("PROVIDER_SEARCH_TIMEOUT", 45*time.Second)
	authTimeout := getEnvDuration("PROVIDER_AUTH_TIMEOUT", 10*time.Second)

	return Config{
		Port:          getEnv("PORT", "8080"),
		SearchTimeout: searchTimeout,

		CacheEnabled: getEnvBool("CACHE_ENABLED", true),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),

		Amadeus: providers.AmadeusConfig{
			BaseURL:       getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
			ClientID:      getEnv("AMADEUS_CLIENT_ID", ""),
			ClientSecret:  getEnv("AMADEUS_CLIENT_SECRET", ""),
			AuthTimeout:   authTimeout,
			SearchTimeout: searchTimeout,
		},
		Tripjack: providers.TripjackConfig{
			BaseURL:       getEnv("TRIPJACK_BASE_URL", "https://apitest.tripjack.com"),
			UserID:        getEnv("TRIPJACK_USER_ID", ""),
			Password:      getEnv("TRIPJACK_PASSWORD", ""),
			AuthTimeout:   authTimeout,
			SearchTimeout: searchTimeout,
		},
		TBO: providers.TBOConfig{
			BaseURL:       getEnv("TBO_BASE_URL", "https://api.tektravels.com"),
			ClientID:      getEnv("TBO_CLIENT_ID", ""),
			UserName:      getEnv("TBO_USERNAME", ""),
			Password:      getEnv("TBO_PASSWORD", ""),
			EndUserIP:     getEnv("TBO_END_USER_IP", ""),
			AuthTimeout:   authTimeout,
			SearchTimeout: searchTimeout,
		},
	}
}

// initializeProviders builds the adapter list in fallback priority order.
func initializeProviders(cfg Config, log logger.Logger, m *metrics.Metrics) []providers.Provider {
	order := getEnv("PROVIDER_PRIORITY", "amadeus,tripjack,tbo")

	byName := map[string]providers.Provider{
		"amadeus":  providers.NewAmadeus(cfg.Amadeus, log, m),
		"tripjack": providers.NewTripjack(cfg.Tripjack, log, m),
		"tbo":      providers.NewTBO(cfg.TBO, log, m),
	}

	var providerList []providers.Provider
	for _, name := range splitAndTrim(order) {
		if p, ok := byName[name]; ok {
			providerList = append(providerList, p)
		} else {
			log.Warn("unknown provider in PROVIDER_PRIORITY, skipping", "provider", name)
		}
	}
	return providerList
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
