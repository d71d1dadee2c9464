package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/travelhub/internal/models"
)

// Cache stores normalized live offers keyed by search criteria. Only
// real_api results are cached; mock fallbacks are regenerated per request.
type Cache interface {
	Get(ctx context.Context, kind models.OfferKind, criteria models.SearchCriteria) ([]models.Offer, bool)
	Set(ctx context.Context, kind models.OfferKind, criteria models.SearchCriteria, offers []models.Offer) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, kind models.OfferKind, criteria models.SearchCriteria) ([]models.Offer, bool) {
	data, err := c.client.Get(ctx, generateKey(kind, criteria)).Bytes()
	if err != nil {
		return nil, false
	}

	var offers []models.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false
	}

	return offers, true
}

func (c *RedisCache) Set(ctx context.Context, kind models.OfferKind, criteria models.SearchCriteria, offers []models.Offer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(kind, criteria), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, kind models.OfferKind, criteria models.SearchCriteria) ([]models.Offer, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, kind models.OfferKind, criteria models.SearchCriteria, offers []models.Offer) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// generateKey hashes the dispatch-relevant criteria. Enhanced preferences
// are applied after the cache, so they are deliberately excluded.
func generateKey(kind models.OfferKind, criteria models.SearchCriteria) string {
	keyData := struct {
		Kind          models.OfferKind
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
		CheckInDate   string
		CheckOutDate  string
		Passengers    int
		CabinClass    string
	}{
		Kind:          kind,
		Origin:        criteria.Origin,
		Destination:   criteria.Destination,
		DepartureDate: criteria.DepartureDate,
		CheckInDate:   criteria.CheckInDate,
		CheckOutDate:  criteria.CheckOutDate,
		Passengers:    criteria.Passengers,
		CabinClass:    criteria.CabinClass,
	}

	if criteria.ReturnDate != nil {
		keyData.ReturnDate = *criteria.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "offers:" + hex.EncodeToString(hash[:])
}
