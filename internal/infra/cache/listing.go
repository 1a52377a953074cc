package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
)

// ListingCache кеш списков свободных слотов.
// Живёт недолго и инвалидируется при любой записи, меняющей остатки,
// поэтому устаревший список кандидат видит не дольше TTL.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache создает кеш списков слотов поверх Redis
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

type cachedSlot struct {
	FacultyID int64  `json:"faculty_id"`
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	Remaining int    `json:"remaining"`
}

func listingKey(facultyID int64, date *time.Time) string {
	if date == nil {
		return fmt.Sprintf("open_slots:%d:all", facultyID)
	}
	return fmt.Sprintf("open_slots:%d:%s", facultyID, date.Format(domain.DateFormat))
}

// Get возвращает закешированный список свободных слотов.
// Отсутствие ключа и ошибки Redis различаются, чтобы вызывающий
// мог логировать недоступность кеша отдельно.
func (c *ListingCache) Get(ctx context.Context, facultyID int64, date *time.Time) ([]domain.OpenSlot, error) {
	data, err := c.client.Get(ctx, listingKey(facultyID, date)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrCacheUnavailable, err)
	}

	var cached []cachedSlot
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal: %v", ErrCacheUnavailable, err)
	}

	slots := make([]domain.OpenSlot, 0, len(cached))
	for _, cs := range cached {
		date, err := time.Parse(domain.DateFormat, cs.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: Get - parse date %q: %v", ErrCacheUnavailable, cs.Date, err)
		}
		key, err := domain.NewSlotKey(cs.FacultyID, date, cs.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: Get - parse slot %q: %v", ErrCacheUnavailable, cs.Slot, err)
		}
		slots = append(slots, domain.OpenSlot{Key: key, Remaining: cs.Remaining})
	}

	return slots, nil
}

// Set сохраняет список свободных слотов с TTL
func (c *ListingCache) Set(ctx context.Context, facultyID int64, date *time.Time, slots []domain.OpenSlot) error {
	cached := make([]cachedSlot, 0, len(slots))
	for _, slot := range slots {
		cached = append(cached, cachedSlot{
			FacultyID: slot.Key.FacultyID,
			Date:      slot.Key.Date.Format(domain.DateFormat),
			Slot:      slot.Key.SlotLabel(),
			Remaining: slot.Remaining,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheUnavailable, err)
	}

	if err := c.client.Set(ctx, listingKey(facultyID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// Invalidate сбрасывает списки факультета после изменения остатков.
// Сбрасываются ключ дня и общий ключ, остальные дни не трогаем.
func (c *ListingCache) Invalidate(ctx context.Context, facultyID int64, date time.Time) error {
	keys := []string{
		listingKey(facultyID, nil),
		listingKey(facultyID, &date),
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheUnavailable, err)
	}

	return nil
}
