package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docspot-odonto/internal/delivery/dto"
	"docspot-odonto/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached appointment listings, one key per
	// status filter ("all" when unfiltered)
	appointmentListKeyPrefix = "appointments:list:"

	// Listings change on every create/reserve/cancel, so the TTL is a
	// backstop for missed invalidations, not the primary freshness
	// mechanism
	appointmentListTTL = 60 * time.Second
)

// AppointmentCacheService is a read-through cache for the appointment
// listing endpoint. All failures are logged and swallowed: a broken cache
// degrades to a database read, never to an error response.
//
// Only the empty filter and the three known statuses are cached, which
// keeps the keyspace fixed so invalidation can delete exact keys instead
// of scanning.
type AppointmentCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAppointmentCacheService(redisClient *redis.Client, log *logrus.Logger) *AppointmentCacheService {
	return &AppointmentCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// GetListing returns the cached listing for a status filter, or nil on miss.
func (s *AppointmentCacheService) GetListing(ctx context.Context, status string) []dto.AppointmentResponse {
	if !cacheableStatus(status) {
		return nil
	}

	payload, err := s.redisClient.Get(ctx, s.listingKey(status)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read appointment listing cache: %+v", err)
		}
		return nil
	}

	var listing []dto.AppointmentResponse
	if err := json.Unmarshal(payload, &listing); err != nil {
		s.log.Warnf("Failed to decode cached appointment listing: %+v", err)
		return nil
	}
	return listing
}

// SetListing stores a listing for a status filter. Unknown filters always
// produce empty listings and are not worth a key.
func (s *AppointmentCacheService) SetListing(ctx context.Context, status string, listing []dto.AppointmentResponse) {
	if !cacheableStatus(status) {
		return
	}

	payload, err := json.Marshal(listing)
	if err != nil {
		s.log.Warnf("Failed to encode appointment listing for cache: %+v", err)
		return
	}

	if err := s.redisClient.Set(ctx, s.listingKey(status), payload, appointmentListTTL).Err(); err != nil {
		s.log.Warnf("Failed to write appointment listing cache: %+v", err)
	}
}

// Invalidate drops every cached listing. Called after any appointment
// mutation since a single change can move a row between filters.
func (s *AppointmentCacheService) Invalidate(ctx context.Context) {
	keys := []string{
		s.listingKey(""),
		s.listingKey(string(entity.AppointmentStatusAvailable)),
		s.listingKey(string(entity.AppointmentStatusReserved)),
		s.listingKey(string(entity.AppointmentStatusCompleted)),
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to invalidate appointment listing cache: %+v", err)
	}
}

func (s *AppointmentCacheService) listingKey(status string) string {
	if status == "" {
		status = "all"
	}
	return fmt.Sprintf("%s%s", appointmentListKeyPrefix, status)
}

func cacheableStatus(status string) bool {
	switch entity.AppointmentStatus(status) {
	case "", entity.AppointmentStatusAvailable, entity.AppointmentStatusReserved, entity.AppointmentStatusCompleted:
		return true
	default:
		return false
	}
}
