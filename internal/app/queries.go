package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"hotel_ops/internal/domain"
)

// ReportService serves read models from the cache, falling back to the live hotel.
// Keys carry the hotel version, so any mutation makes older entries unreachable.
// The entry for the previous version is deleted once a newer one is stored.
// Cache failures are logged and never fail a read.
type ReportService struct {
	hotel    *Hotel
	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group

	mu      sync.Mutex
	lastVer uint64
	stored  bool
}

func NewReportService(h *Hotel, c domain.Cache, ttl time.Duration) *ReportService {
	return &ReportService{hotel: h, cache: c, cacheTTL: ttl}
}

func summaryKey(version uint64) string { return fmt.Sprintf("hotel:summary:v%d", version) }

func (s *ReportService) Summary(ctx context.Context) (domain.Summary, error) {
	key := summaryKey(s.hotel.Version())
	var out domain.Summary
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &out)
		if err != nil {
			log.Debug().Err(err).Str("key", key).Msg("summary cache get failed")
		}
		if ok {
			return out, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		sum := s.hotel.Summary()
		if s.cache != nil {
			// Shared by every waiter, so one caller's cancellation must not abort the write.
			s.store(context.WithoutCancel(ctx), sum)
		}
		return sum, nil
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return copySummary(v.(domain.Summary)), nil
}

func (s *ReportService) store(ctx context.Context, sum domain.Summary) {
	key := summaryKey(sum.Version)
	if err := s.cache.Set(ctx, key, sum, int(s.cacheTTL.Seconds())); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("summary cache set failed")
		return
	}

	s.mu.Lock()
	prev, had := s.lastVer, s.stored
	if had && sum.Version <= prev {
		s.mu.Unlock()
		return
	}
	s.lastVer, s.stored = sum.Version, true
	s.mu.Unlock()

	if had {
		stale := summaryKey(prev)
		if err := s.cache.Del(ctx, stale); err != nil {
			log.Debug().Err(err).Str("key", stale).Msg("summary cache delete failed")
		}
	}
}

// ListAvailable is always computed live.
func (s *ReportService) ListAvailable() []domain.Room { return s.hotel.ListAvailable() }

func (s *ReportService) FirstGuestRoomInfo() (domain.RoomInfo, bool) {
	return s.hotel.FirstGuestRoomInfo()
}

// copySummary keeps callers sharing one singleflight result from aliasing the staff map.
func copySummary(in domain.Summary) domain.Summary {
	out := in
	if in.Staff != nil {
		out.Staff = make(map[domain.Role]int, len(in.Staff))
		for k, v := range in.Staff {
			out.Staff[k] = v
		}
	}
	return out
}
