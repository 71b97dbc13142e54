package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/guidequality-backend/internal/logger"
	"github.com/yungbote/guidequality-backend/internal/types"
	"github.com/yungbote/guidequality-backend/internal/utils"
)

// ReportCache keeps recent verification reports so repeat verifications of
// an unchanged document skip the engine. Low-tier reports are never
// cached: a poor guide should be re-verified on every attempt.
type ReportCache interface {
	Get(ctx context.Context, key string) (*types.QualityReport, bool)
	Set(ctx context.Context, key string, report types.QualityReport)
	Close() error
}

type reportCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewReportCache(log *logger.Logger) (ReportCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := utils.GetEnv("REDIS_ADDR", "", log)
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        strings.TrimSpace(addr),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &reportCache{
		log: log.With("service", "ReportCache"),
		rdb: rdb,
	}, nil
}

// CacheKey identifies a location+language+document triple. The document
// hash keeps edits from serving stale reports.
func CacheKey(locationName, language, serializedDoc string) string {
	sum := sha256.Sum256([]byte(serializedDoc))
	return fmt.Sprintf("quality:report:%s|%s|%s",
		strings.ToLower(strings.TrimSpace(locationName)),
		strings.ToLower(strings.TrimSpace(language)),
		hex.EncodeToString(sum[:8]),
	)
}

// TTLForTier maps a quality tier to its cache lifetime. Zero means do not
// cache.
func TTLForTier(tier string) time.Duration {
	switch tier {
	case types.TierExcellent, types.TierGood:
		return 6 * time.Hour
	case types.TierAcceptable:
		return 2 * time.Hour
	default:
		return 0
	}
}

func (rc *reportCache) Get(ctx context.Context, key string) (*types.QualityReport, bool) {
	raw, err := rc.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			rc.log.Warn("cache read failed, continuing without cache", "error", err)
		}
		return nil, false
	}
	var report types.QualityReport
	if err := json.Unmarshal(raw, &report); err != nil {
		rc.log.Warn("cached report is corrupt, dropping it", "key", key, "error", err)
		_ = rc.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &report, true
}

func (rc *reportCache) Set(ctx context.Context, key string, report types.QualityReport) {
	ttl := TTLForTier(report.QualityTier)
	if ttl == 0 {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := rc.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		rc.log.Warn("cache write failed, continuing without cache", "error", err)
	}
}

func (rc *reportCache) Close() error {
	return rc.rdb.Close()
}
