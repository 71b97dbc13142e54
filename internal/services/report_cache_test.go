package services

import (
	"testing"
	"time"

	"github.com/yungbote/guidequality-backend/internal/types"
)

func TestTTLForTier(t *testing.T) {
	cases := []struct {
		tier string
		want time.Duration
	}{
		{types.TierExcellent, 6 * time.Hour},
		{types.TierGood, 6 * time.Hour},
		{types.TierAcceptable, 2 * time.Hour},
		{types.TierPoor, 0},
		{types.TierCritical, 0},
		{"unknown", 0},
	}
	for _, tc := range cases {
		if got := TTLForTier(tc.tier); got != tc.want {
			t.Errorf("TTLForTier(%q) = %v, want %v", tc.tier, got, tc.want)
		}
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("Gyeongju", "ko", `{"chapters":[]}`)
	b := CacheKey("  gyeongju ", "KO", `{"chapters":[]}`)
	if a != b {
		t.Fatalf("key is not canonical: %q vs %q", a, b)
	}
	c := CacheKey("Gyeongju", "ko", `{"chapters":[{"title":"x"}]}`)
	if a == c {
		t.Fatal("different documents share a cache key")
	}
	d := CacheKey("Gyeongju", "en", `{"chapters":[]}`)
	if a == d {
		t.Fatal("different languages share a cache key")
	}
}
