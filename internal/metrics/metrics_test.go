package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecommendationCounters(t *testing.T) {
	before := testutil.ToFloat64(RecommendationFallbacks.WithLabelValues("parse"))
	RecommendationFallbacks.WithLabelValues("parse").Inc()
	after := testutil.ToFloat64(RecommendationFallbacks.WithLabelValues("parse"))

	if after-before != 1 {
		t.Errorf("expected fallback counter to grow by 1, got %f", after-before)
	}
}

func TestCacheCounters(t *testing.T) {
	before := testutil.ToFloat64(CacheHits.WithLabelValues("catalog"))
	CacheHits.WithLabelValues("catalog").Add(2)
	after := testutil.ToFloat64(CacheHits.WithLabelValues("catalog"))

	if after-before != 2 {
		t.Errorf("expected cache hits to grow by 2, got %f", after-before)
	}
}
