package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/rapid_express/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_SecondCallNoPanic(t *testing.T) {
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestCounters_IncByLabels(t *testing.T) {
	metrics.MustRegister()

	cases := []struct {
		name   string
		vec    *prometheus.CounterVec
		labels []string
		inc    int
	}{
		{"kafka consumed", metrics.KafkaMessagesConsumed, []string{"order-requests"}, 1},
		{"kafka processed", metrics.KafkaMessagesProcessed, []string{"order-requests"}, 2},
		{"kafka failed", metrics.KafkaMessagesFailed, []string{"order-requests"}, 1},
		{"cache hit", metrics.CacheOps, []string{"redis", "hit"}, 3},
		{"order create ok", metrics.OrderMutations, []string{"create", "ok"}, 1},
		{"order delete rejected", metrics.OrderMutations, []string{"delete", "rejected"}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.vec.WithLabelValues(tc.labels...)
			before := testutil.ToFloat64(c)
			for i := 0; i < tc.inc; i++ {
				c.Inc()
			}
			if got := testutil.ToFloat64(c); got != before+float64(tc.inc) {
				t.Fatalf("got=%v want=%v", got, before+float64(tc.inc))
			}
		})
	}
}

func TestCacheOps_LabelsAreIndependent(t *testing.T) {
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("memory", "miss"))
	metrics.CacheOps.WithLabelValues("memory", "hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("memory", "miss")); got != missBefore {
		t.Fatalf("miss changed on hit: got=%v want=%v", got, missBefore)
	}
}

func TestCacheSize_Gauge(t *testing.T) {
	metrics.CacheSize.WithLabelValues("memory").Set(17)
	if got := testutil.ToFloat64(metrics.CacheSize.WithLabelValues("memory")); got != 17 {
		t.Fatalf("cache_size: got=%v want=17", got)
	}
}
