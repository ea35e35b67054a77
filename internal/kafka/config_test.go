package kafka

import (
	"slices"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

func TestConfig_ReaderConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		startOffset string
		wantOffset  int64
	}{
		{"first lower", "first", kafkago.FirstOffset},
		{"first mixed spaced", " FiRsT \n", kafkago.FirstOffset},
		{"empty -> last", "", kafkago.LastOffset},
		{"explicit last", "LAST", kafkago.LastOffset},
		{"unknown -> last", "earliest", kafkago.LastOffset},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Config{
				Brokers:     []string{"k1:9092", "k2:9092"},
				Topic:       "orders.create",
				GroupID:     "rapid-express",
				StartOffset: tt.startOffset,
			}
			rc := cfg.ReaderConfig()

			if rc.StartOffset != tt.wantOffset {
				t.Fatalf("StartOffset: want %d, got %d", tt.wantOffset, rc.StartOffset)
			}
			if !slices.Equal(rc.Brokers, cfg.Brokers) || rc.Topic != cfg.Topic || rc.GroupID != cfg.GroupID {
				t.Fatalf("base fields not propagated: %+v", rc)
			}
			// ручной коммит
			if rc.CommitInterval != 0 {
				t.Fatalf("CommitInterval: want 0, got %v", rc.CommitInterval)
			}
		})
	}
}

func TestConfig_withDefaults(t *testing.T) {
	got := Config{}.withDefaults()
	if got.ProcessTimeout != defaultProcessTimeout || got.RetryInitial != defaultRetryInitial || got.RetryMax != defaultRetryMax {
		t.Fatalf("unexpected defaults: %+v", got)
	}

	got = Config{RetryInitial: time.Minute, RetryMax: time.Second}.withDefaults()
	if got.RetryMax < got.RetryInitial {
		t.Fatalf("RetryMax must not be below RetryInitial: %+v", got)
	}
}
