package mongo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
)

func TestStoreWarnsWithoutTransactions(t *testing.T) {
	tests := []struct {
		name         string
		transactions bool
		wantWarning  bool
	}{
		{name: "disabled", transactions: false, wantWarning: true},
		{name: "enabled", transactions: true, wantWarning: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := config.New(map[string]any{"db.mongo.transactions": tt.transactions})
			s := NewStore(cfg, logger.New(&buf, "info", "text"))

			s.warnNonAtomic()

			assert.Equal(t, tt.wantWarning, bytes.Contains(buf.Bytes(), []byte("mongo transactions disabled")))
		})
	}
}

func TestCollectionsIncludeSeedTracker(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range collections() {
		assert.False(t, seen[name], "duplicate collection %s", name)
		seen[name] = true
	}
	assert.True(t, seen[seedsCollection], "reset-db would keep the seed tracker")
	assert.True(t, seen[basketItemsCollection])
}
