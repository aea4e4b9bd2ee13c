package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolConfig(t *testing.T) {
	tests := []struct {
		name     string
		app      string
		max, min int32
		wantMax  int32
		wantMin  int32
		wantName string
	}{
		{"configured", "server", 20, 4, 20, 4, "stocktake-server"},
		{"unset max", "worker", 0, 1, DefaultMaxConns, 1, "stocktake-worker"},
		{"min above max", "seed", 3, 8, 3, 3, "stocktake-seed"},
		{"negative min", "", 5, -1, 5, 0, "stocktake"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewPoolConfig("postgres://localhost/stocktake", tt.app, tt.max, tt.min)
			assert.Equal(t, tt.wantMax, cfg.MaxConns)
			assert.Equal(t, tt.wantMin, cfg.MinConns)
			assert.Equal(t, tt.wantName, cfg.ApplicationName)
		})
	}
}

func TestBuildPoolConfig(t *testing.T) {
	cfg := NewPoolConfig("postgres://u:p@localhost:5432/stocktake", "worker", 6, 2)

	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(6), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, cfg.MaxConnLifetime, pc.MaxConnLifetime)
	assert.Equal(t, "stocktake-worker", pc.ConnConfig.RuntimeParams["application_name"])

	_, err = buildPoolConfig(PoolConfig{DSN: "://bad"})
	assert.Error(t, err)
}
