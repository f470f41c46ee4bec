package ggrid

import (
	"errors"
	"math"
	"testing"
)

func scenarioConfig() Config {
	return NewConfig(5, 100, 80, 24, 30, 400, 240)
}

func TestConfig_TotalWidth(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want float64
	}{
		{"scenario", scenarioConfig(), 400},
		{"single column", NewConfig(1, 10, 120.5, 24, 30, 400, 240), 120.5},
		{"empty", NewConfig(0, 10, 80, 24, 30, 400, 240), 0},
		{"wide", NewConfig(1_000_000, 1, 80, 24, 30, 400, 240), 80_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.TotalWidth(); got != tt.want {
				t.Errorf("TotalWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_TotalHeight(t *testing.T) {
	cfg := scenarioConfig()
	if got := cfg.TotalHeight(); got != 100*24+30 {
		t.Errorf("TotalHeight() = %v, want %v", got, 100*24+30)
	}
}

// naiveHeight is the single-multiplication formula TotalHeight must not use.
func naiveHeight(cfg Config) float64 {
	return float64(float64(cfg.Rows)*cfg.CellHeight) + cfg.HeaderHeight
}

func TestConfig_TotalHeightChunked(t *testing.T) {
	tests := []struct {
		name       string
		rows       uint32
		cellHeight float64
		want       float64
	}{
		{"just over one chunk", 10_000_001, 0.1, 1000030.1},
		{"one chunk plus one, 33.3px", 10_000_001, 33.3, 333000063.3},
		{"hundred million rows", 123_456_789, 33.3, 4111111103.6999993},
		{"billions of rows", 4_000_000_007, 0.1, 400000030.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(5, tt.rows, 80, tt.cellHeight, 30, 400, 240)
			got := cfg.TotalHeight()
			if got != tt.want {
				t.Errorf("TotalHeight() = %v, want %v", got, tt.want)
			}
			if naive := naiveHeight(cfg); got == naive {
				t.Errorf("TotalHeight() = naive rows*cellHeight (%v); chunked summation not applied", naive)
			}
		})
	}
}

func TestChunkedHeight(t *testing.T) {
	t.Run("below one chunk matches product", func(t *testing.T) {
		if got := ChunkedHeight(9_999_999, 24, HeightChunkRows); got != 9_999_999*24 {
			t.Errorf("ChunkedHeight() = %v, want %v", got, 9_999_999*24)
		}
	})
	t.Run("exact integers", func(t *testing.T) {
		if got := ChunkedHeight(math.MaxUint32, 24, HeightChunkRows); got != 103079215080 {
			t.Errorf("ChunkedHeight(MaxUint32) = %v, want 103079215080", got)
		}
	})
	t.Run("zero chunk disables chunking", func(t *testing.T) {
		rows, h := uint32(10_000_001), 0.1
		want := float64(float64(rows) * h)
		if got := ChunkedHeight(rows, h, 0); got != want {
			t.Errorf("ChunkedHeight(chunk=0) = %v, want %v", got, want)
		}
	})
	t.Run("custom chunk", func(t *testing.T) {
		if got := ChunkedHeight(25, 2, 10); got != 50 {
			t.Errorf("ChunkedHeight(25, 2, 10) = %v, want 50", got)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := scenarioConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cell width", func(c *Config) { c.CellWidth = 0 }},
		{"negative cell height", func(c *Config) { c.CellHeight = -1 }},
		{"NaN header", func(c *Config) { c.HeaderHeight = math.NaN() }},
		{"infinite viewport", func(c *Config) { c.ViewportWidth = math.Inf(1) }},
		{"zero viewport height", func(c *Config) { c.ViewportHeight = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scenarioConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}

	t.Run("empty grid skips dimension checks", func(t *testing.T) {
		cfg := Config{Columns: 0, Rows: 10}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}

func TestConfig_Empty(t *testing.T) {
	if scenarioConfig().Empty() {
		t.Error("scenario config reported empty")
	}
	if !NewConfig(0, 10, 80, 24, 30, 400, 240).Empty() {
		t.Error("zero-column config not empty")
	}
	if !NewConfig(5, 0, 80, 24, 30, 400, 240).Empty() {
		t.Error("zero-row config not empty")
	}
}
