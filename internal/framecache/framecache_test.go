package framecache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestGetPut(t *testing.T) {
	c := New(10)
	k := Key{Band: BandContent, Left: 80, Top: 240}

	if _, ok := c.Get(k); ok {
		t.Fatal("Get() on empty cache found a frame")
	}
	c.Put(k, []byte("png"))
	got, ok := c.Get(k)
	if !ok || string(got) != "png" {
		t.Errorf("Get() = %q, %v, want png, true", got, ok)
	}

	// same offset, other band
	if _, ok := c.Get(Key{Band: BandHeader, Left: 80, Top: 240}); ok {
		t.Error("Get() matched a different band")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 2 {
		t.Errorf("Stats() hits/misses = %d/%d, want 1/2", s.Hits, s.Misses)
	}
	if s.Bytes != 3 {
		t.Errorf("Stats().Bytes = %d, want 3", s.Bytes)
	}
}

func TestPutReplaces(t *testing.T) {
	c := New(0)
	k := Key{Band: BandHeader}
	c.Put(k, []byte("first"))
	c.Put(k, []byte("2nd"))

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if got := c.Stats().Bytes; got != 3 {
		t.Errorf("Bytes = %d, want 3", got)
	}
}

func TestEvictionDropsOldest(t *testing.T) {
	c := New(4)
	for i := range 4 {
		c.Put(Key{Band: BandContent, Top: float64(i * 24)}, []byte{byte(i)})
	}
	// touch 0 so 1 becomes the oldest
	c.Get(Key{Band: BandContent, Top: 0})
	c.Put(Key{Band: BandContent, Top: 96}, []byte{4})

	// 5 entries > 4: shrink to 3
	if got := c.Len(); got != 3 {
		t.Fatalf("Len() after eviction = %d, want 3", got)
	}
	for _, top := range []float64{0, 72, 96} {
		if _, ok := c.Get(Key{Band: BandContent, Top: top}); !ok {
			t.Errorf("frame at top %v evicted, want kept", top)
		}
	}
	for _, top := range []float64{24, 48} {
		if _, ok := c.Get(Key{Band: BandContent, Top: top}); ok {
			t.Errorf("frame at top %v kept, want evicted", top)
		}
	}
	if got := c.Stats().Bytes; got != 3 {
		t.Errorf("Bytes = %d, want 3", got)
	}
}

func TestGetOrRender(t *testing.T) {
	c := New(8)
	k := Key{Band: BandFrame, Left: 0, Top: 0}
	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte("frame"), nil
	}

	for range 3 {
		got, err := c.GetOrRender(k, render)
		if err != nil {
			t.Fatalf("GetOrRender() error = %v", err)
		}
		if string(got) != "frame" {
			t.Errorf("GetOrRender() = %q, want frame", got)
		}
	}
	if calls != 1 {
		t.Errorf("render calls = %d, want 1", calls)
	}

	errRender := errors.New("surface lost")
	_, err := c.GetOrRender(Key{Band: BandHeader}, func() ([]byte, error) { return nil, errRender })
	if !errors.Is(err, errRender) {
		t.Errorf("GetOrRender() error = %v, want %v", err, errRender)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (errors are not cached)", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := New(4)
	c.Put(Key{}, []byte("x"))
	c.Get(Key{})
	c.Clear()

	s := c.Stats()
	if s.Len != 0 || s.Bytes != 0 {
		t.Errorf("after Clear() Len, Bytes = %d, %d, want 0, 0", s.Len, s.Bytes)
	}
	if s.Hits != 1 {
		t.Errorf("after Clear() Hits = %d, want 1", s.Hits)
	}
}

func TestBandString(t *testing.T) {
	tests := []struct {
		band Band
		want string
	}{
		{BandHeader, "header"},
		{BandContent, "content"},
		{BandFrame, "frame"},
		{Band(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.band.String(); got != tt.want {
			t.Errorf("Band(%d).String() = %q, want %q", tt.band, got, tt.want)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				k := Key{Band: BandContent, Top: float64((g*100 + i) % 40)}
				_, _ = c.GetOrRender(k, func() ([]byte, error) {
					return []byte(fmt.Sprint(k.Top)), nil
				})
			}
		}()
	}
	wg.Wait()

	if got := c.Len(); got > 16 {
		t.Errorf("Len() = %d, want <= 16", got)
	}
}

func BenchmarkGetOrRender(b *testing.B) {
	c := New(64)
	data := make([]byte, 4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := Key{Band: BandContent, Top: float64(i%128) * 24}
		_, _ = c.GetOrRender(k, func() ([]byte, error) { return data, nil })
	}
}
