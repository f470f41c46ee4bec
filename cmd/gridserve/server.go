package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/ggrid"
	"github.com/gogpu/ggrid/internal/framecache"
	"github.com/gogpu/ggrid/internal/gridhost"
)

var errBadOffset = errors.New("offset must be a finite number >= 0")

// server renders grid bands on request. One set of band surfaces is
// shared by all requests, so rendering is serialized by mu; cached frames
// are served without taking it.
type server struct {
	router *chi.Mux
	ctrl   *ggrid.Controller
	logger *slog.Logger

	mu     sync.Mutex
	bands  *gridhost.Bands
	frames *framecache.Cache
}

func newServer(ctrl *ggrid.Controller, ratio float64, frameLimit int, logger *slog.Logger) (*server, error) {
	bands, err := gridhost.NewBands(ctrl, ratio)
	if err != nil {
		return nil, err
	}
	s := &server{
		router: chi.NewRouter(),
		ctrl:   ctrl,
		logger: logger,
		bands:  bands,
		frames: framecache.New(frameLimit),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5, "application/json"))
}

func (s *server) setupRoutes() {
	s.router.Get("/dimensions", s.handleDimensions)
	s.router.Get("/rows", s.handleRows)
	s.router.Get("/stats", s.handleStats)
	s.router.Get("/{band}.png", s.handleBand)
	s.router.Post("/preload", s.handlePreload)
}

type dimensions struct {
	Columns        uint32  `json:"columns"`
	Rows           uint32  `json:"rows"`
	CellWidth      float64 `json:"cellWidth"`
	CellHeight     float64 `json:"cellHeight"`
	HeaderHeight   float64 `json:"headerHeight"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
	TotalWidth     float64 `json:"totalWidth"`
	TotalHeight    float64 `json:"totalHeight"`
	Ratio          float64 `json:"ratio"`
}

func (s *server) handleDimensions(w http.ResponseWriter, r *http.Request) {
	cfg := s.ctrl.Config()
	writeJSON(w, dimensions{
		Columns:        cfg.Columns,
		Rows:           cfg.Rows,
		CellWidth:      cfg.CellWidth,
		CellHeight:     cfg.CellHeight,
		HeaderHeight:   cfg.HeaderHeight,
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		TotalWidth:     s.ctrl.TotalWidth(),
		TotalHeight:    s.ctrl.TotalHeight(),
		Ratio:          s.bands.Ratio(),
	})
}

type rowsResponse struct {
	Start uint32     `json:"start"`
	End   uint32     `json:"end"`
	Empty bool       `json:"empty"`
	Rows  [][]string `json:"rows"`
}

func (s *server) handleRows(w http.ResponseWriter, r *http.Request) {
	top, err := offset(r, "top")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows, rng, err := s.ctrl.VisibleRows(r.Context(), top)
	if err != nil {
		s.fail(w, "load rows", err)
		return
	}
	cols := s.ctrl.Config().Columns
	resp := rowsResponse{
		Start: rng.Start,
		End:   rng.End,
		Empty: s.ctrl.Config().Empty(),
		Rows:  make([][]string, len(rows)),
	}
	for i, row := range rows {
		cells := make([]string, cols)
		for c := range cols {
			cells[c] = row.Cell(c)
		}
		resp.Rows[i] = cells
	}
	writeJSON(w, resp)
}

type statsResponse struct {
	Segments ggrid.CacheStats `json:"segments"`
	Frames   framecache.Stats `json:"frames"`
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, statsResponse{
		Segments: s.ctrl.Cache().Stats(),
		Frames:   s.frames.Stats(),
	})
}

func (s *server) handlePreload(w http.ResponseWriter, r *http.Request) {
	center, err1 := strconv.ParseUint(r.URL.Query().Get("segment"), 10, 32)
	amount, err2 := strconv.ParseUint(r.URL.Query().Get("amount"), 10, 32)
	if err := errors.Join(err1, err2); err != nil {
		http.Error(w, "segment and amount must be unsigned integers", http.StatusBadRequest)
		return
	}
	if err := s.ctrl.Preload(r.Context(), uint32(center), uint32(amount)); err != nil {
		s.fail(w, "preload", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleBand(w http.ResponseWriter, r *http.Request) {
	var band framecache.Band
	switch chi.URLParam(r, "band") {
	case "header":
		band = framecache.BandHeader
	case "content":
		band = framecache.BandContent
	case "frame":
		band = framecache.BandFrame
	default:
		http.NotFound(w, r)
		return
	}

	left, err := offset(r, "left")
	var top float64
	if err == nil && band != framecache.BandHeader {
		top, err = offset(r, "top")
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := framecache.Key{Band: band, Left: left, Top: top}
	data, err := s.frames.GetOrRender(key, func() ([]byte, error) {
		return s.render(r, key)
	})
	if err != nil {
		s.fail(w, "render "+band.String(), err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (s *server) render(r *http.Request, key framecache.Key) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var img image.Image
	switch key.Band {
	case framecache.BandHeader:
		if err := s.ctrl.RenderHeader(s.bands.Header, key.Left); err != nil {
			return nil, err
		}
		img = s.bands.Header.Image()
	case framecache.BandContent:
		if err := s.ctrl.RenderContent(r.Context(), s.bands.Content, key.Left, key.Top); err != nil {
			return nil, err
		}
		img = s.bands.Content.Image()
	default:
		frame, err := s.bands.Frame(r.Context(), key.Left, key.Top)
		if err != nil {
			return nil, err
		}
		img = frame
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	s.logger.Debug("band rendered", "band", key.Band, "left", key.Left, "top", key.Top, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (s *server) fail(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "err", err)
	http.Error(w, "failed to "+op, http.StatusInternalServerError)
}

// offset parses the scroll offset query parameter name. A missing value
// is 0.
func offset(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%s: %w", name, errBadOffset)
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
