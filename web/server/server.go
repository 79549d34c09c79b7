package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/voxelray/go-voxel-raytracer/pkg/renderer"
	"github.com/voxelray/go-voxel-raytracer/pkg/scene"
)

// Render size limits for incoming requests
const (
	maxDimension     = 4096
	defaultWidth     = 1200
	defaultHeight    = 800
	shutdownDeadline = 10 * time.Second
)

// Server exposes frame rendering over HTTP. The voxel grid is built once at
// startup; each request gets its own immutable scene snapshot.
type Server struct {
	addr       string
	adminAddr  string
	dispatcher *renderer.Dispatcher
	scn        *scene.Scene
}

// New creates a web server rendering the given base scene
func New(addr, adminAddr string, dispatcher *renderer.Dispatcher, scn *scene.Scene) *Server {
	sceneVoxels.Set(float64(scn.Grid.Len()))
	return &Server{
		addr:       addr,
		adminAddr:  adminAddr,
		dispatcher: dispatcher,
		scn:        scn,
	}
}

// RenderResponse is the JSON payload for render requests
type RenderResponse struct {
	RenderID  string `json:"renderId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Workers   int    `json:"workers"`
	ElapsedMs int64  `json:"elapsedMs"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Voxels    int    `json:"voxels"`
	Sky       bool   `json:"sky"`
}

// Start runs the public and admin listeners until ctx is canceled
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRenderPNG)
	mux.HandleFunc("/api/render.json", s.handleRenderJSON)
	mux.HandleFunc("/api/health", s.handleHealth)

	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())

	public := &http.Server{Addr: s.addr, Handler: mux}
	admin := &http.Server{Addr: s.adminAddr, Handler: adminMux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
		defer cancel()
		if err := public.Shutdown(shutdownCtx); err != nil {
			logs.Warn(errors.New("shutting down the server failed").Wrap(err))
		}
		if err := admin.Shutdown(shutdownCtx); err != nil {
			logs.Warn(errors.New("shutting down the admin server failed").Wrap(err))
		}
	}()

	go func() {
		logs.WithTag("addr", s.adminAddr).Info("starting admin server")
		if err := admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Error(errors.New("admin server stopped").Wrap(err))
		}
	}()

	logs.WithTag("addr", s.addr).Info("starting server")
	err := public.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRenderPNG renders one frame and responds with the PNG bytes
func (s *Server) handleRenderPNG(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, _, _ := s.renderFrame(req)

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		logs.Warn(errors.New("writing PNG response failed").Wrap(err))
	}
}

// handleRenderJSON renders one frame and responds with base64 PNG and stats
func (s *Server) handleRenderJSON(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, stats, renderID := s.renderFrame(req)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, "encoding PNG failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RenderResponse{
		RenderID:  renderID,
		Width:     stats.Width,
		Height:    stats.Height,
		Workers:   stats.Workers,
		ElapsedMs: stats.Elapsed.Milliseconds(),
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Voxels:    s.scn.Grid.Len(),
		Sky:       req.sky,
	})
}

type renderRequest struct {
	width, height int
	sky           bool
}

// parseRenderRequest validates query parameters with sensible defaults
func (s *Server) parseRenderRequest(r *http.Request) (renderRequest, error) {
	req := renderRequest{width: defaultWidth, height: defaultHeight, sky: true}
	q := r.URL.Query()

	var err error
	if v := q.Get("width"); v != "" {
		if req.width, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("invalid width: %q", v)
		}
	}
	if v := q.Get("height"); v != "" {
		if req.height, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("invalid height: %q", v)
		}
	}
	if v := q.Get("sky"); v != "" {
		if req.sky, err = strconv.ParseBool(v); err != nil {
			return req, fmt.Errorf("invalid sky: %q", v)
		}
	}

	if req.width < 1 || req.width > maxDimension || req.height < 1 || req.height > maxDimension {
		return req, fmt.Errorf("dimensions must be in [1, %d]", maxDimension)
	}
	return req, nil
}

// renderFrame renders one frame from a fresh per-request snapshot
func (s *Server) renderFrame(req renderRequest) (*image.RGBA, renderer.FrameStats, string) {
	renderID := uuid.NewString()

	snapshot := scene.NewSnapshot(s.scn.Grid, req.sky)
	camera := renderer.FrameCamera(snapshot.Center(), snapshot.BoundingRadius())

	buffer, stats := s.dispatcher.Render(camera, req.width, req.height, snapshot)

	img := image.NewRGBA(image.Rect(0, 0, req.width, req.height))
	for i, c := range buffer {
		img.SetRGBA(i%req.width, i/req.width, c)
	}

	framesTotal.Inc()
	renderDuration.Observe(stats.Elapsed.Seconds())

	logs.WithTag("render_id", renderID).
		WithTag("width", req.width).
		WithTag("height", req.height).
		WithTag("elapsed", stats.Elapsed.String()).
		Info("frame rendered")

	return img, stats, renderID
}
