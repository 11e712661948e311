// handler.go serves a browser preview of the latest frame.

// Package webview exposes the latest frame and the viewer statistics over
// HTTP: an auto-refreshing status page, the frame as PNG, and JSON stats.
package webview

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/xaionaro-go/edgeviewer/frameslot"
	"github.com/xaionaro-go/edgeviewer/logger"
	"github.com/xaionaro-go/edgeviewer/types"
)

type StatsGetter interface {
	GetStats(ctx context.Context) *types.Statistics
}

type FPSGetter interface {
	FPS() float64
}

type Handler struct {
	Acquirer frameslot.Acquirer
	Stats    StatsGetter
	FPS      FPSGetter

	mux *http.ServeMux
}

var _ http.Handler = (*Handler)(nil)

func NewHandler(
	acquirer frameslot.Acquirer,
	stats StatsGetter,
	fps FPSGetter,
) *Handler {
	h := &Handler{
		Acquirer: acquirer,
		Stats:    stats,
		FPS:      fps,
		mux:      http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.serveIndex)
	h.mux.HandleFunc("GET /frame.png", h.serveFrame)
	h.mux.HandleFunc("GET /stats", h.serveStats)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) serveFrame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var snap frameslot.Snapshot
	h.Acquirer.View(ctx, func(s frameslot.Snapshot) {
		snap = s.Clone()
	})
	if snap.IsEmpty() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, snap.Image()); err != nil {
		logger.Errorf(ctx, "unable to encode the %s frame: %v", snap.Descriptor, err)
		http.Error(w, "unable to encode the frame", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Debugf(ctx, "unable to send the frame: %v", err)
	}
}

type statsResponse struct {
	*types.Statistics
	FPS float64
}

func (h *Handler) getStats(ctx context.Context) statsResponse {
	resp := statsResponse{Statistics: &types.Statistics{}}
	if h.Stats != nil {
		resp.Statistics = h.Stats.GetStats(ctx)
	}
	if h.FPS != nil {
		resp.FPS = h.FPS.FPS()
	}
	return resp
}

func (h *Handler) serveStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.getStats(r.Context())); err != nil {
		logger.Debugf(r.Context(), "unable to send the stats: %v", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>edgeviewer</title></head>
<body>
<p>Resolution: <span id="res">{{.Resolution}}</span> | FPS: <span id="fps">{{printf "%.1f" .FPS}}</span> | Published: {{.Published}}</p>
<img id="frame" src="frame.png">
<script>
const frame = document.getElementById("frame");
frame.onload = () => {
	document.getElementById("res").textContent = frame.naturalWidth + "x" + frame.naturalHeight;
	setTimeout(() => { frame.src = "frame.png?t=" + Date.now(); }, 100);
};
</script>
</body>
</html>
`))

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	stats := h.getStats(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		Resolution types.Resolution
		FPS        float64
		Published  string
	}{
		Resolution: stats.Resolution,
		FPS:        stats.FPS,
		Published:  stats.Published.String(),
	})
	if err != nil {
		logger.Debugf(r.Context(), "unable to render the index page: %v", err)
	}
}
