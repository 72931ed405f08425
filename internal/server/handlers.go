package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/akashtjohn/boundbox/internal/config"
	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/boundbox"
	"github.com/akashtjohn/boundbox/pkg/hocr"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Time:     time.Now().UTC().Format(time.RFC3339),
		Adapters: s.registry.List(),
	})
}

// canonicalizeHandler returns the boxes with their corners in canonical order.
func (s *Server) canonicalizeHandler(w http.ResponseWriter, r *http.Request) {
	var req BoxesRequest
	if !s.decode(w, r, &req) {
		return
	}
	boxes, ok := s.boxes(w, req.Boxes)
	if !ok {
		return
	}
	s.writeBoxes(w, r, boxes)
}

// transformHandler rotates each box about its centroid, then rescales it.
func (s *Server) transformHandler(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if !s.decode(w, r, &req) {
		return
	}
	boxes, ok := s.boxes(w, req.Boxes)
	if !ok {
		return
	}

	for i := range boxes {
		if req.RotateDegrees != 0 {
			if err := boxes[i].RotateDegrees(req.RotateDegrees, req.Anticlockwise); err != nil {
				s.writeErrorResponse(w, fmt.Sprintf("box %d: %v", i, err), http.StatusUnprocessableEntity)
				return
			}
		}
		if req.WidthRatio != 0 || req.HeightRatio != 0 {
			wr, hr := orOne(req.WidthRatio), orOne(req.HeightRatio)
			if err := boxes[i].ChangeRatio(wr, hr); err != nil {
				s.writeErrorResponse(w, fmt.Sprintf("box %d: %v", i, err), http.StatusUnprocessableEntity)
				return
			}
		}
	}
	s.writeBoxes(w, r, boxes)
}

// mergeHandler reassembles word boxes into lines or unions them into one box.
func (s *Server) mergeHandler(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if !s.decode(w, r, &req) {
		return
	}
	boxes, ok := s.boxes(w, req.Boxes)
	if !ok {
		return
	}

	switch req.Mode {
	case "", mergeModeLines:
		opts := s.cfg.Merge
		if req.Options != nil {
			opts = *req.Options
		}
		if err := opts.Validate(); err != nil {
			s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.writeBoxes(w, r, boundbox.MergeLines(boxes, opts))
	case mergeModeAll:
		s.writeBoxes(w, r, []boundbox.BoundBox{boundbox.MergeAll(boxes...)})
	default:
		s.writeErrorResponse(w, fmt.Sprintf("unknown merge mode %q (want %s or %s)", req.Mode, mergeModeLines, mergeModeAll), http.StatusBadRequest)
	}
}

// convertHandler runs a raw engine payload through an adapter. Query
// parameters: merge_lines=true to merge words into lines, format=hocr for an
// hOCR document instead of JSON.
func (s *Server) convertHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("adapter")
	adapter, err := s.registry.Get(name)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = config.FormatJSON
	}
	if format != config.FormatJSON && format != config.FormatHOCR {
		s.writeErrorResponse(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUploadBytes()))
	if err != nil {
		s.writeBodyError(w, err)
		return
	}

	boxes, err := adapters.ParseBoxes(adapter, payload)
	if err != nil {
		adapterErrorsTotal.WithLabelValues(adapter.Name()).Inc()
		s.writeErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	boxesIn.WithLabelValues(r.Pattern).Observe(float64(len(boxes)))

	if merge, _ := strconv.ParseBool(r.URL.Query().Get("merge_lines")); merge {
		boxes = boundbox.MergeLines(boxes, s.cfg.Merge)
	}

	if format == config.FormatHOCR {
		boxesOut.WithLabelValues(r.Pattern).Observe(float64(len(boxes)))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := io.WriteString(w, hocr.ConvertToHOCR(boxes)); err != nil {
			slog.Error("Error writing hocr response", "err", err)
		}
		return
	}
	s.writeBoxes(w, r, boxes)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxUploadBytes())
	if err := json.NewDecoder(body).Decode(v); err != nil {
		s.writeBodyError(w, err)
		return false
	}
	return true
}

func (s *Server) boxes(w http.ResponseWriter, records []boundbox.Record) ([]boundbox.BoundBox, bool) {
	boxes := make([]boundbox.BoundBox, 0, len(records))
	for i, rec := range records {
		b, err := rec.Box()
		if err != nil {
			s.writeErrorResponse(w, fmt.Sprintf("box %d: %v", i, err), http.StatusUnprocessableEntity)
			return nil, false
		}
		boxes = append(boxes, b)
	}
	return boxes, true
}

func (s *Server) writeBoxes(w http.ResponseWriter, r *http.Request, boxes []boundbox.BoundBox) {
	boxesOut.WithLabelValues(r.Pattern).Observe(float64(len(boxes)))
	s.writeJSON(w, http.StatusOK, BoxesResponse{Boxes: boundbox.Records(boxes)})
}

func (s *Server) writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeErrorResponse(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		return
	}
	s.writeErrorResponse(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, statusCode, ErrorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Log error, but can't send another response
		slog.Error("Error writing response", "err", err)
	}
}

func (s *Server) maxUploadBytes() int64 {
	return int64(s.cfg.Server.MaxUploadMB) << 20
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
