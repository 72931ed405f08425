package server

import (
	"github.com/akashtjohn/boundbox/internal/config"
	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/akashtjohn/boundbox/pkg/boundbox"
)

// Server serves the box geometry over HTTP.
type Server struct {
	registry *adapters.Registry
	cfg      config.Config
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status   string   `json:"status"`
	Time     string   `json:"time"`
	Adapters []string `json:"adapters"`
}

// BoxesRequest carries boxes to canonicalize or transform.
type BoxesRequest struct {
	Boxes []boundbox.Record `json:"boxes"`
}

// TransformRequest rotates and rescales boxes. Rotation happens first.
type TransformRequest struct {
	Boxes         []boundbox.Record `json:"boxes"`
	RotateDegrees float64           `json:"rotate_degrees"`
	Anticlockwise bool              `json:"anticlockwise"`
	WidthRatio    float64           `json:"width_ratio"`
	HeightRatio   float64           `json:"height_ratio"`
}

// MergeRequest merges boxes into lines, or into a single box with mode "all".
// Options left out fall back to the server configuration.
type MergeRequest struct {
	Boxes   []boundbox.Record      `json:"boxes"`
	Mode    string                 `json:"mode"`
	Options *boundbox.MergeOptions `json:"options,omitempty"`
}

// BoxesResponse is the answer of every box endpoint.
type BoxesResponse struct {
	Boxes []boundbox.Record `json:"boxes"`
}

// ErrorResponse describes a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	mergeModeLines = "lines"
	mergeModeAll   = "all"
)
