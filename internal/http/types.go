package http

import "brandscope/internal/model"

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}

// InsightsResponse wraps a BrandInsights record. Cached is true when the
// record came from Redis or Postgres rather than a live extraction.
type InsightsResponse struct {
	Success bool                 `json:"success"`
	Cached  bool                 `json:"cached"`
	Data    *model.BrandInsights `json:"data"`
}

// EvictResponse reports whether DELETE /v1/insights removed a record.
type EvictResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}
