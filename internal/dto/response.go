package dto

import "math"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
	Meta    *PageMeta `json:"meta,omitempty"`
	// Error carries a machine-readable code on authentication failures.
	Error string `json:"error,omitempty"`
}

type PageMeta struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	PageCount int   `json:"pageCount"`
	HasPrev   bool  `json:"hasPrev"`
	HasNext   bool  `json:"hasNext"`
}

// NewPageMeta derives page metadata for a 1-indexed page. limit must be
// positive.
func NewPageMeta(total int64, page, limit int) PageMeta {
	pageCount := int(math.Ceil(float64(total) / float64(limit)))
	return PageMeta{
		Total:     total,
		Page:      page,
		Limit:     limit,
		PageCount: pageCount,
		HasPrev:   page > 1,
		HasNext:   page < pageCount,
	}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Cache     string `json:"cache"`
}

type UploadResponse struct {
	Success bool     `json:"success"`
	URL     string   `json:"url,omitempty"`
	URLs    []string `json:"urls,omitempty"`
}
