package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/Sophavisnuka/real-estate-agency/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*limit far from int overflow.
	MaxPage = 1_000_000
)

// SearchFilter holds the optional listing filters. Nil pointers and empty
// strings mean the filter is not applied.
type SearchFilter struct {
	Province string
	Type     string
	MinPrice *float64
	MaxPrice *float64
	Bedrooms *int
	Search   string
	Page     int
	Limit    int

	// Statuses restricts the listing. Empty means every status, which only
	// the staff listing uses.
	Statuses []models.PropertyStatus
}

// ParseSearchFilter reads the filters through get, which has the shape of
// fiber.Ctx.Query. Malformed numbers are ignored; page and limit fall back
// to their defaults when missing or not positive.
func ParseSearchFilter(get func(key string, defaultValue ...string) string) SearchFilter {
	f := SearchFilter{
		Province: strings.TrimSpace(get("province")),
		Type:     strings.TrimSpace(get("type")),
		Search:   strings.TrimSpace(get("search")),
		Page:     1,
		Limit:    DefaultPageSize,
	}

	if v, ok := parseBound(get("minprice")); ok {
		f.MinPrice = &v
	}
	if v, ok := parseBound(get("maxprice")); ok {
		f.MaxPrice = &v
	}
	if v, err := strconv.Atoi(get("bedrooms")); err == nil {
		f.Bedrooms = &v
	}
	if v, err := strconv.Atoi(get("page")); err == nil && v > 0 {
		f.Page = min(v, MaxPage)
	}
	if v, err := strconv.Atoi(get("limit")); err == nil && v > 0 {
		f.Limit = min(v, MaxPageSize)
	}

	return f
}

func parseBound(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (f SearchFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Scope applies every filter as an AND condition. The free-text search is a
// single OR group matched case-insensitively.
func (f SearchFilter) Scope(db *gorm.DB) *gorm.DB {
	switch len(f.Statuses) {
	case 0:
	case 1:
		db = db.Where("status = ?", f.Statuses[0])
	default:
		db = db.Where("status IN ?", f.Statuses)
	}

	if f.Province != "" {
		db = db.Where("province = ?", f.Province)
	}
	if f.Type != "" {
		db = db.Where("property_type = ?", f.Type)
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		db = db.Where("bedrooms = ?", *f.Bedrooms)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		db = db.Where(
			"(title ILIKE ? OR city ILIKE ? OR province ILIKE ? OR property_type ILIKE ? OR CAST(id AS TEXT) ILIKE ?)",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
