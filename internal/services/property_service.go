package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Sophavisnuka/real-estate-agency/internal/cache"
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound      = errors.New("property not found")
	ErrAmenityNotFound       = errors.New("property amenity not found")
	ErrNoSimilarProperty     = errors.New("no similar properties found")
	ErrInvalidProperty       = errors.New("title, property_type, province and a non-negative price are required")
	ErrInvalidPropertyStatus = errors.New("invalid property status")
	ErrAmountOutOfRange      = errors.New("price or size is out of range")
)

const topPropertyCount = 6

// Upper bounds of the numeric(14,2) price and numeric(10,2) size columns.
const (
	maxPrice = 1e12
	maxSize  = 1e8
)

type PropertyService struct {
	db    *gorm.DB
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewPropertyService(db *gorm.DB, c cache.Cache, ttl time.Duration) *PropertyService {
	if c == nil {
		c = cache.Noop{}
	}
	return &PropertyService{db: db, cache: c, ttl: ttl, now: time.Now}
}

// Search returns one page of available properties matching f, newest
// listing first.
func (s *PropertyService) Search(ctx context.Context, f SearchFilter) ([]dto.PropertySummary, dto.PageMeta, error) {
	f.Statuses = []models.PropertyStatus{models.PropertyStatusAvailable}
	return s.search(ctx, f)
}

// AdminSearch is Search without the availability restriction. f.Statuses,
// when set, still narrows the result.
func (s *PropertyService) AdminSearch(ctx context.Context, f SearchFilter) ([]dto.PropertySummary, dto.PageMeta, error) {
	return s.search(ctx, f)
}

func (s *PropertyService) search(ctx context.Context, f SearchFilter) ([]dto.PropertySummary, dto.PageMeta, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Property{}).Scopes(f.Scope).Count(&total).Error; err != nil {
		return nil, dto.PageMeta{}, fmt.Errorf("count properties: %w", err)
	}

	rows := make([]dto.PropertySummary, 0, f.Limit)
	if err := s.searchQuery(ctx, f).Find(&rows).Error; err != nil {
		return nil, dto.PageMeta{}, fmt.Errorf("search properties: %w", err)
	}

	return rows, dto.NewPageMeta(total, f.Page, f.Limit), nil
}

func (s *PropertyService) searchQuery(ctx context.Context, f SearchFilter) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Property{}).
		Scopes(f.Scope).
		Order("listed_date DESC").
		Order("id DESC").
		Offset(f.Offset()).
		Limit(f.Limit)
}

func (s *PropertyService) Count(ctx context.Context) (int64, error) {
	return cached(ctx, s.cache, cache.KeyPropertyCount, s.ttl, func() (int64, error) {
		var n int64
		err := s.db.WithContext(ctx).Model(&models.Property{}).Count(&n).Error
		return n, err
	})
}

// Top returns the most expensive available properties.
func (s *PropertyService) Top(ctx context.Context) ([]dto.PropertySummary, error) {
	return cached(ctx, s.cache, cache.KeyTopProperties, s.ttl, func() ([]dto.PropertySummary, error) {
		rows := make([]dto.PropertySummary, 0, topPropertyCount)
		err := s.db.WithContext(ctx).Model(&models.Property{}).
			Where("status = ?", models.PropertyStatusAvailable).
			Order("price DESC").
			Limit(topPropertyCount).
			Find(&rows).Error
		return rows, err
	})
}

// Similar returns available properties in the same province and of the same
// type as the reference, excluding the reference itself.
func (s *PropertyService) Similar(ctx context.Context, id uint) ([]dto.PropertySummary, error) {
	var ref models.Property
	err := s.db.WithContext(ctx).Select("id", "province", "property_type").First(&ref, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}

	var rows []dto.PropertySummary
	if err := s.db.WithContext(ctx).Model(&models.Property{}).
		Where("province = ? AND property_type = ? AND id <> ?", ref.Province, ref.PropertyType, ref.ID).
		Where("status = ?", models.PropertyStatusAvailable).
		Order("listed_date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoSimilarProperty
	}
	return rows, nil
}

func (s *PropertyService) Get(ctx context.Context, id uint) (*dto.PropertyDetail, error) {
	return cached(ctx, s.cache, cache.PropertyKey(id), s.ttl, func() (*dto.PropertyDetail, error) {
		var p models.Property
		err := s.db.WithContext(ctx).
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
			Preload("Amenity").
			First(&p, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		if err != nil {
			return nil, err
		}
		return toPropertyDetail(&p), nil
	})
}

// Create inserts the property, its images and its amenity row in one
// transaction.
func (s *PropertyService) Create(ctx context.Context, req *dto.CreatePropertyRequest) (*models.Property, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.PropertyType) == "" ||
		strings.TrimSpace(req.Province) == "" || req.Price < 0 {
		return nil, ErrInvalidProperty
	}
	if !fitsColumn(req.Price.Float(), maxPrice) || !fitsColumn(req.Size.Float(), maxSize) {
		return nil, ErrAmountOutOfRange
	}

	property := models.Property{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		PropertyType: strings.TrimSpace(req.PropertyType),
		Address:      req.Address,
		City:         req.City,
		Province:     strings.TrimSpace(req.Province),
		Price:        req.Price.Float(),
		Size:         req.Size.Float(),
		Bedrooms:     req.Bedrooms.Int(),
		Bathrooms:    req.Bathrooms.Int(),
		LocationURL:  req.LocationURL,
		Thumbnail:    req.Thumbnail,
		Status:       models.PropertyStatusAvailable,
		ListedDate:   s.now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return fmt.Errorf("create property: %w", err)
		}

		images := buildImages(property.ID, req.Images)
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("create property images: %w", err)
			}
		}

		amenity := amenityFromFlags(property.ID, req.Amenities)
		if err := tx.Create(&amenity).Error; err != nil {
			return fmt.Errorf("create amenity: %w", err)
		}

		property.Images = images
		property.Amenity = &amenity
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, cache.KeyPropertyCount, cache.KeyTopProperties)
	return &property, nil
}

// Update applies a partial update. Property fields, amenity flags and the
// image set change together or not at all.
func (s *PropertyService) Update(ctx context.Context, id uint, req *dto.UpdatePropertyRequest) error {
	fields, err := propertyUpdates(req)
	if err != nil {
		return err
	}
	flags := amenityUpdates(&req.AmenityPatch)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Select("id").First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&property).Updates(fields).Error; err != nil {
				return fmt.Errorf("update property: %w", err)
			}
		}

		var amenity models.Amenity
		if err := tx.Where("property_id = ?", id).First(&amenity).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAmenityNotFound
			}
			return err
		}
		if len(flags) > 0 {
			if err := tx.Model(&amenity).Updates(flags).Error; err != nil {
				return fmt.Errorf("update amenity: %w", err)
			}
		}

		if req.Images != nil {
			if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
				return fmt.Errorf("delete property images: %w", err)
			}
			if images := buildImages(id, req.Images); len(images) > 0 {
				if err := tx.Create(&images).Error; err != nil {
					return fmt.Errorf("create property images: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.PropertyKey(id), cache.KeyTopProperties, cache.KeyPropertyCount)
	return nil
}

// Delete removes the property together with the rows that reference it.
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&models.PropertyImage{}, &models.Amenity{}, &models.VisitRequest{}} {
			if err := tx.Where("property_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("delete %T: %w", child, err)
			}
		}
		res := tx.Delete(&models.Property{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete property: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrPropertyNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, cache.PropertyKey(id), cache.KeyTopProperties, cache.KeyPropertyCount)
	return nil
}

func buildImages(propertyID uint, urls []string) []models.PropertyImage {
	images := make([]models.PropertyImage, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, models.PropertyImage{PropertyID: propertyID, ImageURL: u})
		}
	}
	return images
}

func amenityFromFlags(propertyID uint, f dto.AmenityFlags) models.Amenity {
	return models.Amenity{
		PropertyID:     propertyID,
		SwimmingPool:   f.SwimmingPool,
		Gym:            f.Gym,
		ParkingLot:     f.ParkingLot,
		Garden:         f.Garden,
		Balcony:        f.Balcony,
		Security:       f.Security,
		FireSecurity:   f.FireSecurity,
		Elevator:       f.Elevator,
		CommercialArea: f.CommercialArea,
		NonFlooding:    f.NonFlooding,
		Playground:     f.Playground,
		CommonArea:     f.CommonArea,
	}
}

func propertyUpdates(req *dto.UpdatePropertyRequest) (map[string]any, error) {
	fields := map[string]any{}
	setString := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	setString("title", req.Title)
	setString("description", req.Description)
	setString("property_type", req.PropertyType)
	setString("address", req.Address)
	setString("city", req.City)
	setString("province", req.Province)
	setString("location_url", req.LocationURL)
	setString("property_thumbnail", req.Thumbnail)

	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidProperty
		}
		if !fitsColumn(req.Price.Float(), maxPrice) {
			return nil, ErrAmountOutOfRange
		}
		fields["price"] = req.Price.Float()
	}
	if req.Size != nil {
		if !fitsColumn(req.Size.Float(), maxSize) {
			return nil, ErrAmountOutOfRange
		}
		fields["size"] = req.Size.Float()
	}
	if req.Bedrooms != nil {
		fields["bedrooms"] = req.Bedrooms.Int()
	}
	if req.Bathrooms != nil {
		fields["bathrooms"] = req.Bathrooms.Int()
	}
	if req.Status != nil {
		st, ok := models.ParsePropertyStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidPropertyStatus
		}
		fields["status"] = st
	}
	for _, col := range []string{"title", "property_type", "province"} {
		if v, ok := fields[col]; ok && strings.TrimSpace(v.(string)) == "" {
			return nil, ErrInvalidProperty
		}
	}
	return fields, nil
}

func amenityUpdates(p *dto.AmenityPatch) map[string]any {
	flags := map[string]any{}
	for col, v := range map[string]*bool{
		"swimming_pool":   p.SwimmingPool,
		"gym":             p.Gym,
		"parking_lot":     p.ParkingLot,
		"garden":          p.Garden,
		"balcony":         p.Balcony,
		"security":        p.Security,
		"fire_security":   p.FireSecurity,
		"elevator":        p.Elevator,
		"commercial_area": p.CommercialArea,
		"non_flooding":    p.NonFlooding,
		"playground":      p.Playground,
		"common_area":     p.CommonArea,
	} {
		if v != nil {
			flags[col] = *v
		}
	}
	return flags
}

func toPropertyDetail(p *models.Property) *dto.PropertyDetail {
	d := &dto.PropertyDetail{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		Address:      p.Address,
		City:         p.City,
		Province:     p.Province,
		Price:        p.Price,
		Size:         p.Size,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		LocationURL:  p.LocationURL,
		Thumbnail:    p.Thumbnail,
		Status:       string(p.Status),
		ListedDate:   p.ListedDate,
		Images:       make([]string, 0, len(p.Images)),
	}
	for _, img := range p.Images {
		d.Images = append(d.Images, img.ImageURL)
	}
	if a := p.Amenity; a != nil {
		d.AmenityFlags = dto.AmenityFlags{
			SwimmingPool:   a.SwimmingPool,
			Gym:            a.Gym,
			ParkingLot:     a.ParkingLot,
			Garden:         a.Garden,
			Balcony:        a.Balcony,
			Security:       a.Security,
			FireSecurity:   a.FireSecurity,
			Elevator:       a.Elevator,
			CommercialArea: a.CommercialArea,
			NonFlooding:    a.NonFlooding,
			Playground:     a.Playground,
			CommonArea:     a.CommonArea,
		}
	}
	return d
}

// fitsColumn reports whether v, rounded to cents, is a non-negative value
// below limit.
func fitsColumn(v, limit float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 0 && math.Round(v*100)/100 < limit
}
