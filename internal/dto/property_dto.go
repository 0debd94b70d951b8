package dto

import "time"

// AmenityFlags is the amenity feature set as sent by clients on create.
type AmenityFlags struct {
	SwimmingPool   bool `json:"swimming_pool"`
	Gym            bool `json:"gym"`
	ParkingLot     bool `json:"parking_lot"`
	Garden         bool `json:"garden"`
	Balcony        bool `json:"balcony"`
	Security       bool `json:"security"`
	FireSecurity   bool `json:"fire_security"`
	Elevator       bool `json:"elevator"`
	CommercialArea bool `json:"commercial_area"`
	NonFlooding    bool `json:"non_flooding"`
	Playground     bool `json:"playground"`
	CommonArea     bool `json:"common_area"`
}

// AmenityPatch carries the flags of an update. Nil fields are left alone.
type AmenityPatch struct {
	SwimmingPool   *bool `json:"swimming_pool"`
	Gym            *bool `json:"gym"`
	ParkingLot     *bool `json:"parking_lot"`
	Garden         *bool `json:"garden"`
	Balcony        *bool `json:"balcony"`
	Security       *bool `json:"security"`
	FireSecurity   *bool `json:"fire_security"`
	Elevator       *bool `json:"elevator"`
	CommercialArea *bool `json:"commercial_area"`
	NonFlooding    *bool `json:"non_flooding"`
	Playground     *bool `json:"playground"`
	CommonArea     *bool `json:"common_area"`
}

type CreatePropertyRequest struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	PropertyType string       `json:"property_type"`
	Thumbnail    string       `json:"thumbnail"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Province     string       `json:"province"`
	Price        Number       `json:"price"`
	Size         Number       `json:"size"`
	Bedrooms     Number       `json:"bedrooms"`
	Bathrooms    Number       `json:"bathrooms"`
	LocationURL  string       `json:"location_url"`
	Images       []string     `json:"images"`
	Amenities    AmenityFlags `json:"amenities"`
}

// UpdatePropertyRequest is a partial update. Amenity flags are flattened
// into the body. A non-nil Images replaces the whole image set, so an empty
// array removes every image.
type UpdatePropertyRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	PropertyType *string  `json:"property_type"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Province     *string  `json:"province"`
	Price        *Number  `json:"price"`
	Size         *Number  `json:"size"`
	Bedrooms     *Number  `json:"bedrooms"`
	Bathrooms    *Number  `json:"bathrooms"`
	LocationURL  *string  `json:"location_url"`
	Thumbnail    *string  `json:"thumbnail"`
	Status       *string  `json:"status"`
	Images       []string `json:"images"`
	AmenityPatch
}

// PropertySummary is the row shape of listings.
type PropertySummary struct {
	ID           uint      `json:"id"`
	Thumbnail    string    `gorm:"column:property_thumbnail" json:"property_thumbnail"`
	Title        string    `json:"title"`
	PropertyType string    `json:"property_type"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Price        float64   `json:"price"`
	Size         float64   `json:"size"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	Status       string    `json:"status"`
	ListedDate   time.Time `json:"listed_date"`
}

// PropertyDetail flattens images to URLs and amenity flags to top-level keys.
type PropertyDetail struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PropertyType string    `json:"property_type"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	Price        float64   `json:"price"`
	Size         float64   `json:"size"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	LocationURL  string    `json:"location_url"`
	Thumbnail    string    `json:"property_thumbnail"`
	Status       string    `json:"status"`
	ListedDate   time.Time `json:"listed_date"`
	Images       []string  `json:"images"`
	AmenityFlags
}
