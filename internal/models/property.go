package models

import "time"

// PropertyStatus is the listing state of a property. Only available
// properties are returned by the public search.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusRented    PropertyStatus = "rented"
)

// ParsePropertyStatus returns the status named by s, or false when s is not
// a known status.
func ParsePropertyStatus(s string) (PropertyStatus, bool) {
	switch st := PropertyStatus(s); st {
	case PropertyStatusAvailable, PropertyStatusPending, PropertyStatusSold, PropertyStatusRented:
		return st, true
	}
	return "", false
}

type Property struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	PropertyType string         `gorm:"size:50;not null;index" json:"property_type"`
	Address      string         `gorm:"size:255" json:"address"`
	City         string         `gorm:"size:100;index" json:"city"`
	Province     string         `gorm:"size:100;not null;index" json:"province"`
	Price        float64        `gorm:"type:numeric(14,2);not null;index" json:"price"`
	Size         float64        `gorm:"type:numeric(10,2)" json:"size"`
	Bedrooms     int            `gorm:"index" json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	LocationURL  string         `gorm:"type:text" json:"location_url"`
	Thumbnail    string         `gorm:"column:property_thumbnail;type:text" json:"property_thumbnail"`
	Status       PropertyStatus `gorm:"size:20;not null;index" json:"status"`
	ListedDate   time.Time      `gorm:"not null;index:idx_properties_listed_date,sort:desc" json:"listed_date"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`

	Images  []PropertyImage `gorm:"foreignKey:PropertyID" json:"-"`
	Amenity *Amenity        `gorm:"foreignKey:PropertyID" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}

// IsAvailable reports whether the property can be listed publicly.
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}
