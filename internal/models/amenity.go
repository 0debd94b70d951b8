package models

// Amenity holds the fixed feature flags of a property. Every property owns
// exactly one row, created in the same transaction as the property.
type Amenity struct {
	ID             uint `gorm:"primaryKey" json:"-"`
	PropertyID     uint `gorm:"not null;uniqueIndex" json:"-"`
	SwimmingPool   bool `gorm:"not null" json:"swimming_pool"`
	Gym            bool `gorm:"not null" json:"gym"`
	ParkingLot     bool `gorm:"not null" json:"parking_lot"`
	Garden         bool `gorm:"not null" json:"garden"`
	Balcony        bool `gorm:"not null" json:"balcony"`
	Security       bool `gorm:"not null" json:"security"`
	FireSecurity   bool `gorm:"not null" json:"fire_security"`
	Elevator       bool `gorm:"not null" json:"elevator"`
	CommercialArea bool `gorm:"not null" json:"commercial_area"`
	NonFlooding    bool `gorm:"not null" json:"non_flooding"`
	Playground     bool `gorm:"not null" json:"playground"`
	CommonArea     bool `gorm:"not null" json:"common_area"`
}

func (Amenity) TableName() string {
	return "amenities"
}
