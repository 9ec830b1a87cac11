package location

import (
	"strings"
	"time"

	"github.com/retail/backend/internal/domain/shared"
)

// LocationType distinguishes retail stores from warehouses
type LocationType string

const (
	LocationTypeStore     LocationType = "STORE"
	LocationTypeWarehouse LocationType = "WAREHOUSE"
)

// LocationStatus represents the status of a location record
type LocationStatus string

const (
	LocationStatusActive   LocationStatus = "ACTIVE"
	LocationStatusInactive LocationStatus = "INACTIVE"
)

// SalesLocation is a physical point that holds allocated stock and
// fulfills orders. Only active locations are considered by the
// fulfillment selector.
type SalesLocation struct {
	shared.BaseAggregateRoot
	Code         string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string         `gorm:"type:varchar(200);not null"`
	Province     string         `gorm:"type:varchar(100);not null;index"`
	District     string         `gorm:"type:varchar(100)"`
	Address      string         `gorm:"type:text"`
	PostalCode   string         `gorm:"type:varchar(20)"`
	Phone        string         `gorm:"type:varchar(30)"`
	Latitude     *float64       `gorm:"type:double precision"`
	Longitude    *float64       `gorm:"type:double precision"`
	LocationType LocationType   `gorm:"type:varchar(20);not null;default:'STORE'"`
	Status       LocationStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (SalesLocation) TableName() string {
	return "sales_locations"
}

// NewSalesLocation creates a new active sales location
func NewSalesLocation(code, name, province string, locType LocationType) (*SalesLocation, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if province == "" {
		return nil, shared.NewDomainError("INVALID_PROVINCE", "Province cannot be empty")
	}
	if locType != LocationTypeStore && locType != LocationTypeWarehouse {
		locType = LocationTypeStore
	}

	return &SalesLocation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Province:          province,
		LocationType:      locType,
		Status:            LocationStatusActive,
	}, nil
}

// Update updates contact and address details
func (l *SalesLocation) Update(name, province, district, address, postalCode, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if province == "" {
		return shared.NewDomainError("INVALID_PROVINCE", "Province cannot be empty")
	}

	l.Name = name
	l.Province = province
	l.District = district
	l.Address = address
	l.PostalCode = postalCode
	l.Phone = phone
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// SetCoordinates sets the geographic position
func (l *SalesLocation) SetCoordinates(lat, lng float64) {
	l.Latitude = &lat
	l.Longitude = &lng
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Activate makes the location eligible for fulfillment again
func (l *SalesLocation) Activate() {
	l.Status = LocationStatusActive
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Deactivate removes the location from fulfillment without touching its stock
func (l *SalesLocation) Deactivate() {
	l.Status = LocationStatusInactive
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// IsActive returns true if the location can fulfill orders
func (l *SalesLocation) IsActive() bool {
	return l.Status == LocationStatusActive
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
