package location

import (
	"strings"
	"time"

	"github.com/retail/backend/internal/domain/shared"
)

// DeliveryAddress is a dispatch origin used for shipping quotes.
// It never holds stock.
type DeliveryAddress struct {
	shared.BaseAggregateRoot
	Code       string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string         `gorm:"type:varchar(200);not null"`
	Province   string         `gorm:"type:varchar(100);not null;index"`
	District   string         `gorm:"type:varchar(100)"`
	Address    string         `gorm:"type:text"`
	PostalCode string         `gorm:"type:varchar(20)"`
	Phone      string         `gorm:"type:varchar(30)"`
	Latitude   *float64       `gorm:"type:double precision"`
	Longitude  *float64       `gorm:"type:double precision"`
	Status     LocationStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (DeliveryAddress) TableName() string {
	return "delivery_addresses"
}

// NewDeliveryAddress creates a new active delivery address
func NewDeliveryAddress(code, name, province string) (*DeliveryAddress, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Delivery address name cannot be empty")
	}
	if province == "" {
		return nil, shared.NewDomainError("INVALID_PROVINCE", "Province cannot be empty")
	}

	return &DeliveryAddress{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Province:          province,
		Status:            LocationStatusActive,
	}, nil
}

// Update updates contact and address details
func (d *DeliveryAddress) Update(name, province, district, address, postalCode, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Delivery address name cannot be empty")
	}
	if province == "" {
		return shared.NewDomainError("INVALID_PROVINCE", "Province cannot be empty")
	}

	d.Name = name
	d.Province = province
	d.District = district
	d.Address = address
	d.PostalCode = postalCode
	d.Phone = phone
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// Activate makes the address selectable for dispatch
func (d *DeliveryAddress) Activate() {
	d.Status = LocationStatusActive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// Deactivate removes the address from dispatch selection
func (d *DeliveryAddress) Deactivate() {
	d.Status = LocationStatusInactive
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// IsActive returns true if the address can be used for dispatch
func (d *DeliveryAddress) IsActive() bool {
	return d.Status == LocationStatusActive
}
