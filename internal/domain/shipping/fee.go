// Package shipping computes delivery fees and estimates.
package shipping

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Flat fee tiers by origin/destination province match
var (
	feeSameProvince  = decimal.NewFromInt(50)
	feeCrossProvince = decimal.NewFromInt(150)
)

const (
	etaSameProvince  = "1-2 days"
	etaCrossProvince = "3-5 days"
)

// Quote is a shipping fee with its delivery estimate
type Quote struct {
	Fee          decimal.Decimal
	EstimatedETA string
	SameProvince bool
}

// Calculate returns the fee and ETA for shipping from the origin province
// to the destination province. Province comparison is case-insensitive.
func Calculate(originProvince, destinationProvince string) Quote {
	if strings.EqualFold(originProvince, destinationProvince) {
		return Quote{Fee: feeSameProvince, EstimatedETA: etaSameProvince, SameProvince: true}
	}
	return Quote{Fee: feeCrossProvince, EstimatedETA: etaCrossProvince, SameProvince: false}
}
