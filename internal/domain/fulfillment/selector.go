// Package fulfillment decides which sales location and dispatch address
// serve an order. Both decisions are pure functions over an in-memory
// snapshot so the same snapshot always yields the same choice.
package fulfillment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/location"
	"github.com/retail/backend/internal/domain/shared"
)

// Line is one requested product quantity
type Line struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Snapshot is the stock view the selector runs against: active sales
// locations in stable listing order (created_at ascending) and the
// allocations each of them holds.
type Snapshot struct {
	Locations   []location.SalesLocation
	Allocations map[uuid.UUID][]inventory.Allocation // keyed by sales location ID
}

// SelectLocation picks the first active location that can cover every line
// in full. Partial fulfillment across locations is never attempted. When no
// location qualifies the error names the items the best candidates missed.
func SelectLocation(snap Snapshot, lines []Line) (*location.SalesLocation, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}

	var unmet []string
	for i := range snap.Locations {
		loc := &snap.Locations[i]
		if !loc.IsActive() {
			continue
		}
		missing := unmetLines(snap.Allocations[loc.ID], lines)
		if len(missing) == 0 {
			return loc, nil
		}
		unmet = append(unmet, missing...)
	}

	msg := "No sales location can fulfill every item in the order"
	if len(unmet) > 0 {
		msg = fmt.Sprintf("%s; short on: %s", msg, strings.Join(dedupe(unmet), ", "))
	}
	return nil, shared.NewDomainError("NO_LOCATION_HAS_SUFFICIENT_STOCK", msg)
}

// SelectDeliveryAddress picks the first active address in the destination
// province, falling back to the first active address anywhere.
func SelectDeliveryAddress(addresses []location.DeliveryAddress, province string) (*location.DeliveryAddress, error) {
	var fallback *location.DeliveryAddress
	for i := range addresses {
		addr := &addresses[i]
		if !addr.IsActive() {
			continue
		}
		if strings.EqualFold(addr.Province, province) {
			return addr, nil
		}
		if fallback == nil {
			fallback = addr
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, shared.ErrNoActiveDeliveryAddress
}

// unmetLines returns the product IDs a location cannot cover
func unmetLines(allocs []inventory.Allocation, lines []Line) []string {
	byProduct := make(map[uuid.UUID]*inventory.Allocation, len(allocs))
	for i := range allocs {
		byProduct[allocs[i].ProductID] = &allocs[i]
	}

	var missing []string
	for _, line := range lines {
		alloc, ok := byProduct[line.ProductID]
		if !ok || !alloc.CanFulfill(line.Quantity) {
			missing = append(missing, line.ProductID.String())
		}
	}
	return missing
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
