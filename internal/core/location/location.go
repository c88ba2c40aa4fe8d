// Package location models the inventory location dimension: a sale is either
// tied to a physical store or to the distribution center. The tagged variant
// replaces nullable store-id checks scattered through business code.
package location

import (
	"encoding/json"
	"fmt"
	"strings"

	"salespoint/internal/core/id"
)

// Kind discriminates the location variants.
type Kind string

const (
	KindStore              Kind = "store"
	KindDistributionCenter Kind = "dc"
)

// DCKey is the stable key used for the distribution center in inventory
// rows and invoice counters.
const DCKey = "DC"

// Location identifies where stock is held and where a sale happened.
// Zero value is invalid; construct via Store or DistributionCenter.
type Location struct {
	kind    Kind
	storeID id.ID
}

// Store returns a store location.
func Store(storeID id.ID) Location {
	return Location{kind: KindStore, storeID: storeID}
}

// DistributionCenter returns the distribution-center location.
func DistributionCenter() Location {
	return Location{kind: KindDistributionCenter}
}

// Kind returns the location discriminator.
func (l Location) Kind() Kind { return l.kind }

// IsStore reports whether the location is a store.
func (l Location) IsStore() bool { return l.kind == KindStore }

// StoreID returns the store id and whether the location is a store.
func (l Location) StoreID() (id.ID, bool) {
	if l.kind != KindStore {
		return id.Nil(), false
	}
	return l.storeID, true
}

// Key returns the stable string key for inventory rows and invoice counters.
// Stores use their UUID, the distribution center uses the DC sentinel.
func (l Location) Key() string {
	if l.kind == KindStore {
		return l.storeID.String()
	}
	return DCKey
}

// String implements fmt.Stringer for logs.
func (l Location) String() string {
	if l.kind == KindStore {
		return fmt.Sprintf("store:%s", l.storeID)
	}
	return "dc"
}

// IsZero reports whether the location was never set.
func (l Location) IsZero() bool { return l.kind == "" }

// MarshalJSON encodes the location as its storage key.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Key())
}

// UnmarshalJSON restores a location from its storage key.
func (l *Location) UnmarshalJSON(b []byte) error {
	var key string
	if err := json.Unmarshal(b, &key); err != nil {
		return err
	}
	loc, err := ParseKey(key)
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

// ParseKey restores a Location from its storage key.
func ParseKey(key string) (Location, error) {
	if strings.EqualFold(key, DCKey) {
		return DistributionCenter(), nil
	}
	storeID, err := id.Parse(key)
	if err != nil {
		return Location{}, fmt.Errorf("parse location key %q: %w", key, err)
	}
	return Store(storeID), nil
}
