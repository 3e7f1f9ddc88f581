package models

import (
	"fmt"
	"strings"
)

// DataType identifies one of the supply chain master data domains
// tracked by the monitor.
type DataType string

const (
	Products     DataType = "products"
	Locations    DataType = "locations"
	Customers    DataType = "customers"
	Suppliers    DataType = "suppliers"
	TimeProfiles DataType = "time_profiles"
	Resources    DataType = "resources"
)

func AllDataTypes() []DataType {
	return []DataType{Products, Locations, Customers, Suppliers, TimeProfiles, Resources}
}

// ParseDataType accepts both the wire form ("time_profiles") and the
// display form ("Time Profiles").
func ParseDataType(s string) (DataType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	for _, t := range AllDataTypes() {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown master data type: %q", s)
}

// Label returns the display name used in reports and API payloads.
func (t DataType) Label() string {
	parts := strings.Split(string(t), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// Table returns the table name under the masterdata schema.
func (t DataType) Table() string {
	return string(t)
}

// KeyColumns returns the declared key fields for the data type.
func (t DataType) KeyColumns() []string {
	switch t {
	case Products:
		return []string{"product_id"}
	case Locations:
		return []string{"location_id"}
	case Customers:
		return []string{"customer_id"}
	case Suppliers:
		return []string{"supplier_id"}
	case TimeProfiles:
		return []string{"profile_id"}
	case Resources:
		return []string{"resource_id"}
	}
	return nil
}
