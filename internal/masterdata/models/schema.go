package models

// Schema declares the column layout for each master data type. The
// layouts match the masterdata migrations and the SAP IBP field
// mapping, so a dataset built from any source has the same shape.
func Schema(t DataType) []Column {
	switch t {
	case Products:
		return []Column{
			{Name: "product_id", Kind: KindText},
			{Name: "product_name", Kind: KindText},
			{Name: "product_category", Kind: KindText},
			{Name: "product_subcategory", Kind: KindText},
			{Name: "unit_of_measure", Kind: KindText},
			{Name: "gross_weight", Kind: KindNumeric},
			{Name: "net_weight", Kind: KindNumeric},
			{Name: "shelf_life", Kind: KindNumeric},
			{Name: "price", Kind: KindNumeric},
			{Name: "active", Kind: KindBool},
			{Name: "created_on", Kind: KindTimestamp},
			{Name: "last_updated", Kind: KindTimestamp},
		}
	case Locations:
		return []Column{
			{Name: "location_id", Kind: KindText},
			{Name: "location_name", Kind: KindText},
			{Name: "location_type", Kind: KindText},
			{Name: "address", Kind: KindText},
			{Name: "city", Kind: KindText},
			{Name: "country", Kind: KindText},
			{Name: "region", Kind: KindText},
			{Name: "capacity", Kind: KindNumeric},
			{Name: "latitude", Kind: KindNumeric},
			{Name: "longitude", Kind: KindNumeric},
			{Name: "parent_location", Kind: KindText},
			{Name: "active", Kind: KindBool},
			{Name: "created_on", Kind: KindTimestamp},
			{Name: "last_updated", Kind: KindTimestamp},
		}
	case Customers:
		return []Column{
			{Name: "customer_id", Kind: KindText},
			{Name: "customer_name", Kind: KindText},
			{Name: "customer_type", Kind: KindText},
			{Name: "contact_person", Kind: KindText},
			{Name: "email", Kind: KindText},
			{Name: "phone", Kind: KindText},
			{Name: "payment_terms", Kind: KindText},
			{Name: "credit_limit", Kind: KindNumeric},
			{Name: "primary_location_id", Kind: KindText},
			{Name: "active", Kind: KindBool},
			{Name: "created_on", Kind: KindTimestamp},
			{Name: "last_updated", Kind: KindTimestamp},
		}
	case Suppliers:
		return []Column{
			{Name: "supplier_id", Kind: KindText},
			{Name: "supplier_name", Kind: KindText},
			{Name: "supplier_type", Kind: KindText},
			{Name: "contact_person", Kind: KindText},
			{Name: "email", Kind: KindText},
			{Name: "phone", Kind: KindText},
			{Name: "payment_terms", Kind: KindText},
			{Name: "lead_time", Kind: KindNumeric},
			{Name: "quality_rating", Kind: KindNumeric},
			{Name: "primary_location_id", Kind: KindText},
			{Name: "active", Kind: KindBool},
			{Name: "created_on", Kind: KindTimestamp},
			{Name: "last_updated", Kind: KindTimestamp},
		}
	case TimeProfiles:
		return []Column{
			{Name: "profile_id", Kind: KindText},
			{Name: "profile_name", Kind: KindText},
			{Name: "time_unit", Kind: KindText},
			{Name: "period_length", Kind: KindNumeric},
			{Name: "start_date", Kind: KindTimestamp},
			{Name: "end_date", Kind: KindTimestamp},
			{Name: "description", Kind: KindText},
			{Name: "active", Kind: KindBool},
			{Name: "created_on", Kind: KindTimestamp},
			{Name: "last_updated", Kind: KindTimestamp},
		}
	case Resources:
		return []Column{
			{Name: "resource_id", Kind: KindText},
			{Name: "resource_name", Kind: KindText},
			{Name: "resource_type", Kind: KindText},
			{Name: "capacity_unit", Kind: KindText},
			{Name: "standard_capacity", Kind: KindNumeric},
			{Name: "location_id", Kind: KindText},
			{Name: "cost_per_hour", Kind: KindNumeric},
			{Name: "efficiency_rating", Kind: KindNumeric},
			{Name: "maintenance_schedule", Kind: KindText},
			{Name: "active", Kind: KindBool},
			{Name: "created_on", Kind: KindTimestamp},
			{Name: "last_updated", Kind: KindTimestamp},
		}
	}
	return nil
}
