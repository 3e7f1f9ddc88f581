package masterdata

import (
	"database/sql"

	"datahealth_api/migrations/infrastructure"
)

const (
	SchemaMigration       = "masterdata.schema"
	ProductsMigration     = "masterdata.products"
	LocationsMigration    = "masterdata.locations"
	CustomersMigration    = "masterdata.customers"
	SuppliersMigration    = "masterdata.suppliers"
	TimeProfilesMigration = "masterdata.time_profiles"
	ResourcesMigration    = "masterdata.resources"
)

type MasterdataSchema struct{}

func (m *MasterdataSchema) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, SchemaMigration, `
        CREATE SCHEMA IF NOT EXISTS masterdata;
        `)
}

type ProductsTable struct{}

func (m *ProductsTable) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, ProductsMigration, `
        CREATE TABLE IF NOT EXISTS masterdata.products (
            product_id VARCHAR(50),
            product_name TEXT,
            product_category VARCHAR(50),
            product_subcategory VARCHAR(100),
            unit_of_measure VARCHAR(10),
            gross_weight DOUBLE PRECISION,
            net_weight DOUBLE PRECISION,
            shelf_life DOUBLE PRECISION,
            price DOUBLE PRECISION,
            active BOOLEAN,
            created_on TIMESTAMP,
            last_updated TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS products_product_id_idx
            ON masterdata.products(product_id);
        `)
}

type LocationsTable struct{}

func (m *LocationsTable) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, LocationsMigration, `
        CREATE TABLE IF NOT EXISTS masterdata.locations (
            location_id VARCHAR(50),
            location_name TEXT,
            location_type VARCHAR(50),
            address TEXT,
            city VARCHAR(100),
            country VARCHAR(100),
            region VARCHAR(100),
            capacity DOUBLE PRECISION,
            latitude DOUBLE PRECISION,
            longitude DOUBLE PRECISION,
            parent_location VARCHAR(50),
            active BOOLEAN,
            created_on TIMESTAMP,
            last_updated TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS locations_location_id_idx
            ON masterdata.locations(location_id);
        `)
}

type CustomersTable struct{}

func (m *CustomersTable) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, CustomersMigration, `
        CREATE TABLE IF NOT EXISTS masterdata.customers (
            customer_id VARCHAR(50),
            customer_name TEXT,
            customer_type VARCHAR(50),
            contact_person VARCHAR(255),
            email VARCHAR(255),
            phone VARCHAR(50),
            payment_terms VARCHAR(20),
            credit_limit DOUBLE PRECISION,
            primary_location_id VARCHAR(50),
            active BOOLEAN,
            created_on TIMESTAMP,
            last_updated TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS customers_customer_id_idx
            ON masterdata.customers(customer_id);
        `)
}

type SuppliersTable struct{}

func (m *SuppliersTable) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, SuppliersMigration, `
        CREATE TABLE IF NOT EXISTS masterdata.suppliers (
            supplier_id VARCHAR(50),
            supplier_name TEXT,
            supplier_type VARCHAR(50),
            contact_person VARCHAR(255),
            email VARCHAR(255),
            phone VARCHAR(50),
            payment_terms VARCHAR(20),
            lead_time DOUBLE PRECISION,
            quality_rating DOUBLE PRECISION,
            primary_location_id VARCHAR(50),
            active BOOLEAN,
            created_on TIMESTAMP,
            last_updated TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS suppliers_supplier_id_idx
            ON masterdata.suppliers(supplier_id);
        `)
}

type TimeProfilesTable struct{}

func (m *TimeProfilesTable) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, TimeProfilesMigration, `
        CREATE TABLE IF NOT EXISTS masterdata.time_profiles (
            profile_id VARCHAR(50),
            profile_name TEXT,
            time_unit VARCHAR(20),
            period_length DOUBLE PRECISION,
            start_date TIMESTAMP,
            end_date TIMESTAMP,
            description TEXT,
            active BOOLEAN,
            created_on TIMESTAMP,
            last_updated TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS time_profiles_profile_id_idx
            ON masterdata.time_profiles(profile_id);
        `)
}

type ResourcesTable struct{}

func (m *ResourcesTable) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, ResourcesMigration, `
        CREATE TABLE IF NOT EXISTS masterdata.resources (
            resource_id VARCHAR(50),
            resource_name TEXT,
            resource_type VARCHAR(50),
            capacity_unit VARCHAR(20),
            standard_capacity DOUBLE PRECISION,
            location_id VARCHAR(50),
            cost_per_hour DOUBLE PRECISION,
            efficiency_rating DOUBLE PRECISION,
            maintenance_schedule VARCHAR(20),
            active BOOLEAN,
            created_on TIMESTAMP,
            last_updated TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS resources_resource_id_idx
            ON masterdata.resources(resource_id);
        `)
}
