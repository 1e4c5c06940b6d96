package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('DRAFT', 'SOLD', 'REMITTED', 'PAID');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'batch_status') THEN
			CREATE TYPE batch_status AS ENUM ('OPEN', 'CLOSED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'remittance_status') THEN
			CREATE TYPE remittance_status AS ENUM ('DRAFT', 'SUBMITTED', 'APPROVED', 'REJECTED', 'PAID');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_status') THEN
			CREATE TYPE payment_status AS ENUM ('UNPAID', 'PAID');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_method') THEN
			CREATE TYPE payment_method AS ENUM ('EFT', 'CHEQUE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'addon_pricing_type') THEN
			CREATE TYPE addon_pricing_type AS ENUM ('FIXED', 'PER_TERM', 'PER_CLAIM');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS dealerships (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		markup_pct NUMERIC(7,4) NOT NULL DEFAULT 0,
		address TEXT,
		city VARCHAR(128),
		province VARCHAR(64),
		postal VARCHAR(16),
		phone VARCHAR(32),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		dealership_id UUID NOT NULL REFERENCES dealerships(id),
		email VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		role VARCHAR(64) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		provider_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		type VARCHAR(64) NOT NULL,
		coverage TEXT,
		exclusions TEXT,
		term_months BIGINT,
		term_km BIGINT,
		deductible_cents BIGINT,
		base_price_cents BIGINT,
		dealer_cost_cents BIGINT,
		eligibility_max_vehicle_age_years BIGINT,
		eligibility_max_mileage_km BIGINT,
		eligible_makes JSONB,
		eligible_models JSONB,
		eligible_trims JSONB,
		published BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS product_pricing (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		term_months BIGINT,
		term_km BIGINT,
		deductible_cents BIGINT NOT NULL DEFAULT 0,
		base_price_cents BIGINT NOT NULL DEFAULT 0,
		dealer_cost_cents BIGINT,
		vehicle_mileage_min_km BIGINT,
		vehicle_mileage_max_km BIGINT,
		vehicle_class VARCHAR(64),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS product_addons (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		pricing_type addon_pricing_type NOT NULL DEFAULT 'FIXED',
		base_price_cents BIGINT NOT NULL DEFAULT 0,
		min_price_cents BIGINT,
		max_price_cents BIGINT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		applies_to_all_pricing BOOLEAN NOT NULL DEFAULT TRUE,
		applicable_pricing_row_ids JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		warranty_id VARCHAR(32) NOT NULL,
		contract_number VARCHAR(64),
		dealership_id UUID NOT NULL REFERENCES dealerships(id),
		status contract_status NOT NULL DEFAULT 'DRAFT',
		created_by_user_id UUID NOT NULL,
		created_by_email VARCHAR(255) NOT NULL,
		sold_by_user_id UUID,
		sold_by_email VARCHAR(255),
		sold_at TIMESTAMPTZ,
		remitted_by_user_id UUID,
		remitted_by_email VARCHAR(255),
		remitted_at TIMESTAMPTZ,
		paid_by_user_id UUID,
		paid_by_email VARCHAR(255),
		paid_at TIMESTAMPTZ,
		vehicle_vin VARCHAR(32),
		vehicle_year VARCHAR(8),
		vehicle_make VARCHAR(64),
		vehicle_model VARCHAR(64),
		vehicle_trim VARCHAR(64),
		vehicle_body_class VARCHAR(64),
		vehicle_engine VARCHAR(128),
		vehicle_transmission VARCHAR(64),
		odometer_km BIGINT,
		product_id UUID REFERENCES products(id),
		product_pricing_id UUID,
		pricing_term_months BIGINT,
		pricing_term_km BIGINT,
		pricing_deductible_cents BIGINT,
		pricing_base_price_cents BIGINT,
		pricing_dealer_cost_cents BIGINT,
		addon_snapshot JSONB,
		addon_total_retail_cents BIGINT NOT NULL DEFAULT 0,
		addon_total_cost_cents BIGINT NOT NULL DEFAULT 0,
		customer_name VARCHAR(255),
		customer_email VARCHAR(255),
		customer_phone VARCHAR(32),
		customer_address TEXT,
		customer_city VARCHAR(128),
		customer_province VARCHAR(64),
		customer_postal VARCHAR(16),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS batches (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		dealership_id UUID NOT NULL REFERENCES dealerships(id),
		name VARCHAR(255) NOT NULL,
		status batch_status NOT NULL DEFAULT 'OPEN',
		remittance_status remittance_status,
		rejection_reason TEXT,
		contract_ids JSONB,
		subtotal_cents BIGINT NOT NULL DEFAULT 0,
		tax_rate_pct NUMERIC(7,4) NOT NULL DEFAULT 0,
		tax_cents BIGINT NOT NULL DEFAULT 0,
		total_cents BIGINT NOT NULL DEFAULT 0,
		payment_status payment_status NOT NULL DEFAULT 'UNPAID',
		payment_method payment_method,
		payment_reference VARCHAR(128),
		payment_date TIMESTAMPTZ,
		paid_by_user_id UUID,
		paid_by_email VARCHAR(255),
		paid_at TIMESTAMPTZ,
		created_by_user_id UUID NOT NULL,
		created_by_email VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		dealership_id UUID NOT NULL REFERENCES dealerships(id),
		name VARCHAR(255) NOT NULL,
		content_type VARCHAR(128) NOT NULL,
		storage_key VARCHAR(512) NOT NULL,
		size_bytes BIGINT NOT NULL DEFAULT 0,
		uploaded_by_user_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_warranty_id ON contracts (warranty_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_dealership_id ON contracts (dealership_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_vehicle_vin ON contracts (vehicle_vin) WHERE vehicle_vin IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_batches_dealership_id ON batches (dealership_id);`,
	`CREATE INDEX IF NOT EXISTS idx_batches_status ON batches (status);`,
	`CREATE INDEX IF NOT EXISTS idx_products_provider_id ON products (provider_id);`,
	`CREATE INDEX IF NOT EXISTS idx_products_published ON products (published);`,
	`CREATE INDEX IF NOT EXISTS idx_product_pricing_product_id ON product_pricing (product_id);`,
	`CREATE INDEX IF NOT EXISTS idx_product_addons_product_id ON product_addons (product_id);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_dealership_id ON employees (dealership_id);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_contract_id ON documents (contract_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
