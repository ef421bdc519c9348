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
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'fleet_status') THEN
			CREATE TYPE fleet_status AS ENUM ('active', 'inactive');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'pump_type') THEN
			CREATE TYPE pump_type AS ENUM ('line', 'boom');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'schedule_status') THEN
			CREATE TYPE schedule_status AS ENUM ('draft', 'generated', 'finalized', 'completed', 'cancelled');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'schedule_type') THEN
			CREATE TYPE schedule_type AS ENUM ('pumping', 'supply');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'table_variant') THEN
			CREATE TYPE table_variant AS ENUM ('standard', 'burst');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS plants (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		location TEXT,
		capacity_per_hour NUMERIC NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_plants_user_id ON plants (user_id);`,
	`CREATE TABLE IF NOT EXISTS transit_mixers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL,
		plant_id UUID REFERENCES plants(id) ON DELETE SET NULL,
		identifier VARCHAR(64) NOT NULL,
		capacity NUMERIC NOT NULL,
		status fleet_status NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_transit_mixers_user_id ON transit_mixers (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_transit_mixers_plant_id ON transit_mixers (plant_id);`,
	`CREATE TABLE IF NOT EXISTS pumps (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL,
		plant_id UUID REFERENCES plants(id) ON DELETE SET NULL,
		identifier VARCHAR(64) NOT NULL,
		capacity NUMERIC NOT NULL,
		type pump_type NOT NULL,
		status fleet_status NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_pumps_user_id ON pumps (user_id);`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL,
		schedule_no VARCHAR(64),
		client_name VARCHAR(255),
		project_name VARCHAR(255),
		site_address TEXT,
		plant_id UUID REFERENCES plants(id) ON DELETE SET NULL,
		pump_id UUID REFERENCES pumps(id) ON DELETE SET NULL,
		type schedule_type NOT NULL DEFAULT 'pumping',
		variant table_variant NOT NULL DEFAULT 'standard',
		status schedule_status NOT NULL DEFAULT 'draft',
		input_params JSONB NOT NULL,
		output_table JSONB NOT NULL DEFAULT '[]',
		burst_table JSONB NOT NULL DEFAULT '[]',
		schedule_date DATE NOT NULL,
		tm_count INT NOT NULL DEFAULT 0,
		trip_count INT NOT NULL DEFAULT 0,
		pumping_time NUMERIC NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_user_id ON schedules (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_schedule_date ON schedules (schedule_date);`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_status ON schedules (status);`,
}

func runMigrations(database *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := database.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
