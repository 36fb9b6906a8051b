package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func nullFloat(s string) (sql.NullFloat64, error) {
	if s == "" {
		return sql.NullFloat64{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}, err
	}
	return sql.NullFloat64{Float64: v, Valid: true}, nil
}

func nullInt(s string) (sql.NullInt64, error) {
	if s == "" {
		return sql.NullInt64{}, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: v, Valid: true}, nil
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func contextDB(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize and seed the field-operations database",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create the database schema",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runInit,
			},
			{
				Name:  "areas",
				Usage: "Import service areas from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV file (name,lote,servico,metragem_m2,ordem,manual_schedule,lat,lng)",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runAreas,
			},
			{
				Name:  "config",
				Usage: "Seed per-lot production rates",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "rates",
						Usage: "Comma-separated lote=rate pairs, e.g. 1=25000,2=18000",
						Value: "1=25000,2=25000",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runConfig,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runInit(c *cli.Context) error {
	db, err := contextDB(c)
	if err != nil {
		return err
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS service_areas (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			lote INTEGER,
			servico TEXT NOT NULL,
			metragem_m2 DOUBLE PRECISION,
			ordem INTEGER,
			manual_schedule BOOLEAN NOT NULL DEFAULT FALSE,
			proxima_previsao TEXT,
			days_to_complete INTEGER,
			ultima_rocagem TIMESTAMPTZ,
			status TEXT NOT NULL DEFAULT 'agendado',
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_service_areas_lote_servico
			ON service_areas (lote, servico)`,
		`CREATE TABLE IF NOT EXISTS production_rates (
			lote INTEGER PRIMARY KEY,
			rate_m2_day DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS mowings (
			id BIGSERIAL PRIMARY KEY,
			area_id BIGINT NOT NULL REFERENCES service_areas (id) ON DELETE CASCADE,
			lote INTEGER,
			area_m2 DOUBLE PRECISION NOT NULL,
			mowed_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mowings_mowed_at ON mowings (mowed_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}

	log.Println("schema ready")
	return nil
}

func runAreas(c *cli.Context) error {
	db, err := contextDB(c)
	if err != nil {
		return err
	}

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	// Header row
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	query := `
		INSERT INTO service_areas (
			name, lote, servico, metragem_m2, ordem, manual_schedule, lat, lng
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) < 8 {
			return fmt.Errorf("record %d: expected 8 columns, got %d", count+1, len(record))
		}

		lot, err := nullInt(record[1])
		if err != nil {
			return fmt.Errorf("record %d: invalid lote %q: %w", count+1, record[1], err)
		}
		size, err := nullFloat(record[3])
		if err != nil {
			return fmt.Errorf("record %d: invalid metragem_m2 %q: %w", count+1, record[3], err)
		}
		order, err := nullInt(record[4])
		if err != nil {
			return fmt.Errorf("record %d: invalid ordem %q: %w", count+1, record[4], err)
		}
		manual := strings.EqualFold(record[5], "true") || record[5] == "1"
		lat, err := nullFloat(record[6])
		if err != nil {
			return fmt.Errorf("record %d: invalid lat %q: %w", count+1, record[6], err)
		}
		lng, err := nullFloat(record[7])
		if err != nil {
			return fmt.Errorf("record %d: invalid lng %q: %w", count+1, record[7], err)
		}

		service := record[2]
		if service == "" {
			service = "rocagem"
		}

		_, err = db.ExecContext(c.Context, query,
			record[0], lot, service, size, order, manual, lat, lng)
		if err != nil {
			return fmt.Errorf("record %d: insert failed: %w", count+1, err)
		}
		count++
	}

	log.Printf("imported %d service areas", count)
	return nil
}

func runConfig(c *cli.Context) error {
	db, err := contextDB(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO production_rates (lote, rate_m2_day, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (lote)
		DO UPDATE SET rate_m2_day = EXCLUDED.rate_m2_day, updated_at = NOW()
	`

	for _, pair := range strings.Split(c.String("rates"), ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid rate pair %q", pair)
		}

		lot, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid lote %q: %w", parts[0], err)
		}
		rate, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", parts[1], err)
		}
		if rate <= 0 {
			return fmt.Errorf("lote %d: rate must be positive, got %.2f", lot, rate)
		}

		if _, err := db.ExecContext(c.Context, query, lot, rate); err != nil {
			return fmt.Errorf("failed to seed rate for lote %d: %w", lot, err)
		}
		log.Printf("lote %d: %.0f m²/day", lot, rate)
	}

	return nil
}
