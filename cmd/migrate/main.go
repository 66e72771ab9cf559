package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nschafer/dugout/internal/models"
	"github.com/nschafer/dugout/pkg/config"
	"github.com/nschafer/dugout/pkg/database"
	"github.com/sirupsen/logrus"
)

const insertBatchSize = 500

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|lahman <csv-dir>|war <csv-file>|register <csv-file>]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "lahman":
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate lahman <csv-dir>")
		}
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		if err := importLahman(db, os.Args[2]); err != nil {
			logrus.Fatalf("Failed to import ledger: %v", err)
		}
		logrus.Info("Ledger imported successfully")

	case "war":
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate war <csv-file>")
		}
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		if err := importWAR(db, os.Args[2]); err != nil {
			logrus.Fatalf("Failed to import WAR file: %v", err)
		}
		logrus.Info("WAR file imported successfully")

	case "register":
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate register <csv-file>")
		}
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		if err := importRegister(db, os.Args[2]); err != nil {
			logrus.Fatalf("Failed to import register: %v", err)
		}
		logrus.Info("Register imported successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.AutoMigrate(
		&models.Person{},
		&models.BattingSeason{},
		&models.PitchingSeason{},
		&models.WarSeason{},
		&models.AwardRow{},
		&models.AllStarRow{},
		&models.SeriesPostRow{},
		&models.RegisterRow{},
		&models.TeamSeason{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	// The WAR ledger is probed on every lookup; it needs its own indexes.
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_war_bbref ON jeffbagwell_war (key_bbref)",
		"CREATE INDEX IF NOT EXISTS idx_war_year ON jeffbagwell_war (year_id)",
		"CREATE INDEX IF NOT EXISTS idx_war_bbref_year ON jeffbagwell_war (key_bbref, year_id)",
		"CREATE INDEX IF NOT EXISTS idx_batting_player ON lahman_batting (playerid)",
		"CREATE INDEX IF NOT EXISTS idx_pitching_player ON lahman_pitching (playerid)",
		"CREATE INDEX IF NOT EXISTS idx_people_names ON lahman_people (namelast, namefirst)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

func dropTables(db *database.DB) error {
	tables := []string{
		"lahman_people", "lahman_batting", "lahman_pitching",
		"jeffbagwell_war", "lahman_awardsplayers", "lahman_allstarfull",
		"lahman_seriespost", "chadwick_register", "lahman_teams",
	}
	for _, table := range tables {
		if err := db.Exec("DROP TABLE IF EXISTS " + table).Error; err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

// lahmanFiles maps ledger CSV file names to their tables and the
// columns the service reads. Columns absent from a file import as NULL.
var lahmanFiles = []struct {
	file    string
	table   string
	columns []string
}{
	{"People.csv", "lahman_people", []string{"playerid", "namefirst", "namelast", "birthyear", "debut", "finalgame"}},
	{"Batting.csv", "lahman_batting", []string{"playerid", "yearid", "teamid", "g", "ab", "h", "2b", "3b", "hr", "rbi", "sb", "bb", "hbp", "sf", "sh", "so"}},
	{"Pitching.csv", "lahman_pitching", []string{"playerid", "yearid", "teamid", "w", "l", "g", "gs", "cg", "sho", "sv", "ipouts", "h", "er", "hr", "bb", "so", "era"}},
	{"AwardsPlayers.csv", "lahman_awardsplayers", []string{"playerid", "awardid", "yearid"}},
	{"AllstarFull.csv", "lahman_allstarfull", []string{"playerid", "yearid", "gp"}},
	{"SeriesPost.csv", "lahman_seriespost", []string{"yearid", "round", "teamidwinner", "teamidloser"}},
	{"Teams.csv", "lahman_teams", []string{"yearid", "teamid", "franchid", "name", "g", "w", "l", "r", "ra"}},
}

func importLahman(db *database.DB, dir string) error {
	for _, lf := range lahmanFiles {
		path := filepath.Join(dir, lf.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logrus.Warnf("Skipping %s: file not found", lf.file)
			continue
		}
		count, err := importCSV(db, path, lf.table, lf.columns)
		if err != nil {
			return fmt.Errorf("importing %s: %w", lf.file, err)
		}
		logrus.Infof("Imported %d rows into %s", count, lf.table)
	}
	return nil
}

func importWAR(db *database.DB, path string) error {
	count, err := importCSV(db, path, "jeffbagwell_war", []string{"key_bbref", "year_id", "war162"})
	if err != nil {
		return err
	}
	logrus.Infof("Imported %d rows into jeffbagwell_war", count)
	return nil
}

func importRegister(db *database.DB, path string) error {
	count, err := importCSV(db, path, "chadwick_register", []string{"key_lahman", "key_mlbam"})
	if err != nil {
		return err
	}
	logrus.Infof("Imported %d rows into chadwick_register", count)
	return nil
}

// importCSV streams one CSV into a table, keeping only the named
// columns. Header matching is case-insensitive because the ledger
// files mix conventions (playerID, yearID, nameFirst).
func importCSV(db *database.DB, path, table string, columns []string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	// Map each wanted column to its position in the file.
	positions := make([]int, len(columns))
	for i, col := range columns {
		positions[i] = -1
		for j, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), col) {
				positions[i] = j
				break
			}
		}
	}

	colList := strings.Join(quoteColumns(columns), ", ")
	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	total := 0
	batch := make([][]interface{}, 0, insertBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		values := make([]string, 0, len(batch))
		args := make([]interface{}, 0, len(batch)*len(columns))
		for _, row := range batch {
			values = append(values, placeholders)
			args = append(args, row...)
		}
		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, colList, strings.Join(values, ", "))
		if err := db.Exec(stmt, args...).Error; err != nil {
			return fmt.Errorf("batch insert into %s failed: %w", table, err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("failed to read row: %w", err)
		}

		row := make([]interface{}, len(columns))
		for i, pos := range positions {
			if pos < 0 || pos >= len(record) || record[pos] == "" {
				row[i] = nil
				continue
			}
			row[i] = record[pos]
		}
		batch = append(batch, row)

		if len(batch) >= insertBatchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// quoteColumns protects the numeric-leading batting columns (2b, 3b).
func quoteColumns(columns []string) []string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = `"` + col + `"`
	}
	return quoted
}
