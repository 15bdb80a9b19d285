// internal/output/manager.go

// Package output exports persisted datasets to optional secondary sinks:
// spreadsheet files for manual review and databases for downstream apps.
// The JSON file written by the store remains the canonical state; sinks are
// best-effort copies and a sink failure never fails the run.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hwcatalog/harvester/internal/config"
	"github.com/hwcatalog/harvester/internal/hardware"
	"github.com/hwcatalog/harvester/internal/logging"
)

// Sink receives a category dataset after a successful persist.
type Sink interface {
	Name() string
	Export(ctx context.Context, cat hardware.Category, records hardware.Dataset) error
}

// Manager fans a dataset out to every configured sink.
type Manager struct {
	sinks []Sink
	log   logging.Logger
}

// NewManager builds sinks from the export section of the configuration.
func NewManager(cfgs []config.ExportConfig, log logging.Logger) (*Manager, error) {
	m := &Manager{log: log}
	for i, cfg := range cfgs {
		sink, err := newSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("export %d: %w", i, err)
		}
		m.sinks = append(m.sinks, sink)
	}
	return m, nil
}

func newSink(cfg config.ExportConfig) (Sink, error) {
	switch cfg.Format {
	case "csv":
		return &csvSink{path: cfg.Path}, nil
	case "excel":
		return &excelSink{path: cfg.Path}, nil
	case "sqlite":
		return &sqlSink{driver: "sqlite3", dsn: cfg.Path, table: cfg.Table, dialect: dialectSQLite}, nil
	case "mysql":
		return &sqlSink{driver: "mysql", dsn: cfg.DSN, table: cfg.Table, dialect: dialectMySQL}, nil
	case "postgres":
		return &sqlSink{driver: "postgres", dsn: cfg.DSN, table: cfg.Table, dialect: dialectPostgres}, nil
	case "mongodb":
		return &mongoSink{uri: cfg.DSN, database: cfg.Database, collection: cfg.Table}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", cfg.Format)
	}
}

// Export runs every sink; failures are logged and summarized, not fatal.
func (m *Manager) Export(ctx context.Context, cat hardware.Category, records hardware.Dataset) error {
	var failures []string
	for _, sink := range m.sinks {
		if err := sink.Export(ctx, cat, records); err != nil {
			m.log.Errorf("export to %s failed: %v", sink.Name(), err)
			failures = append(failures, fmt.Sprintf("%s: %v", sink.Name(), err))
			continue
		}
		m.log.Infof("exported %d %s records to %s", len(records), cat, sink.Name())
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d export(s) failed: %s", len(failures), strings.Join(failures, "; "))
	}
	return nil
}

// SinkCount reports how many sinks are configured.
func (m *Manager) SinkCount() int { return len(m.sinks) }

// Every sink shares one flat row shape: the common columns plus the full
// record JSON, so one table serves all three categories.
var exportColumns = []string{
	"id", "category", "brand", "model", "release_date", "price", "source", "specs",
}

func exportRow(rec hardware.Record) ([]interface{}, error) {
	specs, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %s: %w", rec.ID, err)
	}

	var price interface{}
	if rec.Price != nil {
		price = *rec.Price
	}
	return []interface{}{
		rec.ID, string(rec.Category), rec.Brand, rec.Model,
		rec.ReleaseDate, price, rec.Source, string(specs),
	}, nil
}

func tableName(configured string, cat hardware.Category) string {
	if configured != "" {
		return configured
	}
	return string(cat) + "_specs"
}
