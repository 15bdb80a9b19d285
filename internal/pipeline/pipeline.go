// internal/pipeline/pipeline.go

// Package pipeline orchestrates one harvester run. Each category walks the
// same state machine:
//
//	INIT → FETCH → EXTRACT → NORMALIZE → VALIDATE → DEDUPE → DIFF →
//	BACKUP → PERSIST → DONE
//
// with FAILED reachable from any stage. Categories are independent: one
// failing never blocks the others. Fetch exhaustion degrades to the built-in
// mock dataset; validation failure aborts the category leaving the live file
// untouched; a persist failure restores the snapshot taken at BACKUP.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hwcatalog/harvester/internal/backup"
	"github.com/hwcatalog/harvester/internal/config"
	"github.com/hwcatalog/harvester/internal/extractor"
	"github.com/hwcatalog/harvester/internal/fetcher"
	"github.com/hwcatalog/harvester/internal/hardware"
	"github.com/hwcatalog/harvester/internal/logging"
	"github.com/hwcatalog/harvester/internal/mock"
	"github.com/hwcatalog/harvester/internal/monitoring"
	"github.com/hwcatalog/harvester/internal/normalize"
	"github.com/hwcatalog/harvester/internal/output"
	"github.com/hwcatalog/harvester/internal/store"
	"github.com/hwcatalog/harvester/internal/validate"
)

type pageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type pageRenderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Pipeline runs the harvest for all configured categories.
type Pipeline struct {
	cfg       *config.Config
	log       logging.Logger
	fetch     pageFetcher
	render    pageRenderer
	validator *validate.Validator
	backups   *backup.Manager
	exports   *output.Manager
	metrics   *monitoring.Metrics
}

// New wires a Pipeline from configuration. The browser renderer is only
// started when some source asks for rendering.
func New(cfg *config.Config, log logging.Logger) (*Pipeline, error) {
	exports, err := output.NewManager(cfg.Exports, log)
	if err != nil {
		return nil, fmt.Errorf("invalid export configuration: %w", err)
	}

	p := &Pipeline{
		cfg:       cfg,
		log:       log,
		fetch:     fetcher.New(cfg.Fetch, log),
		validator: validate.New(cfg.Validation),
		backups:   backup.New(cfg.BackupDir, cfg.RetentionDays, log),
		exports:   exports,
		metrics:   monitoring.NewMetrics(),
	}

	if needsRenderer(cfg) {
		timeout := time.Duration(cfg.Fetch.TimeoutSeconds * float64(time.Second))
		p.render = fetcher.NewRenderer(timeout, log)
	}
	return p, nil
}

func needsRenderer(cfg *config.Config) bool {
	for _, cc := range cfg.Categories {
		for _, src := range cc.Sources {
			if src.Render {
				return true
			}
		}
	}
	return false
}

// Metrics exposes the run instruments for the status server.
func (p *Pipeline) Metrics() *monitoring.Metrics { return p.metrics }

// Close releases the browser renderer, if one was started.
func (p *Pipeline) Close() {
	if r, ok := p.render.(*fetcher.Renderer); ok && r != nil {
		r.Close()
	}
}

// RunAll runs every configured category, sequentially by default or
// concurrently when the configuration asks for it, and finishes with a
// backup retention sweep.
func (p *Pipeline) RunAll(ctx context.Context) RunReport {
	report := RunReport{StartedAt: time.Now()}

	cats := p.configuredCategories()
	if p.cfg.Parallel {
		var wg sync.WaitGroup
		results := make([]CategoryReport, len(cats))
		for i, cat := range cats {
			wg.Add(1)
			go func(i int, cat hardware.Category) {
				defer wg.Done()
				results[i] = p.RunCategory(ctx, cat)
			}(i, cat)
		}
		wg.Wait()
		report.Categories = results
	} else {
		for _, cat := range cats {
			report.Categories = append(report.Categories, p.RunCategory(ctx, cat))
		}
	}

	if removed, err := p.backups.Cleanup(); err != nil {
		p.log.Warnf("backup cleanup failed: %v", err)
	} else if len(removed) > 0 {
		p.log.Infof("expired backup buckets removed: %v", removed)
	}

	report.FinishedAt = time.Now()
	return report
}

// configuredCategories returns the configured categories in canonical order.
func (p *Pipeline) configuredCategories() []hardware.Category {
	var cats []hardware.Category
	for _, cat := range hardware.Categories {
		if _, ok := p.cfg.Categories[cat]; ok {
			cats = append(cats, cat)
		}
	}
	return cats
}

// RunCategory walks one category through the state machine and always
// returns a report, never panics the run.
func (p *Pipeline) RunCategory(ctx context.Context, cat hardware.Category) CategoryReport {
	start := time.Now()
	log := p.log.WithField("category", string(cat))

	report := CategoryReport{Category: cat, State: StateInit, Sources: map[string]int{}}
	stageStart := start
	enter := func(s State) {
		p.metrics.StageDuration.WithLabelValues(string(cat), string(report.State)).
			Observe(time.Since(stageStart).Seconds())
		report.State = s
		stageStart = time.Now()
	}
	finish := func() CategoryReport {
		report.Duration = time.Since(start).Round(time.Millisecond).String()
		status := "done"
		if report.State != StateDone {
			status = "failed"
		}
		p.metrics.RunsTotal.WithLabelValues(string(cat), status).Inc()
		return report
	}
	fail := func(at State, err error) CategoryReport {
		p.metrics.StageDuration.WithLabelValues(string(cat), string(at)).
			Observe(time.Since(stageStart).Seconds())
		report.FailedAt = at
		report.State = StateFailed
		report.Error = err.Error()
		log.Errorf("pipeline failed at %s: %v", at, err)
		return finish()
	}

	livePath := p.cfg.DataFile(cat)

	prior, err := store.Load(livePath)
	if err != nil {
		return fail(StateInit, err)
	}
	log.Infof("starting run, %d prior records", len(prior))

	// FETCH
	enter(StateFetch)
	pages := p.fetchSources(ctx, cat, log)

	var records hardware.Dataset
	if len(pages) == 0 && len(p.cfg.Categories[cat].Sources) > 0 {
		log.Warn("all sources exhausted, falling back to mock dataset")
		report.UsedMock = true
		records = mock.Dataset(cat)
	} else if len(pages) == 0 {
		// No sources configured: mock-only run.
		report.UsedMock = true
		records = mock.Dataset(cat)
	} else {
		// EXTRACT + NORMALIZE
		enter(StateExtract)
		rows := p.extractPages(cat, pages, log)

		enter(StateNormalize)
		records = p.normalizeRows(cat, rows, log)

		if len(records) == 0 {
			log.Warn("no usable records harvested, falling back to mock dataset")
			report.UsedMock = true
			records = mock.Dataset(cat)
		}
	}

	// VALIDATE
	enter(StateValidate)
	if err := p.validator.Batch(records); err != nil {
		return fail(StateValidate, err)
	}

	// DEDUPE
	enter(StateDedupe)
	records = hardware.Dedupe(records)

	// DIFF
	enter(StateDiff)
	report.Diff = hardware.Diff(prior, records)
	added, removed, updated, unchanged := report.Diff.Counts()
	log.Infof("diff: %d added, %d removed, %d updated, %d unchanged",
		added, removed, updated, unchanged)
	p.metrics.ObserveDiff(string(cat), added, removed, updated, unchanged)

	// BACKUP
	enter(StateBackup)
	snapshot, err := p.backups.Backup(livePath)
	if err != nil {
		return fail(StateBackup, err)
	}

	// PERSIST
	enter(StatePersist)
	if err := store.Save(livePath, records); err != nil {
		if snapshot != "" {
			if rerr := p.backups.Restore(snapshot, livePath); rerr != nil {
				log.Errorf("restore after failed persist also failed: %v", rerr)
			}
		}
		return fail(StatePersist, err)
	}

	report.Records = len(records)
	for _, rec := range records {
		report.Sources[rec.Source]++
	}
	p.metrics.RecordsHarvested.WithLabelValues(string(cat)).Set(float64(len(records)))

	if p.exports.SinkCount() > 0 {
		if err := p.exports.Export(ctx, cat, records); err != nil {
			// Exports are best-effort copies; the canonical file is saved.
			log.Warnf("secondary exports incomplete: %v", err)
		}
	}

	enter(StateDone)
	log.Infof("run complete, %d records persisted", len(records))
	return finish()
}

// sourcePage pairs fetched markup with the source it came from.
type sourcePage struct {
	src    config.SourceConfig
	markup string
}

func (p *Pipeline) fetchSources(ctx context.Context, cat hardware.Category, log logging.Logger) []sourcePage {
	var pages []sourcePage
	for _, src := range p.cfg.Categories[cat].Sources {
		markup, err := p.fetchOne(ctx, src)
		if err != nil {
			p.metrics.FetchAttempts.WithLabelValues(string(cat), "error").Inc()
			log.Warnf("source %s failed: %v", src.Name, err)
			continue
		}
		p.metrics.FetchAttempts.WithLabelValues(string(cat), "ok").Inc()
		pages = append(pages, sourcePage{src: src, markup: markup})
	}
	return pages
}

func (p *Pipeline) fetchOne(ctx context.Context, src config.SourceConfig) (string, error) {
	if src.Render {
		if p.render == nil {
			return "", fmt.Errorf("source %s needs rendering but no renderer is available", src.Name)
		}
		return p.render.Render(ctx, src.URL)
	}
	return p.fetch.Fetch(ctx, src.URL)
}

// sourceRows carries extracted rows still tagged with their provenance.
type sourceRows struct {
	source string
	header []string
	rows   [][]string
}

func (p *Pipeline) extractPages(cat hardware.Category, pages []sourcePage, log logging.Logger) []sourceRows {
	var out []sourceRows
	for _, page := range pages {
		if page.src.Listing != nil {
			table, err := extractor.Listings(page.markup, *page.src.Listing)
			if err != nil {
				log.Warnf("listing extraction from %s failed: %v", page.src.Name, err)
				continue
			}
			out = append(out, sourceRows{
				source: page.src.Name,
				header: table.Header,
				rows:   asStringRows(table.Rows),
			})
			continue
		}

		tables, err := extractor.Tables(page.markup, page.src.MinRows, page.src.MinCols)
		if err != nil {
			log.Warnf("table extraction from %s failed: %v", page.src.Name, err)
			continue
		}
		if len(tables) == 0 {
			log.Warnf("no usable tables on %s", page.src.Name)
		}
		for _, table := range tables {
			out = append(out, sourceRows{
				source: page.src.Name,
				header: table.Header,
				rows:   asStringRows(table.Rows),
			})
		}
	}
	return out
}

// normalizeRows converts extracted rows to records. Cross-source duplicates
// collapse here, first occurrence winning, so the batch entering VALIDATE
// already satisfies the uniqueness invariant the validator enforces.
func (p *Pipeline) normalizeRows(cat hardware.Category, batches []sourceRows, log logging.Logger) hardware.Dataset {
	var records hardware.Dataset
	seen := make(map[string]bool)
	dropped := 0

	for _, batch := range batches {
		for _, row := range batch.rows {
			rec := normalize.Row(cat, batch.header, row, batch.source)
			if rec == nil {
				dropped++
				continue
			}
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			records = append(records, *rec)
		}
	}

	if dropped > 0 {
		log.Debugf("dropped %d unusable rows", dropped)
	}
	log.Infof("normalized %d records from %d extraction batches", len(records), len(batches))
	return records
}

func asStringRows(rows []extractor.RawRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
