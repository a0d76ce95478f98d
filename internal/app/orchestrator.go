package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"html-tag-names/internal/checksum"
	"html-tag-names/internal/config"
	"html-tag-names/internal/fetcher"
	"html-tag-names/internal/observability"
	"html-tag-names/internal/scraper"
	"html-tag-names/internal/storage"
	"html-tag-names/internal/taglist"
)

// PageFetcher получает HTML страницы-источника
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.FetchResponse, error)
}

type Orchestrator struct {
	cfg      *config.Config
	logger   *observability.Logger
	fetcher  PageFetcher
	renderer PageFetcher
	store    storage.Repository
	mirror   storage.Repository
	checksum *checksum.Generator
}

// NewOrchestrator собирает пайплайн. renderer нужен только источникам с render: true,
// mirror необязательная копия списка (например, MS SQL); оба могут быть nil.
func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	f PageFetcher,
	renderer PageFetcher,
	store storage.Repository,
	mirror storage.Repository,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger,
		fetcher:  f,
		renderer: renderer,
		store:    store,
		mirror:   mirror,
		checksum: checksum.NewGenerator(),
	}
}

// SourceResult итог одного пайплайна fetch -> parse -> extract
type SourceResult struct {
	Name     string
	URL      string
	Names    []string
	Matched  int
	Skipped  int
	Rejected int
	Added    int
}

type RunStats struct {
	Seeded         int
	Added          int
	Total          int
	Completed      int
	Sources        []*SourceResult
	ChecksumBefore string
	ChecksumAfter  string
}

// Run загружает исходный список, параллельно обходит все источники, дожидается
// их всех и только затем сливает результаты и записывает файл. Первая ошибка
// отменяет остальные пайплайны; в этом случае ничего не записывается.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	seed, err := o.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing list: %w", err)
	}

	list := taglist.New(seed)
	stats := &RunStats{
		Seeded:         list.Len(),
		ChecksumBefore: o.checksum.GenerateListHash(list.Names()),
	}

	o.logger.Info("Starting crawl",
		"sources", len(o.cfg.Sources),
		"seeded", stats.Seeded,
		"output", o.cfg.Output.Path,
	)

	results := make([]*SourceResult, len(o.cfg.Sources))
	var completed atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range o.cfg.Sources {
		i, src := i, src
		g.Go(func() error {
			res, err := o.runSource(gctx, src)
			if err != nil {
				return err
			}
			results[i] = res
			completed.Add(1)
			return nil
		})
	}

	err = g.Wait()
	stats.Completed = int(completed.Load())
	if err != nil {
		o.logger.Error("Crawl aborted",
			"completed", stats.Completed,
			"sources", len(o.cfg.Sources),
			"error", err.Error(),
		)
		return stats, err
	}

	// Слияние в порядке конфигурации, а не завершения, чтобы порядок вставки
	// был воспроизводимым
	for _, res := range results {
		res.Added = list.Merge(res.Names)
		stats.Added += res.Added
		stats.Sources = append(stats.Sources, res)

		o.logger.Info("Source merged",
			"source", res.Name,
			"extracted", len(res.Names),
			"added", res.Added,
		)
	}

	if err := o.finalize(ctx, list, stats); err != nil {
		return stats, err
	}

	return stats, nil
}

func (o *Orchestrator) runSource(ctx context.Context, src config.SourceConfig) (*SourceResult, error) {
	f := o.fetcher
	if src.Render {
		if o.renderer == nil {
			return nil, fmt.Errorf("source %s: render requested but no renderer configured", src.Name)
		}
		f = o.renderer
	}

	o.logger.Info("Processing source", "source", src.Name, "url", src.URL, "render", src.Render)

	resp, err := f.Fetch(ctx, src.URL)
	if err != nil {
		o.logger.Error("Fetch failed",
			"source", src.Name,
			"url", src.URL,
			"error", err.Error(),
		)
		return nil, fmt.Errorf("source %s: %w", src.Name, err)
	}

	ext, err := scraper.NewScraper(src.Rule).ParseNames(string(resp.Body))
	if err != nil {
		o.logger.Error("Parse failed",
			"source", src.Name,
			"error", err.Error(),
		)
		return nil, fmt.Errorf("source %s: %w", src.Name, err)
	}

	if ext.Matched == 0 {
		o.logger.Warn("Selector matched nothing", "source", src.Name, "selector", src.Rule.Selector)
	}

	o.logger.Info("Source extracted",
		"source", src.Name,
		"matched", ext.Matched,
		"skipped", ext.Skipped,
		"rejected", ext.Rejected,
		"names", len(ext.Names),
	)

	return &SourceResult{
		Name:     src.Name,
		URL:      src.URL,
		Names:    ext.Names,
		Matched:  ext.Matched,
		Skipped:  ext.Skipped,
		Rejected: ext.Rejected,
	}, nil
}

// finalize сортирует список и записывает его один раз
func (o *Orchestrator) finalize(ctx context.Context, list *taglist.TagList, stats *RunStats) error {
	sorted := list.Sorted()
	stats.Total = len(sorted)
	stats.ChecksumAfter = o.checksum.GenerateListHash(sorted)

	if err := o.store.Save(ctx, sorted); err != nil {
		o.logger.Error("Write failed", "error", err.Error())
		return err
	}

	if stats.ChecksumAfter == stats.ChecksumBefore {
		o.logger.Info("List unchanged", "total", stats.Total, "checksum", stats.ChecksumAfter)
	} else {
		o.logger.Info("List updated",
			"total", stats.Total,
			"added", stats.Added,
			"checksum_before", stats.ChecksumBefore,
			"checksum_after", stats.ChecksumAfter,
		)
	}

	if o.mirror != nil {
		if err := o.mirror.Save(ctx, sorted); err != nil {
			o.logger.Error("Mirror write failed", "error", err.Error())
			return err
		}
	}

	return nil
}
