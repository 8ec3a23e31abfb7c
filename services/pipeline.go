package services

import (
	"catalog-converter/config"
	"catalog-converter/storage"
	"catalog-converter/utils"
)

// Pipeline wires one full conversion run: optional source download, change
// detection, catalog build in the configured mode, and publishing.
type Pipeline struct {
	cfg      *config.Config
	logger   *utils.Logger
	detector *Detector
	builder  *Builder
	writer   storage.DocumentPublisher
	gate     *utils.RunGate
}

// NewPipeline assembles a Pipeline from configuration.
func NewPipeline(cfg *config.Config, logger *utils.Logger) *Pipeline {
	backups := storage.NewBackupKeeper(cfg.BackupDir, cfg.CatalogName, cfg.BackupRetention, logger)
	builder := NewBuilder(cfg.GroupColumn, logger)
	builder.Delimiter = cfg.CSVComma()
	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		detector: NewDetector(cfg.FingerprintPath, logger),
		builder:  builder,
		writer:   storage.NewJSONWriter(cfg.OutputPaths, cfg.CompactPath, backups, logger),
		gate:     utils.NewRunGate(),
	}
}

// Builder exposes the pipeline's builder for per-request use by the server.
func (p *Pipeline) Builder() *Builder { return p.builder }

// Gate exposes the run gate shared by every build trigger.
func (p *Pipeline) Gate() *utils.RunGate { return p.gate }

// Run performs one conversion run. With force false an unchanged source
// short-circuits the run before any row is processed. Structural failures
// come back as error values; per-row failures are absorbed inside the
// builder.
func (p *Pipeline) Run(force bool) error {
	var runErr error
	p.gate.Run(func() { runErr = p.run(force) })
	return runErr
}

// TryRun performs one conversion run unless another run is already in
// flight, in which case it reports false without blocking.
func (p *Pipeline) TryRun(force bool) (bool, error) {
	var runErr error
	ran := p.gate.TryRun(func() { runErr = p.run(force) })
	return ran, runErr
}

func (p *Pipeline) run(force bool) error {
	p.logger.Info("[pipeline] Starting conversion run (mode: %s)", p.cfg.Mode)

	if p.cfg.SourceURL != "" {
		fetcher := NewFetcher(p.cfg.SourceURL, p.cfg.SourcePath, p.cfg.FetchRetries, p.logger)
		if err := fetcher.Fetch(); err != nil {
			return err
		}
	}

	if !force && !p.detector.Changed(p.cfg.SourcePath) {
		return nil
	}

	var doc any
	var err error
	if p.cfg.Mode == config.ModeGrouped {
		doc, err = p.builder.BuildGrouped(p.cfg.SourcePath)
	} else {
		doc, err = p.builder.Build(p.cfg.SourcePath)
	}
	if err != nil {
		return err
	}

	if err := p.writer.Publish(doc); err != nil {
		return err
	}

	for _, target := range p.cfg.OutputPaths {
		if err := storage.Verify(target); err != nil {
			p.logger.Warn("[pipeline] Published catalog failed validation: %v", err)
		}
	}

	p.logger.Info("[pipeline] Conversion run finished")
	return nil
}
