// Package container provides dependency injection for fintrack.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/fintrack/internal/auth"
	"fjacquet/fintrack/internal/categorizer"
	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/exchange"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/report"
	"fjacquet/fintrack/internal/session"
	"fjacquet/fintrack/internal/store"
	"fjacquet/fintrack/internal/viz"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.Store
	auth      *auth.Service
	generator *report.Generator
	codec     *exchange.Codec
	renderer  viz.Renderer
}

// Option customizes NewContainer.
type Option func(*options)

type options struct {
	logger   logging.Logger
	store    store.Store
	authOpts []auth.Option
}

// WithLogger replaces the logger built from the log section.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore replaces the store built from the data section.
func WithStore(st store.Store) Option {
	return func(o *options) { o.store = st }
}

// WithAuthOptions passes options to the auth service.
func WithAuthOptions(opts ...auth.Option) Option {
	return func(o *options) { o.authOpts = append(o.authOpts, opts...) }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	st := o.store
	if st == nil {
		backend, err := store.ParseBackend(cfg.Data.Backend)
		if err != nil {
			return nil, err
		}
		st, err = store.Open(store.Options{
			Backend:       backend,
			Directory:     cfg.Data.Directory,
			SQLiteFile:    cfg.Data.SQLiteFile,
			BackupEnabled: cfg.Data.BackupEnabled,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", backend, err)
		}
	}

	codec := exchange.NewCodec(logger,
		exchange.WithDelimiter(cfg.DelimiterRune()),
		exchange.WithDateLayout(cfg.DateLayout()))

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Data.Backend),
		logging.F("data_directory", cfg.Data.Directory))

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     st,
		auth:      auth.NewService(st, logger, o.authOpts...),
		generator: report.NewGenerator(logger),
		codec:     codec,
		renderer:  viz.NewRenderer(cfg.Display.Currency, cfg.Display.BarWidth),
	}, nil
}

// OpenSession authenticates the user and hydrates their session.
func (c *Container) OpenSession(ctx context.Context, name, password string) (*session.Session, error) {
	user, err := c.auth.Login(ctx, name, password)
	if err != nil {
		return nil, err
	}
	return session.Open(ctx, c.store, user, c.logger)
}

// Renderer returns the text renderer, using the user's currency when set.
func (c *Container) Renderer(s *session.Session) viz.Renderer {
	if s != nil && s.User().Currency != "" {
		return viz.NewRenderer(s.User().Currency, c.config.Display.BarWidth)
	}
	return c.renderer
}

// Categorizer builds the import categorizer: the ledger history of s first
// (when s is not nil), then the keyword rules file. A broken rules file is
// logged and skipped.
func (c *Container) Categorizer(s *session.Session) *categorizer.Categorizer {
	var strategies []categorizer.Strategy
	if s != nil {
		strategies = append(strategies, categorizer.NewHistoryStrategy(s.Ledger().List(nil), c.logger))
	}
	path := c.config.CategoriesPath()
	rules, err := categorizer.LoadRules(path)
	if err != nil {
		c.logger.WithError(err).WithField(logging.FieldFile, path).Warn("Failed to load category rules")
	} else if len(rules) > 0 {
		strategies = append(strategies, categorizer.NewKeywordStrategy(rules, c.logger))
	}
	return categorizer.New(c.logger, strategies...)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetAuth returns the user registry.
func (c *Container) GetAuth() *auth.Service {
	return c.auth
}

// GetGenerator returns the JSON/YAML report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetCodec returns the import/export codec.
func (c *Container) GetCodec() *exchange.Codec {
	return c.codec
}

// Close releases the store.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
