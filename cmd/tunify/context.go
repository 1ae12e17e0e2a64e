package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	app "github.com/okian/tunify/internal/app"
	"github.com/okian/tunify/internal/config"
	"github.com/okian/tunify/pkg/logger"
)

// commandFlags holds the persistent flags shared by every subcommand.
type commandFlags struct {
	catalogue string
	source    string
	table     string
	logLevel  string
}

type commandContext struct {
	flags *commandFlags

	once sync.Once
	svc  *app.Service
	err  error
}

func newCommandContext(flags *commandFlags) *commandContext {
	return &commandContext{flags: flags}
}

// config loads TUNIFY_ settings and applies flag overrides on top.
func (c *commandContext) config(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(c.flags.catalogue); v != "" {
		cfg.CataloguePath = v
	}
	if v := strings.TrimSpace(c.flags.source); v != "" {
		cfg.CatalogueSource = v
	}
	if v := strings.TrimSpace(c.flags.table); v != "" {
		cfg.CatalogueTable = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// service builds and starts the recommender once per invocation. Logs go to
// stderr so table output stays clean.
func (c *commandContext) service(ctx context.Context, stderr io.Writer) (*app.Service, error) {
	c.once.Do(func() {
		if err := logger.InitWithWriter(stderr, logger.FormatText); err != nil {
			c.err = err
			return
		}
		if err := logger.SetLevelString(c.flags.logLevel); err != nil {
			c.err = fmt.Errorf("log level: %w", err)
			return
		}
		cfg, err := c.config(ctx)
		if err != nil {
			c.err = err
			return
		}
		svc, err := app.FromConfig(ctx, cfg, logger.Get())
		if err != nil {
			c.err = err
			return
		}
		if err := svc.Start(ctx); err != nil {
			c.err = err
			return
		}
		c.svc = svc
	})
	return c.svc, c.err
}

func (c *commandContext) close() {
	if c.svc != nil {
		c.svc.Stop()
	}
}
