package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bound variables in db.statement; development only
	SlowQueryThresh time.Duration
	DBName          string
}

// DBTracingPlugin installs otelgorm plus slow query marking on a gorm.DB
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

type queryStartKey struct{}

// Register installs the plugin. It is a no-op when tracing is disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	// after hooks must run before otelgorm ends its span
	registrations := []func() error{
		func() error {
			return cb.Create().Before("gorm:create").Register("agro_tracing:before_create", p.markStart)
		},
		func() error {
			return cb.Create().After("gorm:create").Before("otel:after:create").Register("agro_tracing:after_create", p.annotate)
		},
		func() error {
			return cb.Query().Before("gorm:query").Register("agro_tracing:before_query", p.markStart)
		},
		func() error {
			return cb.Query().After("gorm:query").Before("otel:after:query").Register("agro_tracing:after_query", p.annotate)
		},
		func() error {
			return cb.Update().Before("gorm:update").Register("agro_tracing:before_update", p.markStart)
		},
		func() error {
			return cb.Update().After("gorm:update").Before("otel:after:update").Register("agro_tracing:after_update", p.annotate)
		},
		func() error {
			return cb.Delete().Before("gorm:delete").Register("agro_tracing:before_delete", p.markStart)
		},
		func() error {
			return cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("agro_tracing:after_delete", p.annotate)
		},
		func() error { return cb.Row().Before("gorm:row").Register("agro_tracing:before_row", p.markStart) },
		func() error {
			return cb.Row().After("gorm:row").Before("otel:after:row").Register("agro_tracing:after_row", p.annotate)
		},
		func() error { return cb.Raw().Before("gorm:raw").Register("agro_tracing:before_raw", p.markStart) },
		func() error {
			return cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("agro_tracing:after_raw", p.annotate)
		},
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

func (p *DBTracingPlugin) markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

// annotate runs after the statement while the otelgorm span is still open
func (p *DBTracingPlugin) annotate(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
