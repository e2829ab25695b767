// Package pg bootstraps the PostgreSQL layer backing the auth store: a
// pgx/v5 connection pool with startup retries, goose schema migrations for
// the users/sessions/reset tables, a health check closure, and error
// classification helpers.
//
// Connect retries with linear backoff so services restarted alongside the
// database come up cleanly. Migrate bridges the pgx pool into the
// database/sql interface goose expects and routes migration output through
// the application logger.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    panic(err)
//	}
package pg
