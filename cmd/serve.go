package main

import (
	"context"

	"github.com/desertthunder/packsmith/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve starts the read-only JSON API over the configured host and port.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	st, err := r.store()
	if err != nil {
		return err
	}

	api := server.NewAPI(st.packs, st.songs, st.series, r.catalog, r.logger)
	srv := server.New(r.config.Server, api, r.logger)

	r.logger.Info("serving", "addr", srv.Addr)
	return srv.ListenAndServe()
}
