package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/packsmith/internal/repositories"
	"github.com/desertthunder/packsmith/internal/services"
	"github.com/desertthunder/packsmith/internal/shared"
	"github.com/desertthunder/packsmith/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog services.Catalog
	logger  *log.Logger
	output  io.Writer
	db      *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog services.Catalog
	Logger  *log.Logger
	Output  io.Writer
	DB      *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		output:  opts.Output,
		db:      opts.DB,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, packCommand, seriesCommand, settingsCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Close releases the database connection if one was opened.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
		r.db = nil
	}
}

// database lazily opens the configured sqlite database. The connection is
// cached and reused across command actions within one invocation.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.db = db
	return db, nil
}

// store bundles the repositories backed by the runner's database.
type store struct {
	packs    *repositories.PackRepository
	songs    *repositories.SongRepository
	series   *repositories.SeriesRepository
	settings *repositories.SettingsRepository
}

func (r *Runner) store() (*store, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}

	return &store{
		packs:    repositories.NewPackRepository(db),
		songs:    repositories.NewSongRepository(db),
		series:   repositories.NewSeriesRepository(db),
		settings: repositories.NewSettingsRepository(db),
	}, nil
}

func (r *Runner) engine() (*tasks.PackEngine, error) {
	st, err := r.store()
	if err != nil {
		return nil, err
	}
	return tasks.NewPackEngine(st.songs, st.series, st.settings, r.catalog, r.logger), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
