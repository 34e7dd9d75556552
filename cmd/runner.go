package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/srijanmishra08/playlist-recommender/internal/discovery"
	"github.com/srijanmishra08/playlist-recommender/internal/services"
	"github.com/srijanmishra08/playlist-recommender/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog *services.SpotifyService
	engine  *discovery.Engine
	credErr error
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// The catalog service and discovery engine are constructed eagerly when
// credentials validate; otherwise the failure is kept so the serve command
// can report it through the diagnostic endpoints instead of refusing to start.
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

	runner := &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}

	if err := opts.Config.Validate(); err != nil {
		runner.credErr = err
		return runner
	}

	catalog, err := services.NewSpotifyService(opts.Config.Credentials.Spotify)
	if err != nil {
		runner.credErr = err
		return runner
	}

	runner.catalog = catalog
	runner.engine = discovery.NewEngine(discovery.EngineOpts{
		Catalog: catalog,
		Logger:  opts.Logger,
		Market:  opts.Config.Discovery.Market,
	})

	return runner
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, checkCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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
