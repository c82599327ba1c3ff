package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layerbox/pkg/config"
	lbio "github.com/matzehuels/layerbox/pkg/io"
	"github.com/matzehuels/layerbox/pkg/metrics"
	"github.com/matzehuels/layerbox/pkg/observability"
	"github.com/matzehuels/layerbox/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output     string // explicit destination (suffixed per graph when several)
	outputDir  string // directory for <graph>.lbox files
	format     string // event encoding for files without a known extension
	configPath string // layerbox.toml location
	backend    string
	version    string
	limit      int    // per-object limit in bytes
	metricsOut string // Prometheus textfile destination
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <events-file>",
		Short: "Write one container per graph of an event document",
		Long: `Export replays a recorded traversal (JSON or YAML) and writes each graph
as a container holding its model configuration, framework identity and layer
names. Without -o, each graph is written to <graph name>.lbox.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "destination path (default <graph name>.lbox)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory for default destinations")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "event format: json or yaml (default from file extension)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "configuration file (default ./"+config.DefaultFileName+" if present)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "backend identity (default "+pipeline.DefaultBackend+")")
	cmd.Flags().StringVar(&opts.version, "tvm-version", "", "framework version (default "+pipeline.DefaultVersion+")")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, fmt.Sprintf("per-object limit in bytes (default %d)", pipeline.DefaultLimit))
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics to this file")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, input string, opts exportOpts) (err error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cfg.LogLevel != "" && logger.GetLevel() == log.InfoLevel {
		level, err := parseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	popts := pipeline.Options{
		Input:     input,
		Format:    lbio.Format(opts.format),
		Output:    opts.output,
		OutputDir: opts.outputDir,
		Backend:   opts.backend,
		Version:   opts.version,
		Limit:     opts.limit,
		Logger:    logger,
	}
	cfg.Apply(&popts)

	metricsOut := opts.metricsOut
	if metricsOut == "" {
		metricsOut = cfg.MetricsOut
	}
	if metricsOut != "" {
		m := metrics.New()
		observability.SetPipelineHooks(m)
		observability.SetExportHooks(m)
		defer observability.Reset()
		defer func() {
			if werr := m.WriteTextfile(metricsOut); werr != nil && err == nil {
				err = werr
			}
		}()
	}

	prog := newProgress(logger)
	result, err := c.newRunner().Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Exported %d graph(s)", len(result.Files)))

	out := cmd.OutOrStdout()
	if len(result.Files) == 0 {
		printWarning(out, "no graphs in %s", input)
		return nil
	}
	printSuccess(out, "Wrote %d container(s)", len(result.Files))
	for _, g := range result.Graphs {
		printFile(out, g.Path)
		printStats(out, g.Nodes, g.Edges, g.Layers, g.Chunks)
	}
	return nil
}
