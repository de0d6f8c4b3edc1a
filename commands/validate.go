package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/obokit/gafcheck/annotation"
	"github.com/obokit/gafcheck/config"
	"github.com/obokit/gafcheck/curie"
	"github.com/obokit/gafcheck/engine"
	"github.com/obokit/gafcheck/errors"
	"github.com/obokit/gafcheck/graph"
	"github.com/obokit/gafcheck/metric"
	"github.com/obokit/gafcheck/ontology"
	"github.com/obokit/gafcheck/report"
	"github.com/obokit/gafcheck/rules"
)

type validateOptions struct {
	configPath   string
	ontologyPath string
	contextPath  string
	outPath      string
	reportMD     string
	reportJSON   string
	workers      int
	sampleCap    int
	tolerant     bool
	watch        bool
	natsURL      string
	metricsAddr  string
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [flags] <gaf-file|glob>...",
		Short: "Validate annotation files against an ontology",
		Long: `Validate runs every annotation in the given GAF files through the rule
set, writes the corrected annotation stream, and reports findings.

Input arguments may be literal paths or doublestar globs such as
'data/**/*.gaf'. The corrected stream goes to stdout unless --out is
given. Records with an error finding and structurally malformed lines
are withheld from the corrected stream; findings only ever appear in
the report.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// flags override config only when set
			flagged := func(name string) bool { return cmd.Flags().Changed(name) }
			return runValidate(cmd.Context(), opts, args, flagged)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&opts.ontologyPath, "ontology", "", "Ontology file (OBO graph JSON)")
	cmd.Flags().StringVar(&opts.contextPath, "context", "", "JSON-LD context file for identifier prefixes")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Corrected annotation output file (default stdout)")
	cmd.Flags().StringVar(&opts.reportMD, "report-md", "", "Write the findings report as Markdown to this file")
	cmd.Flags().StringVar(&opts.reportJSON, "report-json", "", "Write the findings report as JSON to this file")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Validation worker count")
	cmd.Flags().IntVar(&opts.sampleCap, "sample-cap", 0, "Findings retained per rule in the report")
	cmd.Flags().BoolVar(&opts.tolerant, "tolerant", false, "Drop dangling ontology edges instead of failing the load")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-validate when an input file changes")
	cmd.Flags().StringVar(&opts.natsURL, "nats", "", "NATS URL for publishing findings to the knowledge graph")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Listen address for Prometheus metrics")

	return cmd
}

func runValidate(ctx context.Context, opts *validateOptions, args []string, flagged func(string) bool) error {
	cfg, err := loadValidateConfig(opts, flagged)
	if err != nil {
		return err
	}

	if cfg.Ontology.Path == "" {
		return errors.WrapFatal(errors.ErrMissingConfig, "validate", "runValidate", "no ontology given")
	}

	inputs, err := resolveInputs(args)
	if err != nil {
		return err
	}

	rt, err := buildRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.runOnce(ctx, cfg, opts, inputs); err != nil {
		return err
	}

	if opts.watch {
		return rt.watchLoop(ctx, cfg, opts, inputs)
	}
	return nil
}

// loadValidateConfig layers file config under the command-line flags.
func loadValidateConfig(opts *validateOptions, flagged func(string) bool) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
	} else {
		cfg, err = config.NewLoader(slog.Default()).Load()
	}
	if err != nil {
		return nil, errors.WrapFatal(err, "validate", "loadValidateConfig", "load configuration")
	}

	if opts.ontologyPath != "" {
		cfg.Ontology.Path = opts.ontologyPath
	}
	if opts.contextPath != "" {
		cfg.Context.Path = opts.contextPath
	}
	if flagged("workers") {
		cfg.Engine.Workers = opts.workers
	}
	if flagged("sample-cap") {
		cfg.Report.SampleCap = opts.sampleCap
	}
	if flagged("tolerant") {
		cfg.Ontology.Tolerant = opts.tolerant
	}
	if opts.natsURL != "" {
		cfg.NATS.URL = opts.natsURL
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapFatal(err, "validate", "loadValidateConfig", "invalid configuration")
	}
	return cfg, nil
}

// resolveInputs expands globs and checks that every input exists.
func resolveInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, errors.WrapFatal(err, "validate", "resolveInputs",
				fmt.Sprintf("bad input pattern %q", arg))
		}
		if len(matches) == 0 {
			// not a pattern, require the literal path
			if _, err := os.Stat(arg); err != nil {
				return nil, errors.WrapFatal(err, "validate", "resolveInputs",
					fmt.Sprintf("input %q not found", arg))
			}
			matches = []string{arg}
		}
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}

// runtime holds everything built once per process: the ontology, the
// resolver, the engine, and the optional broker and metrics endpoint.
type runtime struct {
	contextMap   *curie.ContextMap
	env          *rules.Env
	eng          *engine.Engine
	registry     *metric.Registry
	nc           *nats.Conn
	publisher    *graph.Publisher
	metricsSrv   *http.Server
	loadWarnings []string
}

func buildRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	rt := &runtime{}

	contextMap := curie.Default()
	if cfg.Context.Path != "" {
		loaded, err := curie.LoadFile(cfg.Context.Path)
		if err != nil {
			return nil, errors.WrapFatal(err, "validate", "buildRuntime", "load context")
		}
		contextMap = loaded
		slog.Debug("Loaded identifier context", "path", cfg.Context.Path)
	}
	rt.contextMap = contextMap

	loadStart := time.Now()
	graphOpts := []ontology.Option{
		ontology.WithReplacementDepth(cfg.Ontology.ReplacementDepth),
		ontology.WithAncestorCacheSize(cfg.Ontology.AncestorCacheSize),
	}
	if cfg.Ontology.Tolerant {
		graphOpts = append(graphOpts, ontology.WithTolerantEdges())
	}
	g, err := ontology.LoadFile(cfg.Ontology.Path, graphOpts...)
	if err != nil {
		return nil, errors.WrapFatal(err, "validate", "buildRuntime", "load ontology")
	}
	for _, warning := range g.Warnings() {
		slog.Warn("Ontology load warning", "detail", warning.String())
		rt.loadWarnings = append(rt.loadWarnings, warning.String())
	}
	slog.Info("Ontology loaded",
		"path", cfg.Ontology.Path,
		"terms", g.NodeCount(),
		"edges", g.EdgeCount(),
		"elapsed", time.Since(loadStart))

	rt.registry = metric.NewRegistry()
	rt.registry.Metrics.OntologyTerms.Set(float64(g.NodeCount()))

	rt.env = &rules.Env{
		Graph:    g,
		Context:  contextMap,
		Coupling: couplingTable(cfg.Rules.Coupling),
	}
	rt.eng = engine.New(rt.env,
		engine.WithWorkers(cfg.Engine.Workers),
		engine.WithMetrics(rt.registry),
		engine.WithLogger(slog.Default()))

	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name(appName))
		if err != nil {
			return nil, errors.WrapFatal(err, "validate", "buildRuntime", "connect to NATS")
		}
		rt.nc = nc
		rt.publisher = graph.NewPublisher(nc, cfg.NATS.SubjectPrefix)
		slog.Info("Publishing findings to NATS", "url", cfg.NATS.URL)
	}

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", rt.registry.Handler())
		rt.metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := rt.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
		slog.Info("Serving metrics", "addr", cfg.Metrics.Addr)
	}

	return rt, nil
}

func (rt *runtime) close() {
	if rt.metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = rt.metricsSrv.Shutdown(shutdownCtx)
		cancel()
	}
	if rt.nc != nil {
		rt.nc.Close()
	}
}

// runOnce validates every input in order through one aggregator and
// writes the corrected stream and reports.
func (rt *runtime) runOnce(ctx context.Context, cfg *config.Config, opts *validateOptions, inputs []string) error {
	out := os.Stdout
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return errors.WrapFatal(err, "validate", "runOnce", "create output file")
		}
		defer f.Close()
		out = f
	}

	agg := report.NewAggregator(rt.eng.Rules(),
		report.WithSampleCap(cfg.Report.SampleCap),
		report.WithInput(inputName(inputs)),
		report.WithLoadWarnings(rt.loadWarnings))
	sink := engine.NewWriterSink(out, rt.contextMap)

	for _, input := range inputs {
		if err := rt.validateFile(ctx, input, sink, agg); err != nil {
			return err
		}
	}

	rep := agg.Finish()
	slog.Info("Validation finished",
		"run", rep.RunID,
		"records", rep.TotalRecords,
		"skipped", rep.SkippedRecords,
		"malformed", rep.MalformedRecords)

	if opts.reportMD != "" {
		if err := writeReport(opts.reportMD, rep.WriteMarkdown); err != nil {
			return err
		}
	}
	if opts.reportJSON != "" {
		if err := writeReport(opts.reportJSON, rep.WriteJSON); err != nil {
			return err
		}
	}

	if err := rt.publisher.PublishReport(ctx, rep); err != nil {
		// findings are already on disk; losing the graph copy is not fatal
		slog.Warn("Failed to publish run to graph", "error", err)
	}
	return nil
}

func (rt *runtime) validateFile(ctx context.Context, path string, sink engine.Sink, agg *report.Aggregator) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WrapFatal(err, "validate", "validateFile", fmt.Sprintf("open %q", path))
	}
	defer f.Close()

	slog.Debug("Validating", "input", path)
	return rt.eng.Run(ctx, f, sink, agg)
}

// watchLoop re-validates when any input file is written. Runs until the
// context is cancelled.
func (rt *runtime) watchLoop(ctx context.Context, cfg *config.Config, opts *validateOptions, inputs []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapFatal(err, "validate", "watchLoop", "create watcher")
	}
	defer watcher.Close()

	for _, input := range inputs {
		if err := watcher.Add(input); err != nil {
			return errors.WrapFatal(err, "validate", "watchLoop",
				fmt.Sprintf("watch %q", input))
		}
	}
	slog.Info("Watching for changes", "inputs", len(inputs))

	// editors often emit bursts of writes; coalesce them
	const settle = 250 * time.Millisecond
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			slog.Debug("Input changed", "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			pending = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watch error", "error", err)
		case <-pending:
			pending = nil
			if err := rt.runOnce(ctx, cfg, opts, inputs); err != nil {
				slog.Error("Re-validation failed", "error", err)
			}
		}
	}
}

// couplingTable converts the config's coupling entries to the rule set's
// typed form. Values were validated with the config; a missing severity
// falls back to warning.
func couplingTable(raw map[string]config.CouplingConfig) map[annotation.EvidenceCode]rules.CouplingRule {
	if len(raw) == 0 {
		return nil
	}
	table := make(map[annotation.EvidenceCode]rules.CouplingRule, len(raw))
	for code, coupling := range raw {
		entry := rules.CouplingRule{Severity: rules.SeverityWarning}
		switch coupling.Policy {
		case "require":
			entry.Policy = rules.CouplingRequire
		case "forbid":
			entry.Policy = rules.CouplingForbid
		case "any":
			entry.Policy = rules.CouplingAny
		}
		if coupling.Severity != "" {
			sev, err := rules.ParseSeverity(coupling.Severity)
			if err == nil {
				entry.Severity = sev
			}
		}
		table[annotation.EvidenceCode(code)] = entry
	}
	return table
}

func inputName(inputs []string) string {
	if len(inputs) == 1 {
		return inputs[0]
	}
	return fmt.Sprintf("%d files", len(inputs))
}

func writeReport(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapFatal(err, "validate", "writeReport", fmt.Sprintf("create %q", path))
	}
	defer f.Close()

	if err := render(f); err != nil {
		return errors.WrapFatal(err, "validate", "writeReport", fmt.Sprintf("write %q", path))
	}
	return nil
}
