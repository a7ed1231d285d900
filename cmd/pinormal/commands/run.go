// Package commands implements CLI command handlers for pinormal.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/config"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/digitstats"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/observability"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/scheduler"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/tui"
)

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	configPath  string
	maxDigits   int
	guardDigits int
	refreshMS   int
	metricsAddr string
	logFile     string
	noColor     bool
	headless    bool
}

// NewRunCommand creates the live dashboard command.
func NewRunCommand() *cobra.Command {
	run := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stream pi digits into a live uniformity dashboard",
		Long: `Run the digit engine and render a full-screen terminal dashboard:
digit histogram, chi-squared / entropy / max-deviation statistics, and
the most recent digits. Press Esc or Ctrl-C to stop.

Without a terminal on stdout the command runs headless and prints a
summary when the digit limit is reached or the process is interrupted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return run.execute(cobraCmd)
		},
	}

	cmd.Flags().StringVarP(&run.configPath, "config", "c", "", "Path to config file")
	cmd.Flags().IntVarP(&run.maxDigits, "max-digits", "n", -1, "Stop after this many digits (0 = unbounded)")
	cmd.Flags().IntVar(&run.guardDigits, "guard", 0, "Extraction guard digits (0 = config value)")
	cmd.Flags().IntVar(&run.refreshMS, "refresh-ms", 0, "Dashboard refresh interval in milliseconds (0 = config value)")
	cmd.Flags().StringVar(&run.metricsAddr, "metrics-addr", "", "Expose Prometheus /metrics on this address")
	cmd.Flags().StringVar(&run.logFile, "log-file", "", "Write structured logs to this file")
	cmd.Flags().BoolVar(&run.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&run.headless, "headless", false, "Run without the dashboard even on a terminal")

	return cmd
}

func (r *RunCommand) execute(cmd *cobra.Command) error {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return err
	}

	r.applyOverrides(cfg)

	if validateErr := cfg.Validate(); validateErr != nil {
		return validateErr
	}

	interactive := !r.headless && tui.IsTerminal(os.Stdout) && tui.IsTerminal(os.Stdin)

	logger, closeLog, err := r.buildLogger(interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, closeDiag, err := startDiagnostics(cfg.Metrics.ListenAddr, logger)
	if err != nil {
		return err
	}
	defer closeDiag()

	sched := scheduler.New(schedulerConfig(cfg), logger, metrics)

	done := make(chan struct{})

	go func() {
		defer close(done)

		// Run only fails on future transient work; today it is always nil.
		_ = sched.Run(ctx)
	}()

	if !interactive {
		return r.runHeadless(ctx, sched, done)
	}

	return r.runDashboard(ctx, stop, cfg, sched, done)
}

// applyOverrides folds explicitly set flags over the loaded config.
func (r *RunCommand) applyOverrides(cfg *config.Config) {
	if r.maxDigits >= 0 {
		cfg.Engine.MaxDigits = r.maxDigits
	}

	if r.guardDigits > 0 {
		cfg.Engine.GuardDigits = r.guardDigits
	}

	if r.refreshMS > 0 {
		cfg.Display.RefreshMS = r.refreshMS
	}

	if r.metricsAddr != "" {
		cfg.Metrics.ListenAddr = r.metricsAddr
	}

	if r.noColor {
		cfg.Display.NoColor = true
	}
}

// buildLogger routes structured logs away from the dashboard screen.
// Interactive runs log to the optional file or discard; headless runs
// log to stderr.
func (r *RunCommand) buildLogger(interactive bool) (logger *slog.Logger, closeLog func(), err error) {
	closeLog = func() {}

	if r.logFile != "" {
		f, openErr := os.OpenFile(r.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("open log file: %w", openErr)
		}

		closeLog = func() { _ = f.Close() }

		return slog.New(slog.NewJSONHandler(f, nil)), closeLog, nil
	}

	if interactive {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closeLog, nil
	}

	return slog.New(slog.NewTextHandler(os.Stderr, nil)), closeLog, nil
}

func startDiagnostics(addr string, logger *slog.Logger) (metrics *observability.EngineMetrics, closeDiag func(), err error) {
	closeDiag = func() {}

	if addr == "" {
		return nil, closeDiag, nil
	}

	diag, meter, err := observability.Start(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("start diagnostics: %w", err)
	}

	metrics, err = observability.NewEngineMetrics(meter)
	if err != nil {
		_ = diag.Close()

		return nil, nil, err
	}

	logger.Info("diagnostics listening", "addr", diag.Addr())

	return metrics, func() { _ = diag.Close() }, nil
}

func schedulerConfig(cfg *config.Config) scheduler.Config {
	return scheduler.Config{
		StartBatchTerms: uint64(cfg.Engine.StartBatchTerms),
		MaxBatchTerms:   uint64(cfg.Engine.MaxBatchTerms),
		GuardDigits:     cfg.Engine.GuardDigits,
		MaxDigits:       uint64(cfg.Engine.MaxDigits),
		Tracker: digitstats.Options{
			FirstWindow:  cfg.Stats.FirstWindow,
			RecentWindow: cfg.Stats.RecentWindow,
			HistoryCap:   cfg.Stats.HistoryCap,
		},
	}
}

func (r *RunCommand) runDashboard(
	ctx context.Context,
	stop context.CancelFunc,
	cfg *config.Config,
	sched *scheduler.Scheduler,
	done <-chan struct{},
) error {
	// The draw loop owns the alternate screen; the summary must print
	// on the normal buffer after it exits.
	if err := r.drawLoop(ctx, stop, cfg, sched, done); err != nil {
		return err
	}

	return r.printSummary(sched)
}

func (r *RunCommand) drawLoop(
	ctx context.Context,
	stop context.CancelFunc,
	cfg *config.Config,
	sched *scheduler.Scheduler,
	done <-chan struct{},
) error {
	restore, err := tui.ListenKeys(os.Stdin, stop)
	if err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer restore()

	fmt.Fprint(os.Stdout, tui.EnterSequence)
	defer fmt.Fprint(os.Stdout, tui.LeaveSequence)

	width, height := tui.Size(os.Stdout)
	dash := tui.NewDashboard(os.Stdout, width, cfg.Display.NoColor)
	dash.SetSize(width, height)

	ticker := time.NewTicker(time.Duration(cfg.Display.RefreshMS) * time.Millisecond)
	defer ticker.Stop()

	pub := sched.Publisher()
	pending := pub.Changed()

	draw := func() {
		// Re-arm the notification before reading so a publish between
		// the two is never lost; at worst it costs one redundant frame.
		pending = pub.Changed()
		snap, _ := pub.Latest()

		w, h := tui.Size(os.Stdout)
		dash.SetSize(w, h)

		_ = dash.Draw(snap)
	}

	// The scheduler may have published its initial snapshot before we
	// took the channel; paint the first frame unconditionally.
	draw()

	for {
		select {
		case <-ticker.C:
			// The ticker throttles repaints; the channel says whether
			// anything new was published since the last frame.
			select {
			case <-pending:
				draw()
			default:
			}
		case <-done:
			draw()

			// Leave the final state on screen briefly so a digit-limit
			// stop does not vanish mid-glance.
			select {
			case <-ctx.Done():
			case <-time.After(finalFrameHold):
			}

			return nil
		case <-ctx.Done():
			<-done

			return nil
		}
	}
}

// finalFrameHold keeps the last dashboard frame visible after a
// limit-triggered stop.
const finalFrameHold = 2 * time.Second

func (r *RunCommand) runHeadless(ctx context.Context, sched *scheduler.Scheduler, done <-chan struct{}) error {
	select {
	case <-done:
	case <-ctx.Done():
		<-done
	}

	return r.printSummary(sched)
}

func (r *RunCommand) printSummary(sched *scheduler.Scheduler) error {
	snap, _ := sched.Publisher().Latest()

	fmt.Fprintln(os.Stdout, summaryTable(snap))

	return nil
}
