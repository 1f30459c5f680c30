package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/config"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/integrations/github"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/integrations/scorer"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/steps"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/tui"
)

var (
	dryRun   bool
	workflow string
	period   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one report over the configured repository",
	Long: `Run the report pipeline once: fetch the period's issues, pull
requests and discussions, score, render the Markdown report and (when
enabled) publish the summary issue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Skip publishing the summary issue")
	runCmd.Flags().StringVar(&workflow, "workflow", "report", "Workflow preset to run")
	runCmd.Flags().StringVar(&period, "period", "", "Report period override (today, day or week)")
}

func runReport() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if period != "" {
		cfg.Analysis.Period = period
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	window, err := timewindow.Resolve(cfg.Analysis.Period, time.Now())
	if err != nil {
		return err
	}

	ctx := context.Background()

	source := github.NewClient(ctx, cfg.GitHub.Source.Owner, cfg.GitHub.Source.Repo, cfg.GitHub.Source.Token)
	target := source
	if cfg.GitHub.Target != cfg.GitHub.Source {
		target = github.NewClient(ctx, cfg.GitHub.Target.Owner, cfg.GitHub.Target.Repo, cfg.GitHub.Target.Token)
	}

	sc, err := scorer.New(cfg.Scorer)
	if err != nil {
		return fmt.Errorf("failed to initialize scorer: %w", err)
	}
	defer sc.Close()
	if !sc.Configured() {
		fmt.Fprintln(os.Stderr, "Warning: no scorer API key found, PR dimension scores will be zero")
	}

	registry := pipeline.NewRegistry()
	steps.RegisterAll(registry)

	stepNames := pipeline.ResolveSteps(nil, workflow)
	pl, err := registry.BuildFromNames(stepNames, &pipeline.Dependencies{Verbose: verbose})
	if err != nil {
		return err
	}

	runCtx := pipeline.NewContext(ctx, cfg, window, uuid.NewString())
	runCtx.Source = source
	runCtx.Target = target
	runCtx.Scorer = sc
	runCtx.DryRun = dryRun

	runErr := pl.Run(runCtx)

	fmt.Print(tui.RenderRunSummary(cfg.GitHub.Source.FullName(), runCtx.Result))
	return runErr
}
