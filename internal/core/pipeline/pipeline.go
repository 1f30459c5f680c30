// Package pipeline provides the core engine for report runs. It defines
// the Step interface and the Context structure shared by all steps.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/config"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/integrations/github"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/integrations/scorer"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

// ErrSkipPipeline indicates that the pipeline should stop gracefully.
// This is not an error condition, just an early exit (e.g. dry run, or
// nothing to report on).
var ErrSkipPipeline = errors.New("skip remaining pipeline steps")

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic.
	// It should return ErrSkipPipeline to stop the pipeline gracefully,
	// or any other error to indicate failure.
	Run(ctx *Context) error
}

// Result holds the accumulated results from a report run.
type Result struct {
	RunID           string
	IssuesFetched   int
	PRsFetched      int
	DiscussionsSeen int
	PRsScored       int
	ScorerDegraded  bool
	ReportPath      string
	IssueNumber     int
	IssueURL        string
	Errors          []error
}

// Context carries data through the pipeline steps. Steps read what earlier
// steps produced and attach their own output.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Config is the loaded configuration.
	Config *config.Config

	// Window is the resolved report period.
	Window timewindow.Window

	// StartedAt is the moment the run began, used for report timestamps.
	StartedAt time.Time

	// Source reads from the repository under analysis. Target publishes
	// the summary issue; it may point at a different repository.
	Source *github.Client
	Target *github.Client

	// Scorer is the external review model, possibly unconfigured.
	Scorer scorer.Client

	// Raw records tagged with their period bucket.
	Issues      []timewindow.Tagged[model.Issue]
	PRs         []timewindow.Tagged[model.PullRequest]
	Discussions []timewindow.Tagged[model.Discussion]

	// Reviews maps PR number to its external review.
	Reviews map[int]scorer.PRReview

	// Analysis records produced by the assemble step.
	IssueAnalyses      []model.IssueAnalysis
	PRAnalyses         []model.PRAnalysis
	DiscussionAnalyses []model.DiscussionAnalysis

	// DryRun suppresses the publish step.
	DryRun bool

	// Result accumulates the run results.
	Result *Result
}

// NewContext creates a pipeline context for one report run.
func NewContext(ctx context.Context, cfg *config.Config, window timewindow.Window, runID string) *Context {
	return &Context{
		Ctx:       ctx,
		Config:    cfg,
		Window:    window,
		StartedAt: time.Now(),
		Reviews:   make(map[int]scorer.PRReview),
		Result:    &Result{RunID: runID},
	}
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a new pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order.
// Stops on the first error (unless it's ErrSkipPipeline, which is graceful).
func (p *Pipeline) Run(ctx *Context) error {
	for _, step := range p.steps {
		if err := step.Run(ctx); err != nil {
			if errors.Is(err, ErrSkipPipeline) {
				// Graceful early exit
				return nil
			}
			return fmt.Errorf("step '%s' failed: %w", step.Name(), err)
		}
	}
	return nil
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Steps returns the list of steps (for introspection).
func (p *Pipeline) Steps() []Step {
	return p.steps
}
