package steps

import (
	"log"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/model"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/core/pipeline"
	"github.com/YoWuwuuuw/github-repo-report-bot/internal/timewindow"
)

// FetchDiscussions lists the source repository's discussions over GraphQL.
// Discussions are optional: many repositories never enable them, and the
// report is still useful without this section.
type FetchDiscussions struct {
	verbose bool
}

// NewFetchDiscussions creates a new discussion fetch step.
func NewFetchDiscussions(deps *pipeline.Dependencies) *FetchDiscussions {
	return &FetchDiscussions{verbose: deps.Verbose}
}

// Name returns the step name.
func (s *FetchDiscussions) Name() string {
	return "fetch_discussions"
}

// Run fetches and partitions the discussions. Failures are logged, never
// fatal; whatever was collected before the failure still gets reported.
func (s *FetchDiscussions) Run(ctx *pipeline.Context) error {
	if ctx.Source == nil {
		log.Printf("[fetch_discussions] No source client, skipping discussions")
		return nil
	}

	discussions, err := ctx.Source.ListDiscussions(ctx.Ctx, ctx.Window.Since(), ctx.Config.Analysis.MaxDiscussionCount)
	if err != nil {
		log.Printf("[fetch_discussions] Warning: discussion listing failed: %v", err)
		ctx.Result.Errors = append(ctx.Result.Errors, err)
	}

	result := timewindow.Partition(discussions, ctx.Window, timewindow.Accessors[model.Discussion]{
		Number:    func(d model.Discussion) int { return d.Number },
		CreatedAt: func(d model.Discussion) string { return d.CreatedAt },
		UpdatedAt: func(d model.Discussion) string { return d.UpdatedAt },
	})

	ctx.Discussions = result.Records
	ctx.Result.DiscussionsSeen = len(result.Records)
	log.Printf("[fetch_discussions] %d discussions in period (%d created, %d updated) out of %d listed",
		len(result.Records), result.Created, result.Updated, len(discussions))

	if s.verbose {
		for _, disc := range result.Records {
			log.Printf("[fetch_discussions] Discussion #%d %q [%s]",
				disc.Item.Number, disc.Item.Title, disc.Item.Category)
		}
	}
	return nil
}
