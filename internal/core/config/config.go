// Package config handles loading and validating the report bot configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YoWuwuuuw/github-repo-report-bot/internal/integrations/scorer"
)

// Config is the root configuration structure.
type Config struct {
	// GitHub configures the source and target repositories.
	GitHub GitHubConfig `yaml:"github"`

	// Scorer configures the external LLM scoring service.
	Scorer scorer.Config `yaml:"scorer"`

	// Analysis contains period selection and fetch limits.
	Analysis AnalysisConfig `yaml:"analysis"`

	// Output controls report files and issue publishing.
	Output OutputConfig `yaml:"output"`
}

// GitHubConfig holds the two repository endpoints.
type GitHubConfig struct {
	Source RepoConfig `yaml:"source"`
	Target RepoConfig `yaml:"target"`
}

// RepoConfig identifies one repository and the token used to reach it.
type RepoConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Token string `yaml:"token,omitempty"`
}

// FullName returns "owner/repo".
func (r RepoConfig) FullName() string {
	return r.Owner + "/" + r.Repo
}

// AnalysisConfig holds period selection and fetch limits.
type AnalysisConfig struct {
	Period             string `yaml:"period"`
	MaxIssueCount      int    `yaml:"max_issue_count"`
	MaxPRCount         int    `yaml:"max_pr_count"`
	MaxDiscussionCount int    `yaml:"max_discussion_count"`
}

// OutputConfig controls where and how the analysis is published.
type OutputConfig struct {
	ReportDir   string   `yaml:"report_dir"`
	CreateIssue bool     `yaml:"create_issue"`
	IssueLabels []string `yaml:"issue_labels,omitempty"`
}

// Load reads a config file from the given path, expands environment
// variables (${GH_TOKEN} style references included) and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Validate checks the required repository identifiers. This is the only
// fatal error class in the bot: everything downstream degrades instead of
// aborting.
func (c *Config) Validate() error {
	if c.GitHub.Source.Owner == "" || c.GitHub.Source.Repo == "" {
		return fmt.Errorf("github.source.owner and github.source.repo must be set")
	}
	if c.GitHub.Target.Owner == "" || c.GitHub.Target.Repo == "" {
		return fmt.Errorf("github.target.owner and github.target.repo must be set")
	}
	return nil
}

// applyDefaults sets default values for unset fields. Empty tokens fall
// back to the GH_TOKEN environment variable.
func (c *Config) applyDefaults() {
	if c.GitHub.Source.Token == "" {
		c.GitHub.Source.Token = os.Getenv("GH_TOKEN")
	}
	if c.GitHub.Target.Token == "" {
		c.GitHub.Target.Token = os.Getenv("GH_TOKEN")
	}
	if c.Analysis.Period == "" {
		c.Analysis.Period = "day"
	}
	if c.Analysis.MaxIssueCount == 0 {
		c.Analysis.MaxIssueCount = 300
	}
	if c.Analysis.MaxPRCount == 0 {
		c.Analysis.MaxPRCount = 200
	}
	if c.Analysis.MaxDiscussionCount == 0 {
		c.Analysis.MaxDiscussionCount = 100
	}
	if c.Scorer.MaxRequestsPerMinute == 0 {
		c.Scorer.MaxRequestsPerMinute = 30
	}
	if c.Output.ReportDir == "" {
		c.Output.ReportDir = "reports"
	}
	if len(c.Output.IssueLabels) == 0 {
		c.Output.IssueLabels = []string{"automated", "report"}
	}
}
