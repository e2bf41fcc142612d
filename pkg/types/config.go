// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CorpusConfig holds settings for the corpus stage.
// Per prd001-corpus R2.1-R2.4.
type CorpusConfig struct {
	// CorpusDir is the base directory for the corpus (contains metadata/, index/).
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AnalyticsConfig holds settings shared by the derived-metrics stages.
// Per prd004-consensus R5.1, prd006-scoring R4.2.
type AnalyticsConfig struct {
	// Seed initializes the PRNG used by the consensus synthesizer. A fixed
	// seed makes the synthesized effect sizes reproducible across runs;
	// zero means "seed from the current time".
	Seed int64 `json:"seed" yaml:"seed"`

	// RecentWindow is the window for counting a publication as "recent"
	// (default 2 years).
	RecentWindow time.Duration `json:"recent_window" yaml:"recent_window"`

	// RedundancyThreshold is the minimum pairwise word-overlap similarity
	// for two papers to join a redundancy cluster (default 0.7).
	RedundancyThreshold float64 `json:"redundancy_threshold" yaml:"redundancy_threshold"`
}

// ServerConfig holds settings for the HTTP API.
// Per prd008-api R1.1-R1.3.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists CORS origins; ["*"] allows all.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`

	// PortfolioDBPath locates the portfolio SQLite database.
	PortfolioDBPath string `json:"portfolio_db_path" yaml:"portfolio_db_path"`
}

// Config groups all stage configurations.
type Config struct {
	Corpus    CorpusConfig    `json:"corpus" yaml:"corpus"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
