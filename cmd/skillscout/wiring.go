package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/skillscout/internal/config"
	"github.com/jonathan/skillscout/internal/llm"
	"github.com/jonathan/skillscout/internal/observability"
	"github.com/jonathan/skillscout/internal/planning"
	"github.com/jonathan/skillscout/internal/recommend"
	"github.com/jonathan/skillscout/internal/rerank"
	"github.com/jonathan/skillscout/internal/search"
	"github.com/jonathan/skillscout/internal/types"
)

// engine bundles the wired coordinator with the resources the command must
// release or flush when it is done.
type engine struct {
	coordinator *recommend.Coordinator
	cache       *search.Cache
	cachePath   string
	client      llm.Client
}

// loadConfig merges the optional config file with the environment. Flag
// values are merged by the callers since each command owns its own flags.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine wires the full stack: Gemini planner and reranker, the GitHub
// search source behind the TTL cache, and the coordinator on top. The cache
// is warmed from the snapshot file when one exists. A non-nil printer enables
// verbose mode: search plans, pool contents, and gate verdicts are boxed as
// the coordinator reaches them.
func buildEngine(ctx context.Context, cfg config.Config, printer *observability.Printer) (*engine, error) {
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	source, err := search.NewGitHubSource(&search.Options{
		Token:    cfg.GitHubToken,
		ProxyURL: cfg.ProxyURL,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to build search source: %w", err)
	}

	cache := search.NewCache(search.DefaultTTL)
	if cfg.CachePath != "" {
		if err := search.LoadSnapshot(cache, cfg.CachePath); err != nil {
			// A corrupt snapshot only costs a cold cache.
			fmt.Fprintf(os.Stderr, "warning: ignoring search cache: %v\n", err)
		}
	}

	opts := recommend.Options{
		StarThreshold:    cfg.StarThreshold,
		RelaxedThreshold: cfg.RelaxedThreshold,
	}
	if printer != nil {
		opts.OnPlan = printer.PrintSearchPlan
		opts.OnPool = printer.PrintPool
		opts.OnVerdict = printer.PrintVerdict
		opts.OnSearchDegraded = func(query string, err error) {
			fmt.Fprintf(os.Stderr, "warning: query %q degraded: %v\n", query, err)
		}
	}

	planner := planning.NewLLMPlanner(client)
	coordinator := recommend.New(
		planner,
		planner,
		search.NewCachedSource(source, cache),
		rerank.NewLLMReranker(client),
		opts,
	)

	return &engine{
		coordinator: coordinator,
		cache:       cache,
		cachePath:   cfg.CachePath,
		client:      client,
	}, nil
}

// close flushes the cache snapshot and releases the LLM client.
func (e *engine) close() {
	if e.cachePath != "" {
		if dir := filepath.Dir(e.cachePath); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		if err := search.SaveSnapshot(e.cache, e.cachePath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save search cache: %v\n", err)
		}
	}
	if e.client != nil {
		e.client.Close()
	}
}

// parseGaps splits a comma-separated gap list into raw names. Normalization
// happens in skills.NewGapSet.
func parseGaps(raw string) []string {
	parts := strings.Split(raw, ",")
	gaps := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			gaps = append(gaps, p)
		}
	}
	return gaps
}

// parseSkills parses "name" or "name:proficiency" entries from a
// comma-separated list.
func parseSkills(raw string) []types.KnownSkill {
	parts := strings.Split(raw, ",")
	skills := make([]types.KnownSkill, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, proficiency, _ := strings.Cut(p, ":")
		skills = append(skills, types.KnownSkill{
			Name:        strings.TrimSpace(name),
			Proficiency: strings.TrimSpace(proficiency),
		})
	}
	return skills
}
