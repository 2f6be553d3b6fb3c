// internal/cache/stats.go
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github-repo-explorer/internal/database"
	"github-repo-explorer/internal/model"
)

// TopTopicsLimit is the number of topics returned by TopTopics.
const TopTopicsLimit = 20

// StatsReader computes corpus-wide aggregates over the whole repositories table.
type StatsReader struct {
	q      database.Querier
	logger *slog.Logger
}

// NewStatsReader creates a new StatsReader instance.
func NewStatsReader(q database.Querier, logger *slog.Logger) *StatsReader {
	return &StatsReader{q: q, logger: logger}
}

// Stats scans every stored repository and summarizes it.
func (s *StatsReader) Stats(ctx context.Context) (model.Stats, error) {
	rows, err := s.q.ListRepositoryStats(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("fetch stats: %w", err)
	}
	return Summarize(rows), nil
}

// TopTopics returns the most frequent topics across stored repositories.
func (s *StatsReader) TopTopics(ctx context.Context) ([]model.TopicCount, error) {
	lists, err := s.q.ListRepositoryTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch topics: %w", err)
	}
	return RankTopics(lists, TopTopicsLimit), nil
}

// Languages returns the distinct languages of stored repositories, sorted.
func (s *StatsReader) Languages(ctx context.Context) ([]string, error) {
	languages, err := s.q.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch languages: %w", err)
	}
	if languages == nil {
		languages = []string{}
	}
	return languages, nil
}

// Overview loads the stats and the top topics concurrently.
func (s *StatsReader) Overview(ctx context.Context) (model.Overview, error) {
	var ov model.Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.Stats(gctx)
		ov.Stats = stats
		return err
	})
	g.Go(func() error {
		topics, err := s.TopTopics(gctx)
		ov.Topics = topics
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Overview{}, err
	}
	return ov, nil
}

// Summarize totals stars and forks (missing counts as 0) and counts distinct
// non-null languages and distinct owners.
func Summarize(rows []database.ListRepositoryStatsRow) model.Stats {
	languages := make(map[string]struct{})
	owners := make(map[string]struct{})
	var stats model.Stats

	for _, r := range rows {
		if r.StargazersCount.Valid {
			stats.TotalStars += int64(r.StargazersCount.Int32)
		}
		if r.ForksCount.Valid {
			stats.TotalForks += int64(r.ForksCount.Int32)
		}
		if r.Language.Valid && r.Language.String != "" {
			languages[r.Language.String] = struct{}{}
		}
		owners[r.OwnerLogin] = struct{}{}
	}

	stats.TotalRepositories = len(rows)
	stats.UniqueLanguages = len(languages)
	stats.UniqueOwners = len(owners)
	return stats
}

// RankTopics counts topic occurrences across lists and returns at most limit entries,
// highest count first. Ties keep the order in which topics were first seen.
func RankTopics(lists [][]string, limit int) []model.TopicCount {
	index := make(map[string]int)
	counts := []model.TopicCount{}

	for _, topics := range lists {
		for _, topic := range topics {
			if i, ok := index[topic]; ok {
				counts[i].Count++
				continue
			}
			index[topic] = len(counts)
			counts = append(counts, model.TopicCount{Topic: topic, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit >= 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
