// internal/cache/stats_test.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-repo-explorer/internal/database"
	"github-repo-explorer/internal/model"
)

func statsRow(stars, forks int32, language, owner string) database.ListRepositoryStatsRow {
	return database.ListRepositoryStatsRow{
		StargazersCount: pgtype.Int4{Int32: stars, Valid: true},
		ForksCount:      pgtype.Int4{Int32: forks, Valid: true},
		Language:        pgtype.Text{String: language, Valid: language != ""},
		OwnerLogin:      owner,
	}
}

func TestSummarize(t *testing.T) {
	rows := []database.ListRepositoryStatsRow{
		statsRow(100, 10, "Go", "alice"),
		statsRow(50, 5, "Go", "bob"),
		statsRow(25, 1, "Rust", "alice"),
		{OwnerLogin: "carol"},
	}

	stats := Summarize(rows)

	assert.Equal(t, model.Stats{
		TotalRepositories: 4,
		TotalStars:        175,
		TotalForks:        16,
		UniqueLanguages:   2,
		UniqueOwners:      3,
	}, stats)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, model.Stats{}, Summarize(nil))
}

func TestRankTopics(t *testing.T) {
	t.Run("counts and orders by frequency", func(t *testing.T) {
		got := RankTopics([][]string{{"a", "b"}, {"b"}, {}}, TopTopicsLimit)
		assert.Equal(t, []model.TopicCount{{Topic: "b", Count: 2}, {Topic: "a", Count: 1}}, got)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		got := RankTopics([][]string{{"x", "y"}, {"z", "y", "x"}}, TopTopicsLimit)
		assert.Equal(t, []model.TopicCount{
			{Topic: "x", Count: 2},
			{Topic: "y", Count: 2},
			{Topic: "z", Count: 1},
		}, got)
	})

	t.Run("truncates to the limit", func(t *testing.T) {
		var lists [][]string
		for i := 0; i < 30; i++ {
			lists = append(lists, []string{fmt.Sprintf("t%02d", i)})
		}
		got := RankTopics(lists, TopTopicsLimit)
		require.Len(t, got, TopTopicsLimit)
		assert.Equal(t, "t00", got[0].Topic)
	})

	t.Run("no topics", func(t *testing.T) {
		assert.Empty(t, RankTopics(nil, TopTopicsLimit))
	})
}

func TestStatsReader_Overview(t *testing.T) {
	ctx := context.Background()

	t.Run("combines stats and topics", func(t *testing.T) {
		mockQ := new(MockQuerier)
		s := NewStatsReader(mockQ, discardLogger())
		mockQ.On("ListRepositoryStats", anyContext()).Return([]database.ListRepositoryStatsRow{statsRow(3, 1, "Go", "o")}, nil).Once()
		mockQ.On("ListRepositoryTopics", anyContext()).Return([][]string{{"cli"}}, nil).Once()

		ov, err := s.Overview(ctx)

		require.NoError(t, err)
		mockQ.AssertExpectations(t)
		assert.Equal(t, 1, ov.Stats.TotalRepositories)
		assert.Equal(t, []model.TopicCount{{Topic: "cli", Count: 1}}, ov.Topics)
	})

	t.Run("either failure fails the overview", func(t *testing.T) {
		mockQ := new(MockQuerier)
		s := NewStatsReader(mockQ, discardLogger())
		dbError := errors.New("boom")
		mockQ.On("ListRepositoryStats", anyContext()).Return([]database.ListRepositoryStatsRow(nil), nil).Maybe()
		mockQ.On("ListRepositoryTopics", anyContext()).Return([][]string(nil), dbError).Once()

		_, err := s.Overview(ctx)

		assert.ErrorIs(t, err, dbError)
	})
}

func TestStatsReader_Languages(t *testing.T) {
	ctx := context.Background()
	mockQ := new(MockQuerier)
	s := NewStatsReader(mockQ, discardLogger())
	mockQ.On("ListLanguages", ctx).Return([]string(nil), nil).Once()

	languages, err := s.Languages(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{}, languages)
}
