// internal/cache/mapping.go
package cache

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github-repo-explorer/internal/database"
	"github-repo-explorer/internal/model"
)

// Values written for columns the search response does not carry.
const (
	defaultBranch          = "main"
	defaultOwnerType       = "User"
	defaultOpenIssuesCount = 0
	defaultSize            = 0
)

// prepareRepositoryUpsert maps search results to upsert rows, applying the column defaults.
func prepareRepositoryUpsert(repos []model.Repository, keyword string) []database.UpsertRepositoryParams {
	params := make([]database.UpsertRepositoryParams, len(repos))
	for i, r := range repos {
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		params[i] = database.UpsertRepositoryParams{
			GithubID:        r.GithubID,
			Name:            r.Name,
			FullName:        r.FullName,
			Description:     toPgText(r.Description),
			HtmlUrl:         r.HTMLURL,
			CloneUrl:        textValue(r.HTMLURL),
			SshUrl:          textValue(r.HTMLURL),
			Homepage:        textValue(r.HTMLURL),
			Language:        toPgText(r.Language),
			StargazersCount: int4Value(r.StargazersCount),
			WatchersCount:   int4Value(r.WatchersCount),
			ForksCount:      int4Value(r.ForksCount),
			OpenIssuesCount: int4Value(defaultOpenIssuesCount),
			Size:            int4Value(defaultSize),
			DefaultBranch:   textValue(defaultBranch),
			Topics:          topics,
			OwnerLogin:      r.Owner.Login,
			OwnerType:       textValue(defaultOwnerType),
			OwnerAvatarUrl:  textValue(r.Owner.AvatarURL),
			OwnerHtmlUrl:    textValue(r.Owner.HTMLURL),
			RepoCreatedAt:   toTimestamptz(r.CreatedAt),
			RepoUpdatedAt:   toTimestamptz(r.UpdatedAt),
			PushedAt:        toTimestamptz(r.UpdatedAt),
			SearchKeyword:   textValue(keyword),
			Archived:        pgtype.Bool{Bool: false, Valid: true},
			Disabled:        pgtype.Bool{Bool: false, Valid: true},
			Private:         pgtype.Bool{Bool: false, Valid: true},
			Fork:            pgtype.Bool{Bool: false, Valid: true},
		}
	}
	return params
}

// toModelRepository maps a stored row back into the display shape.
func toModelRepository(r database.Repository) model.Repository {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	ownerURL := r.HtmlUrl
	if r.OwnerHtmlUrl.Valid && r.OwnerHtmlUrl.String != "" {
		ownerURL = r.OwnerHtmlUrl.String
	}
	return model.Repository{
		GithubID:        r.GithubID,
		Name:            r.Name,
		FullName:        r.FullName,
		Description:     fromPgText(r.Description),
		HTMLURL:         r.HtmlUrl,
		StargazersCount: int(r.StargazersCount.Int32),
		ForksCount:      int(r.ForksCount.Int32),
		WatchersCount:   int(r.WatchersCount.Int32),
		Language:        fromPgText(r.Language),
		CreatedAt:       fromTimestamptz(r.RepoCreatedAt),
		UpdatedAt:       fromTimestamptz(r.RepoUpdatedAt),
		Owner: model.Owner{
			Login:     r.OwnerLogin,
			AvatarURL: r.OwnerAvatarUrl.String,
			HTMLURL:   ownerURL,
		},
		Topics: topics,
	}
}

// toPgText stores nil as NULL and keeps an empty string as "".
func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func fromPgText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func textValue(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func int4Value(n int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(n), Valid: true}
}

func toTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func fromTimestamptz(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
