package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
)

type suggestionsRepo struct {
	q *queries
}

func scanSuggestion(row rowScanner, extra ...any) (domain.Suggestion, error) {
	var (
		s           domain.Suggestion
		source      string
		status      string
		reason      sql.NullString
		submittedAt string
	)
	dest := append([]any{
		&s.ID, &s.ModName, &s.ModURL, &source, &s.Description, &status,
		&reason, &submittedAt, &s.AuthorID,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.Suggestion{}, err
	}
	t, err := parseTime(submittedAt)
	if err != nil {
		return domain.Suggestion{}, err
	}
	s.Source = domain.Source(source)
	s.Status = domain.Status(status)
	s.RejectionReason = mapNullString(reason)
	s.SubmittedAt = t
	return s, nil
}

func (r *suggestionsRepo) GetSuggestionByID(ctx context.Context, id string) (domain.Suggestion, error) {
	s, err := scanSuggestion(r.q.db.QueryRowContext(ctx, getSuggestionByID, id))
	if err != nil {
		return domain.Suggestion{}, mapNotFound(err)
	}
	return s, nil
}

func (r *suggestionsRepo) CreateSuggestion(ctx context.Context, s domain.Suggestion) error {
	_, err := r.q.db.ExecContext(ctx, createSuggestion,
		s.ID,
		s.ModName,
		s.ModURL,
		string(s.Source),
		s.Description,
		string(s.Status),
		mapStringNull(s.RejectionReason),
		formatTime(s.SubmittedAt),
		s.AuthorID,
	)
	return mapConstraint(err)
}

func (r *suggestionsRepo) ListSuggestions(ctx context.Context) ([]domain.SuggestionView, error) {
	rows, err := r.q.db.QueryContext(ctx, listSuggestions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.SuggestionView
	for rows.Next() {
		var username string
		s, err := scanSuggestion(rows, &username)
		if err != nil {
			return nil, err
		}
		views = append(views, domain.SuggestionView{Suggestion: s, AuthorUsername: username})
	}
	return views, rows.Err()
}

func (r *suggestionsRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.Status,
	reason string,
) error {
	return mapAffected(r.q.db.ExecContext(ctx, updateSuggestionStatus,
		string(status),
		mapStringNull(reason),
		id,
	))
}

func (r *suggestionsRepo) DeleteSuggestion(ctx context.Context, id string) error {
	return mapAffected(r.q.db.ExecContext(ctx, deleteSuggestion, id))
}

func (r *suggestionsRepo) DeleteSuggestionsByAuthor(ctx context.Context, authorID string) (int64, error) {
	res, err := r.q.db.ExecContext(ctx, deleteSuggestionsByAuthor, authorID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
