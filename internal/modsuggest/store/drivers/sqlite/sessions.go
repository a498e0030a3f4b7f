package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
)

type sessionsRepo struct {
	q *queries
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.db.ExecContext(ctx, createSession,
		s.ID,
		s.AccountID,
		formatTime(s.ExpiresAt),
		formatTime(s.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	var (
		s                    domain.Session
		expiresAt, createdAt string
	)
	err := r.q.db.QueryRowContext(ctx, getSessionByID, id).
		Scan(&s.ID, &s.AccountID, &expiresAt, &createdAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	if s.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return domain.Session{}, err
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.q.db.ExecContext(ctx, deleteSession, id)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.db.ExecContext(ctx, deleteExpiredSessions, formatTime(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
