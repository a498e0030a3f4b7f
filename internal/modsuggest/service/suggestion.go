package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/store"
	"github.com/aussiebroadwan/modsuggest/pkg/idx"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

const (
	msgModFieldsRequired  = "Mod name and URL are required"
	msgSuggestionNotFound = "Suggestion not found"
)

// SuggestionService owns the suggestion lifecycle. Status changes are not
// restricted by the current status: an admin may approve a rejected
// suggestion or reject an approved one.
type SuggestionService struct {
	Store store.Store

	// Now is overridable in tests.
	Now func() time.Time
}

// SubmitInput is the user-supplied part of a new suggestion.
type SubmitInput struct {
	ModName     string
	ModURL      string
	Description string
}

func (s *SuggestionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Submit records a new pending suggestion authored by actor. Fields are
// stored as given; whitespace-only name or URL counts as missing.
func (s *SuggestionService) Submit(ctx context.Context, actor domain.Account, in SubmitInput) (domain.Suggestion, error) {
	if strings.TrimSpace(in.ModName) == "" || strings.TrimSpace(in.ModURL) == "" {
		return domain.Suggestion{}, newError(KindValidation, msgModFieldsRequired)
	}

	now := s.now()
	sg := domain.Suggestion{
		ID:          idx.NewAt(now).String(),
		ModName:     in.ModName,
		ModURL:      in.ModURL,
		Source:      domain.DetectSource(in.ModURL),
		Description: in.Description,
		Status:      domain.StatusPending,
		SubmittedAt: now,
		AuthorID:    actor.ID,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Suggestions().CreateSuggestion(ctx, sg)
	})
	if err != nil {
		return domain.Suggestion{}, serverError("Failed to save suggestion", err)
	}

	slogx.FromContext(ctx).Info("suggestion submitted",
		slog.String("suggestion_id", sg.ID),
		slog.String("source", string(sg.Source)),
	)
	return sg, nil
}

// Approve marks a suggestion approved and clears any rejection reason.
func (s *SuggestionService) Approve(ctx context.Context, actor domain.Account, id string) (domain.Suggestion, error) {
	return s.setStatus(ctx, actor, id, domain.StatusApproved, "")
}

// Reject marks a suggestion rejected. A nil or blank reason is stored as
// domain.DefaultRejectionReason.
func (s *SuggestionService) Reject(ctx context.Context, actor domain.Account, id string, reason *string) (domain.Suggestion, error) {
	r := domain.DefaultRejectionReason
	if reason != nil && strings.TrimSpace(*reason) != "" {
		r = *reason
	}
	return s.setStatus(ctx, actor, id, domain.StatusRejected, r)
}

func (s *SuggestionService) setStatus(
	ctx context.Context,
	actor domain.Account,
	id string,
	status domain.Status,
	reason string,
) (domain.Suggestion, error) {
	if err := RequireAdmin(actor); err != nil {
		return domain.Suggestion{}, err
	}

	var out domain.Suggestion
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		sg, err := getSuggestion(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Suggestions().UpdateStatus(ctx, sg.ID, status, reason); err != nil {
			return err
		}
		sg.Status = status
		sg.RejectionReason = reason
		out = sg
		return nil
	})
	if err != nil {
		return domain.Suggestion{}, wrapStoreError(err, "Failed to update suggestion")
	}

	slogx.FromContext(ctx).Info("suggestion status changed",
		slog.String("suggestion_id", out.ID),
		slog.String("status", string(status)),
		slog.String("admin_id", actor.ID),
	)
	return out, nil
}

// Delete permanently removes a suggestion.
func (s *SuggestionService) Delete(ctx context.Context, actor domain.Account, id string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		sg, err := getSuggestion(ctx, tx, id)
		if err != nil {
			return err
		}
		return tx.Suggestions().DeleteSuggestion(ctx, sg.ID)
	})
	if err != nil {
		return wrapStoreError(err, "Failed to delete suggestion")
	}

	slogx.FromContext(ctx).Info("suggestion deleted",
		slog.String("suggestion_id", id),
		slog.String("admin_id", actor.ID),
	)
	return nil
}

// List returns every suggestion, newest first, with its author's username.
func (s *SuggestionService) List(ctx context.Context) ([]domain.SuggestionView, error) {
	views, err := s.Store.Suggestions().ListSuggestions(ctx)
	if err != nil {
		return nil, serverError("Failed to list suggestions", err)
	}
	return views, nil
}

func getSuggestion(ctx context.Context, st store.Store, id string) (domain.Suggestion, error) {
	if _, err := idx.Parse(id); err != nil {
		return domain.Suggestion{}, newError(KindNotFound, msgSuggestionNotFound)
	}
	sg, err := st.Suggestions().GetSuggestionByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Suggestion{}, newError(KindNotFound, msgSuggestionNotFound)
	}
	return sg, err
}

// wrapStoreError passes service errors produced inside a transaction
// through and turns anything else into a server error.
func wrapStoreError(err error, msg string) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return serverError(msg, err)
}
