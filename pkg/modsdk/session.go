package modsdk

import (
	"context"
	"net/http"
)

// Session carries the session cookie of a logged in account.
type Session struct {
	client *SDKClient
	token  string
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

// Logout ends the session on the server. Calling it twice is harmless.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		return formError(resp)
	}
	return nil
}

// Index returns the listing page data for the session's account.
func (s *Session) Index(ctx context.Context) (*IndexResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}

	var page IndexResponse
	if err := decodeJSON(resp, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListSuggestions returns every suggestion, newest first.
func (s *Session) ListSuggestions(ctx context.Context) ([]SuggestionItem, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/suggestions", nil)
	if err != nil {
		return nil, err
	}

	var items []SuggestionItem
	if err := decodeJSON(resp, &items, http.StatusOK); err != nil {
		return nil, err
	}
	return items, nil
}

// SubmitSuggestion files a new suggestion.
func (s *Session) SubmitSuggestion(ctx context.Context, req SubmitSuggestionRequest) (*SubmitSuggestionResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/suggest", req)
	if err != nil {
		return nil, err
	}

	var out SubmitSuggestionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
