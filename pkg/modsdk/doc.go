/*
Package modsdk is a Go client for the modsuggest web service.

The service is cookie based: logging in sets a session cookie and every
other call carries it. SDKClient covers the public endpoints and hands out
a Session after a successful login.

	client := modsdk.NewSDKClient("http://localhost:8080")

	if err := client.Register(ctx, "alice", "pw123"); err != nil {
		return err
	}

	sess, err := client.Login(ctx, "alice", "pw123")
	if err != nil {
		return err
	}
	defer sess.Logout(ctx)

	created, err := sess.SubmitSuggestion(ctx, modsdk.SubmitSuggestionRequest{
		ModName: "Sodium",
		ModURL:  "https://modrinth.com/mod/sodium",
	})

Admin sessions additionally reach the review and account endpoints:

	_, err = admin.RejectSuggestion(ctx, created.Suggestion.ID, "duplicate")
	users, err := admin.AdminPanel(ctx)

# Errors

Failed calls return *APIError carrying the HTTP status and the machine
readable error kind, so callers can branch with errors.As:

	var apiErr *modsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == modsdk.ErrorCodeConflict {
		// username taken
	}

Form endpoints (login and register) answer with a redirect and a flash
cookie instead of a JSON body; the SDK turns an error flash into an
APIError as well.
*/
package modsdk
