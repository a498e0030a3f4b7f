package modsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/modsuggest/pkg/flash"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "modsuggest_session"

// ErrorKindHeader is set on form redirects that report a failure, since
// those responses have no JSON body.
const ErrorKindHeader = "X-Error-Kind"

// SDKClient talks to the public endpoints and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client. Redirects are not followed so that the
// form endpoints can be interpreted.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Register creates a non-admin account.
func (c *SDKClient) Register(ctx context.Context, username, password string) error {
	resp, err := c.postForm(ctx, "/register", username, password)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusSeeOther && resp.Header.Get("Location") == "/login" {
		return nil
	}
	return formError(resp)
}

// Login authenticates and returns a Session bound to the new session cookie.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.postForm(ctx, "/login", username, password)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		return nil, formError(resp)
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookieName && ck.Value != "" {
			return &Session{client: c, token: ck.Value}, nil
		}
	}
	return nil, errors.New("modsdk: login succeeded without a session cookie")
}

// LoginPage returns the login page data, including any pending flash.
func (c *SDKClient) LoginPage(ctx context.Context) (*AuthPageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/login", nil, nil)
	if err != nil {
		return nil, err
	}

	var page AuthPageResponse
	if err := decodeJSON(resp, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *SDKClient) postForm(ctx context.Context, path, username, password string) (*http.Response, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}
	return c.doRequest(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), headers)
}

// formError turns a failed form redirect into an APIError using the error
// kind header and the flash cookie message.
func formError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode:  resp.StatusCode,
		Code:        resp.Header.Get(ErrorKindHeader),
		Description: http.StatusText(resp.StatusCode),
	}
	if apiErr.Code == "" {
		apiErr.Code = ErrorCodeServerError
	}
	for _, ck := range resp.Cookies() {
		if ck.Name != flash.CookieName {
			continue
		}
		if n, ok := flash.Decode(ck.Value); ok {
			apiErr.Description = n.Message
		}
	}
	return apiErr
}
