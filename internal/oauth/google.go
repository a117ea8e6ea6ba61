package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ansh-patel-repos/job-listing-portal/internal/config"
)

var (
	ErrInvalidState = errors.New("oauth: invalid or expired state")
	ErrInvalidCode  = errors.New("oauth: invalid authorization code")
)

// GoogleUser is the profile Google returns after a consent flow.
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
}

type GoogleClient struct {
	oauth2Config *oauth2.Config
	states       *stateStore
	httpClient   *http.Client
}

func NewGoogleClient(cfg config.Config) *GoogleClient {
	return &GoogleClient{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
		states:     newStateStore(10 * time.Minute),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL returns the provider consent URL with a one-time state nonce
// embedded for CSRF protection.
func (g *GoogleClient) AuthURL() (string, error) {
	state, err := g.states.Issue()
	if err != nil {
		return "", err
	}
	return g.oauth2Config.AuthCodeURL(state), nil
}

// Exchange validates the callback state, trades the code for an access token
// and fetches the asserted profile.
func (g *GoogleClient) Exchange(ctx context.Context, code, state string) (*GoogleUser, error) {
	if !g.states.Consume(state) {
		return nil, ErrInvalidState
	}

	tok, err := g.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, ErrInvalidCode
	}

	return g.fetchProfile(ctx, tok.AccessToken)
}

func (g *GoogleClient) fetchProfile(ctx context.Context, accessToken string) (*GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth: userinfo endpoint returned status %d", resp.StatusCode)
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}
