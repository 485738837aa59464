package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"creedava-api/domain/model"

	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
)

// ErrNotConfigured is returned when the LinkedIn credentials are missing
// from the configuration.
var ErrNotConfigured = errors.New("linkedin client is not configured")

// scopes requested on every authorization. Reading organization posts and
// publishing on the organization's behalf both require admin consent.
var scopes = []string{"r_organization_social", "r_basicprofile", "w_organization_social"}

// Config carries the OAuth application settings and API endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthBaseURL  string
	APIBaseURL   string
	Version      string
}

// Client talks to the LinkedIn OAuth and REST endpoints.
type Client struct {
	cfg        Config
	oauth      *oauth2.Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthBaseURL + "/authorization",
				TokenURL:  cfg.AuthBaseURL + "/accessToken",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != "" && c.cfg.RedirectURL != ""
}

// AuthorizationURL builds the consent-screen URL. State is passed through
// verbatim and comes back on the callback.
func (c *Client) AuthorizationURL(state string) (string, error) {
	if !c.configured() {
		return "", ErrNotConfigured
	}
	return c.oauth.AuthCodeURL(state), nil
}

// ExchangeCode redeems the one-time authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*model.TokenGrant, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, asProviderError(err)
	}
	return grantFromToken(tok), nil
}

// Refresh redeems a refresh token for a new access token. LinkedIn does not
// always rotate the refresh token; callers must keep the old one when the
// response omits it.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*model.TokenGrant, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	src := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken, Expiry: time.Now().Add(-time.Minute)})
	tok, err := src.Token()
	if err != nil {
		return nil, asProviderError(err)
	}
	grant := grantFromToken(tok)
	if grant.RefreshToken == refreshToken {
		// oauth2 echoes the input when the server omits a new refresh token;
		// let the caller decide on carry-forward explicitly.
		grant.RefreshToken = ""
	}
	return grant, nil
}

func grantFromToken(tok *oauth2.Token) *model.TokenGrant {
	return &model.TokenGrant{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.UTC(),
	}
}

// asProviderError normalizes an oauth2 retrieval failure into a tagged
// ProviderError so handlers can surface the provider's own code.
func asProviderError(err error) error {
	var rErr *oauth2.RetrieveError
	if !errors.As(err, &rErr) {
		return err
	}
	pe := &model.ProviderError{
		Code:        rErr.ErrorCode,
		Description: rErr.ErrorDescription,
	}
	if rErr.Response != nil {
		pe.Status = rErr.Response.StatusCode
	}
	if pe.Code == "" && len(rErr.Body) > 0 {
		var body struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if json.Unmarshal(rErr.Body, &body) == nil {
			pe.Code = body.Error
			pe.Description = body.ErrorDescription
		}
	}
	return pe
}

type listPostsQuery struct {
	Q      string `url:"q"`
	Author string `url:"author"`
	Count  int    `url:"count"`
}

type listPostsResponse struct {
	Elements []model.RawOrganizationPost `json:"elements"`
}

// ListOrganizationPosts fetches up to 20 posts authored by the organization,
// newest first.
func (c *Client) ListOrganizationPosts(ctx context.Context, accessToken, organizationID string) ([]model.RawOrganizationPost, error) {
	q, err := query.Values(listPostsQuery{
		Q:      "author",
		Author: "urn:li:organization:" + organizationID,
		Count:  20,
	})
	if err != nil {
		return nil, err
	}

	var res listPostsResponse
	if err := c.doAPI(ctx, http.MethodGet, "/rest/posts?"+q.Encode(), accessToken, nil, &res); err != nil {
		return nil, err
	}
	return res.Elements, nil
}

type socialActionsResponse struct {
	LikesSummary struct {
		TotalLikes int64 `json:"totalLikes"`
	} `json:"likesSummary"`
	CommentsSummary struct {
		AggregatedTotalComments int64 `json:"aggregatedTotalComments"`
	} `json:"commentsSummary"`
	SharesSummary struct {
		TotalShares int64 `json:"totalShares"`
	} `json:"sharesSummary"`
}

// GetPostStatistics reads the engagement counters for one post urn.
func (c *Client) GetPostStatistics(ctx context.Context, accessToken, postID string) (*model.PostStatistics, error) {
	var res socialActionsResponse
	path := "/rest/socialActions/" + url.PathEscape(postID)
	if err := c.doAPI(ctx, http.MethodGet, path, accessToken, nil, &res); err != nil {
		return nil, err
	}
	return &model.PostStatistics{
		Likes:    res.LikesSummary.TotalLikes,
		Comments: res.CommentsSummary.AggregatedTotalComments,
		Shares:   res.SharesSummary.TotalShares,
	}, nil
}

type createPostRequest struct {
	Author         string `json:"author"`
	Commentary     string `json:"commentary"`
	Visibility     string `json:"visibility"`
	LifecycleState string `json:"lifecycleState"`
	Distribution   struct {
		FeedDistribution string `json:"feedDistribution"`
	} `json:"distribution"`
}

// CreateOrganizationPost publishes a text post on the organization's page
// and returns the post urn from the x-restli-id header.
func (c *Client) CreateOrganizationPost(ctx context.Context, accessToken, organizationID, text string) (string, error) {
	body := createPostRequest{
		Author:         "urn:li:organization:" + organizationID,
		Commentary:     text,
		Visibility:     "PUBLIC",
		LifecycleState: "PUBLISHED",
	}
	body.Distribution.FeedDistribution = "MAIN_FEED"

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := c.newAPIRequest(ctx, http.MethodPost, "/rest/posts", accessToken, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", readAPIError(resp)
	}
	id := resp.Header.Get("x-restli-id")
	if id == "" {
		return "", fmt.Errorf("create post response missing x-restli-id header")
	}
	return id, nil
}

func (c *Client) newAPIRequest(ctx context.Context, method, path, accessToken string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("LinkedIn-Version", c.cfg.Version)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	return req, nil
}

func (c *Client) doAPI(ctx context.Context, method, path, accessToken string, body io.Reader, out interface{}) error {
	req, err := c.newAPIRequest(ctx, method, path, accessToken, body)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	pe := &model.ProviderError{Status: resp.StatusCode}
	var body struct {
		Message          string `json:"message"`
		Code             string `json:"code"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			pe.Code = body.Error
			pe.Description = body.ErrorDescription
		} else {
			pe.Code = body.Code
			pe.Description = body.Message
		}
	}
	return pe
}
