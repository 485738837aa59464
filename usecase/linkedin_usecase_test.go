package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"creedava-api/domain/model"
	"creedava-api/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock implementations
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Upsert(ctx context.Context, token *model.LinkedInToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) Get(ctx context.Context, organizationID string) (*model.LinkedInToken, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LinkedInToken), args.Error(1)
}

func (m *MockTokenRepository) ReplaceIf(ctx context.Context, token *model.LinkedInToken, prevUpdatedAt time.Time) (bool, error) {
	args := m.Called(ctx, token, prevUpdatedAt)
	return args.Bool(0), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, organizationID string) (*model.PostsSnapshot, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostsSnapshot), args.Error(1)
}

func (m *MockCacheRepository) Upsert(ctx context.Context, organizationID string, snapshot *model.PostsSnapshot, ttl time.Duration) error {
	args := m.Called(ctx, organizationID, snapshot, ttl)
	return args.Error(0)
}

type MockLinkedInProvider struct {
	mock.Mock
}

func (m *MockLinkedInProvider) AuthorizationURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockLinkedInProvider) ExchangeCode(ctx context.Context, code string) (*model.TokenGrant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenGrant), args.Error(1)
}

func (m *MockLinkedInProvider) Refresh(ctx context.Context, refreshToken string) (*model.TokenGrant, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenGrant), args.Error(1)
}

func (m *MockLinkedInProvider) ListOrganizationPosts(ctx context.Context, accessToken, organizationID string) ([]model.RawOrganizationPost, error) {
	args := m.Called(ctx, accessToken, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RawOrganizationPost), args.Error(1)
}

func (m *MockLinkedInProvider) GetPostStatistics(ctx context.Context, accessToken, postID string) (*model.PostStatistics, error) {
	args := m.Called(ctx, accessToken, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostStatistics), args.Error(1)
}

func (m *MockLinkedInProvider) CreateOrganizationPost(ctx context.Context, accessToken, organizationID, text string) (string, error) {
	args := m.Called(ctx, accessToken, organizationID, text)
	return args.String(0), args.Error(1)
}

func newUsecase(tokens *MockTokenRepository, cache *MockCacheRepository, provider *MockLinkedInProvider) usecase.ILinkedInUsecase {
	return usecase.NewLinkedInUsecase(tokens, cache, provider, "client-id")
}

func validToken() *model.LinkedInToken {
	return &model.LinkedInToken{
		OrganizationID: "default",
		Type:           model.TokenDocType,
		AccessToken:    "at-valid",
		RefreshToken:   "rt-1",
		ExpiresAt:      time.Now().Add(24 * time.Hour),
		ClientID:       "client-id",
		UpdatedAt:      time.Now().Add(-time.Hour),
	}
}

func TestGetOrganizationPosts_FreshSnapshotServedFromCache(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	snapshot := &model.PostsSnapshot{
		Posts:      []model.LinkedInPost{{ID: "urn:li:share:1", Text: "Hello"}},
		CapturedAt: time.Now().Add(-59 * time.Minute),
	}
	cacheRepo.On("Get", mock.Anything, "default").Return(snapshot, nil).Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	posts, cached, err := uc.GetOrganizationPosts(context.Background(), "default", false)

	assert.NoError(t, err)
	assert.True(t, cached)
	assert.Len(t, posts, 1)
	tokens.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "ListOrganizationPosts", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrganizationPosts_StaleSnapshotIsMiss(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	stale := &model.PostsSnapshot{
		Posts:      []model.LinkedInPost{{ID: "urn:li:share:old"}},
		CapturedAt: time.Now().Add(-61 * time.Minute),
	}
	cacheRepo.On("Get", mock.Anything, "default").Return(stale, nil).Once()
	cacheRepo.On("Upsert", mock.Anything, "default", mock.Anything, time.Hour).Return(nil).Once()

	tokens.On("Get", mock.Anything, "default").Return(validToken(), nil).Once()
	provider.On("ListOrganizationPosts", mock.Anything, "at-valid", "default").
		Return([]model.RawOrganizationPost{{ID: "urn:li:share:2", Commentary: "New post", PublishedAt: 1714500000000}}, nil).
		Once()
	provider.On("GetPostStatistics", mock.Anything, "at-valid", "urn:li:share:2").
		Return(&model.PostStatistics{Likes: 4, Comments: 1, Shares: 2}, nil).
		Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	posts, cached, err := uc.GetOrganizationPosts(context.Background(), "default", false)

	assert.NoError(t, err)
	assert.False(t, cached)
	assert.Len(t, posts, 1)
	assert.Equal(t, "urn:li:share:2", posts[0].ID)
	assert.Equal(t, "New post", posts[0].Text)
	assert.Equal(t, int64(4), posts[0].Engagement.Likes)
	assert.Equal(t, "CreedaVA", posts[0].AuthorName)
	assert.Equal(t, "https://www.linkedin.com/feed/update/urn:li:share:2", posts[0].URL)
	cacheRepo.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestGetOrganizationPosts_ForceBypassesCache(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	cacheRepo.On("Upsert", mock.Anything, "default", mock.Anything, time.Hour).Return(nil).Once()
	tokens.On("Get", mock.Anything, "default").Return(validToken(), nil).Once()
	provider.On("ListOrganizationPosts", mock.Anything, "at-valid", "default").
		Return([]model.RawOrganizationPost{}, nil).
		Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	_, cached, err := uc.GetOrganizationPosts(context.Background(), "default", true)

	assert.NoError(t, err)
	assert.False(t, cached)
	cacheRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetOrganizationPosts_NotConnected(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	cacheRepo.On("Get", mock.Anything, "default").Return(nil, nil).Once()
	tokens.On("Get", mock.Anything, "default").Return(nil, nil).Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	_, _, err := uc.GetOrganizationPosts(context.Background(), "default", false)

	assert.ErrorIs(t, err, usecase.ErrNotConnected)
}

func TestGetOrganizationPosts_ExpiredTokenIsRefreshed(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	expired := validToken()
	expired.AccessToken = "at-expired"
	expired.ExpiresAt = time.Now().Add(-time.Minute)

	cacheRepo.On("Get", mock.Anything, "default").Return(nil, nil).Once()
	cacheRepo.On("Upsert", mock.Anything, "default", mock.Anything, time.Hour).Return(nil).Once()
	tokens.On("Get", mock.Anything, "default").Return(expired, nil).Once()

	// Provider omits a rotated refresh token; the stored one must survive.
	provider.On("Refresh", mock.Anything, "rt-1").
		Return(&model.TokenGrant{AccessToken: "at-new", ExpiresAt: time.Now().Add(time.Hour)}, nil).
		Once()
	tokens.On("ReplaceIf", mock.Anything, mock.MatchedBy(func(tok *model.LinkedInToken) bool {
		return tok.AccessToken == "at-new" && tok.RefreshToken == "rt-1"
	}), expired.UpdatedAt).Return(true, nil).Once()

	provider.On("ListOrganizationPosts", mock.Anything, "at-new", "default").
		Return([]model.RawOrganizationPost{}, nil).
		Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	_, _, err := uc.GetOrganizationPosts(context.Background(), "default", false)

	assert.NoError(t, err)
	tokens.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestGetOrganizationPosts_ValidTokenIsNotRefreshed(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	cacheRepo.On("Get", mock.Anything, "default").Return(nil, nil).Once()
	cacheRepo.On("Upsert", mock.Anything, "default", mock.Anything, time.Hour).Return(nil).Once()
	tokens.On("Get", mock.Anything, "default").Return(validToken(), nil).Once()
	provider.On("ListOrganizationPosts", mock.Anything, "at-valid", "default").
		Return([]model.RawOrganizationPost{}, nil).
		Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	_, _, err := uc.GetOrganizationPosts(context.Background(), "default", false)

	assert.NoError(t, err)
	provider.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestGetOrganizationPosts_ExpiredWithoutRefreshTokenFailsFast(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	expired := validToken()
	expired.RefreshToken = ""
	expired.ExpiresAt = time.Now().Add(-time.Minute)

	cacheRepo.On("Get", mock.Anything, "default").Return(nil, nil).Once()
	tokens.On("Get", mock.Anything, "default").Return(expired, nil).Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	_, _, err := uc.GetOrganizationPosts(context.Background(), "default", false)

	assert.ErrorIs(t, err, usecase.ErrReauthorizationRequired)
	provider.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "ListOrganizationPosts", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrganizationPosts_StatisticsFailureZeroesCounters(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	cacheRepo.On("Get", mock.Anything, "default").Return(nil, nil).Once()
	cacheRepo.On("Upsert", mock.Anything, "default", mock.Anything, time.Hour).Return(nil).Once()
	tokens.On("Get", mock.Anything, "default").Return(validToken(), nil).Once()
	provider.On("ListOrganizationPosts", mock.Anything, "at-valid", "default").
		Return([]model.RawOrganizationPost{
			{ID: "urn:li:share:1", Commentary: "First", PublishedAt: 1714500000000},
			{ID: "urn:li:share:2", Commentary: "Second", PublishedAt: 1714400000000},
		}, nil).
		Once()
	provider.On("GetPostStatistics", mock.Anything, "at-valid", "urn:li:share:1").
		Return(&model.PostStatistics{Likes: 10, Comments: 2, Shares: 1}, nil).
		Once()
	provider.On("GetPostStatistics", mock.Anything, "at-valid", "urn:li:share:2").
		Return(nil, errors.New("throttled")).
		Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	posts, _, err := uc.GetOrganizationPosts(context.Background(), "default", false)

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, int64(10), posts[0].Engagement.Likes)
	assert.Equal(t, model.Engagement{}, posts[1].Engagement)
	assert.Equal(t, int64(0), posts[1].Impressions)
}

func TestGetOrganizationPosts_RefreshRaceLoserAdoptsWinner(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	expired := validToken()
	expired.AccessToken = "at-expired"
	expired.ExpiresAt = time.Now().Add(-time.Minute)

	winner := validToken()
	winner.AccessToken = "at-winner"

	cacheRepo.On("Get", mock.Anything, "default").Return(nil, nil).Once()
	cacheRepo.On("Upsert", mock.Anything, "default", mock.Anything, time.Hour).Return(nil).Once()
	tokens.On("Get", mock.Anything, "default").Return(expired, nil).Once()
	provider.On("Refresh", mock.Anything, "rt-1").
		Return(&model.TokenGrant{AccessToken: "at-loser", RefreshToken: "rt-2", ExpiresAt: time.Now().Add(time.Hour)}, nil).
		Once()
	tokens.On("ReplaceIf", mock.Anything, mock.Anything, expired.UpdatedAt).Return(false, nil).Once()
	tokens.On("Get", mock.Anything, "default").Return(winner, nil).Once()
	provider.On("ListOrganizationPosts", mock.Anything, "at-winner", "default").
		Return([]model.RawOrganizationPost{}, nil).
		Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	_, _, err := uc.GetOrganizationPosts(context.Background(), "default", false)

	assert.NoError(t, err)
	tokens.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestHandleCallback_StoresTokenForStateOrganization(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	expiry := time.Now().Add(60 * 24 * time.Hour)
	provider.On("ExchangeCode", mock.Anything, "the-code").
		Return(&model.TokenGrant{AccessToken: "at-1", RefreshToken: "rt-1", ExpiresAt: expiry}, nil).
		Once()
	tokens.On("Upsert", mock.Anything, mock.MatchedBy(func(tok *model.LinkedInToken) bool {
		return tok.OrganizationID == "acme" &&
			tok.AccessToken == "at-1" &&
			tok.RefreshToken == "rt-1" &&
			tok.ClientID == "client-id" &&
			tok.ExpiresAt.Equal(expiry)
	})).Return(nil).Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	err := uc.HandleCallback(context.Background(), "the-code", "acme")

	assert.NoError(t, err)
	tokens.AssertExpectations(t)
}

func TestHandleCallback_EmptyStateDefaultsOrganization(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	provider.On("ExchangeCode", mock.Anything, "the-code").
		Return(&model.TokenGrant{AccessToken: "at-1", ExpiresAt: time.Now().Add(time.Hour)}, nil).
		Once()
	tokens.On("Upsert", mock.Anything, mock.MatchedBy(func(tok *model.LinkedInToken) bool {
		return tok.OrganizationID == "default"
	})).Return(nil).Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	err := uc.HandleCallback(context.Background(), "the-code", "")

	assert.NoError(t, err)
	tokens.AssertExpectations(t)
}

func TestBuildAuthURL_PassesStateThrough(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	provider.On("AuthorizationURL", "acme").
		Return("https://www.linkedin.com/oauth/v2/authorization?state=acme", nil).
		Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	authURL, err := uc.BuildAuthURL("acme")

	assert.NoError(t, err)
	assert.Contains(t, authURL, "state=acme")
}

func TestPublishPost_UsesStoredToken(t *testing.T) {
	tokens := new(MockTokenRepository)
	cacheRepo := new(MockCacheRepository)
	provider := new(MockLinkedInProvider)

	tokens.On("Get", mock.Anything, "default").Return(validToken(), nil).Once()
	provider.On("CreateOrganizationPost", mock.Anything, "at-valid", "default", "Hello LinkedIn").
		Return("urn:li:share:99", nil).
		Once()

	uc := newUsecase(tokens, cacheRepo, provider)
	urn, err := uc.PublishPost(context.Background(), "", "Hello LinkedIn")

	assert.NoError(t, err)
	assert.Equal(t, "urn:li:share:99", urn)
}
