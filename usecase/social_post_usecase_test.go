package usecase_test

import (
	"context"
	"testing"
	"time"

	"creedava-api/domain/dto"
	"creedava-api/domain/model"
	"creedava-api/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSocialPostRepository struct {
	mock.Mock
}

func (m *MockSocialPostRepository) Create(ctx context.Context, post *model.SocialPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockSocialPostRepository) List(ctx context.Context, limit, offset int) ([]model.SocialPost, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.SocialPost), args.Get(1).(int64), args.Error(2)
}

func (m *MockSocialPostRepository) FetchDue(ctx context.Context, now time.Time, limit int) ([]model.SocialPost, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SocialPost), args.Error(1)
}

func (m *MockSocialPostRepository) MarkPublished(ctx context.Context, id int64, externalRef string, publishedAt time.Time) error {
	args := m.Called(ctx, id, externalRef, publishedAt)
	return args.Error(0)
}

func (m *MockSocialPostRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

type MockLinkedInUsecase struct {
	mock.Mock
}

func (m *MockLinkedInUsecase) BuildAuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockLinkedInUsecase) HandleCallback(ctx context.Context, code, state string) error {
	args := m.Called(ctx, code, state)
	return args.Error(0)
}

func (m *MockLinkedInUsecase) GetOrganizationPosts(ctx context.Context, organizationID string, force bool) ([]model.LinkedInPost, bool, error) {
	args := m.Called(ctx, organizationID, force)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]model.LinkedInPost), args.Bool(1), args.Error(2)
}

func (m *MockLinkedInUsecase) PublishPost(ctx context.Context, organizationID, text string) (string, error) {
	args := m.Called(ctx, organizationID, text)
	return args.String(0), args.Error(1)
}

func TestSocialPostUsecase_ScheduleDefaults(t *testing.T) {
	posts := new(MockSocialPostRepository)
	linkedIn := new(MockLinkedInUsecase)

	posts.On("Create", mock.Anything, mock.MatchedBy(func(p *model.SocialPost) bool {
		return p.OrganizationID == "default" &&
			p.Status == model.SocialPostStatusScheduled &&
			!p.ScheduledAt.IsZero()
	})).Return(nil).Once()

	uc := usecase.NewSocialPostUsecase(posts, linkedIn)
	post, err := uc.Schedule(context.Background(), dto.SocialPostRequest{Body: "Hiring two assistants"})

	assert.NoError(t, err)
	assert.Equal(t, "default", post.OrganizationID)
	posts.AssertExpectations(t)
}

func TestSocialPostUsecase_ProcessDuePublishesAndMarks(t *testing.T) {
	posts := new(MockSocialPostRepository)
	linkedIn := new(MockLinkedInUsecase)

	due := []model.SocialPost{
		{ID: 1, OrganizationID: "default", Body: "First"},
		{ID: 2, OrganizationID: "default", Body: "Second"},
	}
	posts.On("FetchDue", mock.Anything, mock.Anything, 10).Return(due, nil).Once()

	linkedIn.On("PublishPost", mock.Anything, "default", "First").Return("urn:li:share:1", nil).Once()
	posts.On("MarkPublished", mock.Anything, int64(1), "urn:li:share:1", mock.Anything).Return(nil).Once()

	// Second post fails and is marked failed; processing continues.
	linkedIn.On("PublishPost", mock.Anything, "default", "Second").Return("", usecase.ErrNotConnected).Once()
	posts.On("MarkFailed", mock.Anything, int64(2), mock.Anything).Return(nil).Once()

	uc := usecase.NewSocialPostUsecase(posts, linkedIn)
	attempted, err := uc.ProcessDue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, attempted)
	posts.AssertExpectations(t)
	linkedIn.AssertExpectations(t)
}
