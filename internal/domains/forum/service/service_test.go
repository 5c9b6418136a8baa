package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"camargue/config"
	"camargue/infras/otel/mocks"
	forumMocks "camargue/internal/domains/forum/mocks"
	"camargue/internal/domains/forum/model"
	"camargue/internal/domains/forum/model/dto"
	"camargue/internal/domains/forum/service"
	userMocks "camargue/internal/domains/user/mocks"
	"camargue/shared/cache"
	"camargue/shared/constant"
	"camargue/shared/failure"
	gModel "camargue/shared/model"
	"camargue/shared/timezone"
)

// stubCache misses every read and swallows writes; the async cache writes
// would race a gomock controller.
type stubCache struct{}

func (stubCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }
func (stubCache) Get(_ context.Context, _ string, _ any) error        { return cache.Nil }
func (stubCache) Delete(_ context.Context, _ string) error            { return nil }
func (stubCache) Clear(_ context.Context, _ string) error             { return nil }

func newService(t *testing.T) (
	service.Forum,
	*forumMocks.MockPost,
	*forumMocks.MockReply,
	*userMocks.MockUser,
) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockPostRepo := forumMocks.NewMockPost(ctrl)
	mockReplyRepo := forumMocks.NewMockReply(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(mockPostRepo, mockReplyRepo, mockUserRepo, cfg, stubCache{}, mockOtel)

	return svc, mockPostRepo, mockReplyRepo, mockUserRepo
}

func authedContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func TestForumService_GetAll(t *testing.T) {
	t.Run("posts newest first with replies attached oldest first", func(t *testing.T) {
		svc, mockPostRepo, mockReplyRepo, _ := newService(t)

		newest := model.Post{
			ID:       "post-2",
			UserID:   "user-2",
			Title:    "Mistral warnings in June?",
			Content:  "Planning a week around the Saintes-Maries.",
			Metadata: gModel.NewMetadata(timezone.Now(), "user-2"),
		}
		oldest := model.Post{
			ID:       "post-1",
			UserID:   "user-1",
			Title:    "Mooring tips",
			Content:  "Where do you anchor near the lighthouse?",
			Metadata: gModel.NewMetadata(timezone.Now(), "user-1"),
		}

		firstReply := model.Reply{ID: "reply-1", PostID: "post-1", UserID: "user-2", Content: "East side, sandy bottom."}
		secondReply := model.Reply{ID: "reply-2", PostID: "post-1", UserID: "user-1", Content: "Thanks!"}

		mockPostRepo.EXPECT().ListNewestFirst(gomock.Any()).Return([]model.Post{newest, oldest}, nil)
		mockReplyRepo.EXPECT().ListForPosts(gomock.Any(), []string{"post-2", "post-1"}).
			Return([]model.Reply{firstReply, secondReply}, nil)

		res := svc.GetAll(context.Background())

		assert.Len(t, res.Posts, 2)
		assert.Equal(t, "post-2", res.Posts[0].ID)
		assert.Empty(t, res.Posts[0].Replies)
		assert.Equal(t, "post-1", res.Posts[1].ID)
		assert.Len(t, res.Posts[1].Replies, 2)
		assert.Equal(t, "reply-1", res.Posts[1].Replies[0].ID)
		assert.Equal(t, "reply-2", res.Posts[1].Replies[1].ID)
	})

	t.Run("storage failure degrades to an empty listing", func(t *testing.T) {
		svc, mockPostRepo, _, _ := newService(t)

		mockPostRepo.EXPECT().ListNewestFirst(gomock.Any()).Return(nil, errors.New("connection refused"))

		res := svc.GetAll(context.Background())

		assert.Empty(t, res.Posts)
	})
}

func TestForumService_CreatePost(t *testing.T) {
	t.Run("successful post", func(t *testing.T) {
		svc, mockPostRepo, _, mockUserRepo := newService(t)

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockPostRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		req := dto.CreatePostRequest{Title: "Provisioning in Port Gardian", Content: "Any chandlery recommendations?"}

		res, err := svc.CreatePost(authedContext("user-1"), req)

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.UserID)
		assert.Equal(t, req.Title, res.Title)
		assert.Empty(t, res.Replies)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _, mockUserRepo := newService(t)

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		req := dto.CreatePostRequest{Title: "Hello", Content: "First post"}

		_, err := svc.CreatePost(authedContext("ghost-user"), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		req := dto.CreatePostRequest{Title: "Hello", Content: "First post"}

		_, err := svc.CreatePost(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestForumService_CreateReply(t *testing.T) {
	t.Run("successful reply", func(t *testing.T) {
		svc, mockPostRepo, mockReplyRepo, mockUserRepo := newService(t)

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockPostRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockReplyRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		req := dto.CreateReplyRequest{Content: "Agreed, the east quay is calmer."}

		res, err := svc.CreateReply(authedContext("user-1"), "post-1", req)

		assert.NoError(t, err)
		assert.Equal(t, "post-1", res.PostID)
		assert.Equal(t, "user-1", res.UserID)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, mockPostRepo, _, mockUserRepo := newService(t)

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockPostRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		req := dto.CreateReplyRequest{Content: "Where is this?"}

		_, err := svc.CreateReply(authedContext("user-1"), "no-such-post", req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
