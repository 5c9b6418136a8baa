package dto

import (
	"github.com/google/uuid"

	"camargue/internal/domains/forum/model"
	gDto "camargue/shared/dto"
	gModel "camargue/shared/model"
	"camargue/shared/timezone"
)

type CreatePostRequest struct {
	Title   string `json:"title"   validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

func (c *CreatePostRequest) ToModel(userID string) model.Post {
	return model.Post{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    c.Title,
		Content:  c.Content,
		Metadata: gModel.NewMetadata(timezone.Now(), userID),
	}
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required"`
}

func (c *CreateReplyRequest) ToModel(postID, userID string) model.Reply {
	return model.Reply{
		ID:       uuid.NewString(),
		PostID:   postID,
		UserID:   userID,
		Content:  c.Content,
		Metadata: gModel.NewMetadata(timezone.Now(), userID),
	}
}

type ReplyResponse struct {
	ID      string `json:"id"`
	PostID  string `json:"post_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
	gDto.Metadata
}

func (r *ReplyResponse) FromModel(model model.Reply) {
	r.ID = model.ID
	r.PostID = model.PostID
	r.UserID = model.UserID
	r.Content = model.Content
	r.Metadata.FromModel(model.Metadata)
}

type PostResponse struct {
	ID      string          `json:"id"`
	UserID  string          `json:"user_id"`
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Replies []ReplyResponse `json:"replies"`
	gDto.Metadata
}

func (r *PostResponse) FromModel(model model.Post, replies []ReplyResponse) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Title = model.Title
	r.Content = model.Content
	r.Replies = replies
	r.Metadata.FromModel(model.Metadata)
}

type GetForumResponse struct {
	Posts []PostResponse `json:"posts"`
}
