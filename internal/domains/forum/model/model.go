package model

import "camargue/shared/model"

const (
	PostTableName  = "forum_posts"
	PostEntityName = "forum_post"

	ReplyTableName  = "forum_replies"
	ReplyEntityName = "forum_reply"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldPostID  = "post_id"
	FieldTitle   = "title"
	FieldContent = "content"
)

const MaxTitleLength = 255

type Post struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	Title   string `db:"title"`
	Content string `db:"content"`
	model.Metadata
}

type Reply struct {
	ID      string `db:"id"`
	PostID  string `db:"post_id"`
	UserID  string `db:"user_id"`
	Content string `db:"content"`
	model.Metadata
}
