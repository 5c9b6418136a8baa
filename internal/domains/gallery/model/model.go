package model

import "camargue/shared/model"

const (
	TableName  = "photos"
	EntityName = "photo"

	FieldID        = "id"
	FieldTitle     = "title"
	FieldCaption   = "caption"
	FieldURL       = "url"
	FieldSortOrder = "sort_order"
)

// Photo is a voyage photograph shown on the public gallery page.
type Photo struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Caption   string `db:"caption"`
	URL       string `db:"url"`
	SortOrder int    `db:"sort_order"`
	model.Metadata
}
