package catalog

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrSlugTaken         = errors.New("slug already in use")
	ErrCategoryCycle     = errors.New("category parent chain forms a cycle")
	ErrInsufficientStock = errors.New("insufficient stock")
)
