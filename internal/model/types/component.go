package types

import (
	"mime/multipart"

	"github.com/componentry/backend/internal/model"
)

// CreateComponentRequest is a decoded multipart create submission. Image stays
// nil when the form carried no file, which is a normal no-media request.
type CreateComponentRequest struct {
	Component []int  `validate:"required,min=1,dive,min=1"`
	Text      string `validate:"omitempty,max=4096"`
	Image     *multipart.FileHeader
}

// UpdateComponentRequest is a decoded multipart update submission targeting an
// existing record by its hex id.
type UpdateComponentRequest struct {
	ID        string `validate:"required"`
	Component []int  `validate:"required,min=1,dive,min=1"`
	Text      string `validate:"omitempty,max=4096"`
	Image     *multipart.FileHeader
}

type ComponentResponse struct {
	Success bool             `json:"success"`
	Data    *model.Component `json:"data"`
}

type ComponentListResponse struct {
	Success bool               `json:"success"`
	Data    []*model.Component `json:"data"`
}
