package dto

type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=60"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=60"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
}

type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	Active       bool   `json:"active"`
}
