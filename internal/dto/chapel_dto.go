package dto

type ConfessRequest struct {
	Confession string `json:"confession" validate:"required"`
}

type ConfessResponse struct {
	Reflection string `json:"reflection"`
}
