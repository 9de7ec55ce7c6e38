package dto

type SignGuestbookRequest struct {
	Name string `json:"name" validate:"required"`
}

type GuestbookResponse struct {
	Signatures []string `json:"signatures"`
}
