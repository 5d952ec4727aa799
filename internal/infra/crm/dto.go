package crm

import "github.com/xcabral/leaddesk/internal/entity"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

type userEnvelope struct {
	User entity.User `json:"user"`
}

type userListResponse struct {
	Users []entity.User `json:"users"`
}

type leadEnvelope struct {
	Lead entity.Lead `json:"lead"`
}

type leadListResponse struct {
	Leads       []entity.Lead `json:"leads"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	Total       int           `json:"total"`
}

type quotationEnvelope struct {
	Quotation entity.Quotation `json:"quotation"`
}

type quotationListResponse struct {
	Quotations  []entity.Quotation `json:"quotations"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
	Total       int                `json:"total"`
}

type statusResponse struct {
	Status string `json:"status"`
}
