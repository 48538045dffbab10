package response

import "slotboard/internal/usecase/readmodel"

type AuthResponse struct {
	AccessToken string                      `json:"access_token"`
	User        *readmodel.AuthorizedUserRM `json:"user"`
}
