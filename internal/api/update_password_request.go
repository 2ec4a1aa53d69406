package api

// UpdatePasswordRequest changes a user's password. PasswordActual is required
// for non-admin callers and checked against the stored digest.
// swagger:model api.UpdatePasswordRequest
type UpdatePasswordRequest struct {
	PasswordActual string `json:"password_actual" form:"password_actual" example:"Vieja123!"`
	PasswordNueva  string `json:"password_nueva" form:"password_nueva" validate:"required" example:"Nueva456!"`
}
