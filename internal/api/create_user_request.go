package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Username string `json:"username" form:"username" validate:"required" example:"nuevo"`
	Password string `json:"password" form:"password" validate:"required" example:"Secreta123!"`
	Email    string `json:"email" form:"email" validate:"required,email" example:"nuevo@empresa.com"`
}
