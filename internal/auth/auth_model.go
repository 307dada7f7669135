package auth

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Somchai P."`
	Email    string `json:"email" binding:"required,email" example:"somchai@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	Phone    string `json:"phone,omitempty" example:"+66812345678"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=player owner" example:"owner"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"somchai@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
