// AngelaMos | 2026
// dto.go

package auth

type AuthenticateRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type AuthenticateResponse struct {
	Credentials bool `json:"credentials"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type DecodedToken struct {
	ID      int64 `json:"id"`
	IsAdmin bool  `json:"isAdmin"`
}

type ValidateResponse struct {
	DecodedToken DecodedToken `json:"decodedToken"`
}

type ProfileUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProfileResponse struct {
	User ProfileUser `json:"user"`
}
