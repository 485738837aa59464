package model

import "github.com/golang-jwt/jwt"

// UserClaims are the JWT claims issued by the hosted auth provider for
// admin panel sessions. The backend only validates them; it never issues.
type UserClaims struct {
	UserName string `json:"user_name"`
	jwt.StandardClaims
}
