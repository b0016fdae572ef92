package auth

import "github.com/golang-jwt/jwt/v5"

// AdminClaims is the JWT payload issued for back-office sessions.
type AdminClaims struct {
	AdminID  int64  `json:"adminId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
