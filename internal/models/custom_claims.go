package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims are the claims carried by FINORA access tokens
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Username string `json:"username,omitempty"`
}
