package app

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserEntity represents the user data carried in the access token.
// UserEntity 访问令牌中携带的用户数据
//
// 令牌由远端服务签发，本服务不持有签名密钥，
// 因此只做不验签的解析，用于读取 uid 与过期时间。
type UserEntity struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// ParseTokenUnverified parses the token payload without verifying the signature
// ParseTokenUnverified 不验签解析令牌载荷
func ParseTokenUnverified(tokenString string) (*UserEntity, error) {
	claims := &UserEntity{}

	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// GetTokenExpiry extracts the expiry time from the token
// GetTokenExpiry 提取令牌的过期时间
// 令牌无 exp 声明时返回零值时间
func GetTokenExpiry(tokenString string) (time.Time, error) {
	claims, err := ParseTokenUnverified(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// IsTokenExpired reports whether the token carries an exp claim in the past
// IsTokenExpired 判断令牌的 exp 声明是否已过期
func IsTokenExpired(tokenString string, now time.Time) (bool, error) {
	expiry, err := GetTokenExpiry(tokenString)
	if err != nil {
		return false, fmt.Errorf("parse token: %w", err)
	}
	if expiry.IsZero() {
		return false, nil
	}
	return !expiry.After(now), nil
}
