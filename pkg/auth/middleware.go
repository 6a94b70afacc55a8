package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// ErrUnauthorized は資格情報が無い・不正な場合のエラー。理由は区別しない
var ErrUnauthorized = errors.New("unauthorized")

// BearerToken は Authorization ヘッダーから "Bearer " 以降のトークンを取り出す
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	return h[len(bearerPrefix):], true
}

// CheckBearer はリクエストのトークンを secret と定数時間で比較する。
// secret が空なら常に ErrUnauthorized
func CheckBearer(r *http.Request, secret string) error {
	if secret == "" {
		return ErrUnauthorized
	}
	token, ok := BearerToken(r)
	if !ok || token == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// RequireBearer は共有シークレットによる認証必須ミドルウェア。
// 失敗時は 401 を返し、next は呼ばない
func RequireBearer(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := CheckBearer(r, secret); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
