package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// UserFromToken reads the display profile from an access token payload
// without verifying the signature. The result is for display only.
func UserFromToken(token string) (models.AuthUser, bool) {
	claims, ok := parseClaims(token)
	if !ok {
		return models.AuthUser{}, false
	}

	sub := claimString(claims, "sub")
	user := models.AuthUser{
		Username: firstNonEmpty(claimString(claims, "username"), sub),
		Email:    firstNonEmpty(claimString(claims, "email"), sub),
	}
	return user, true
}

func parseClaims(token string) (map[string]any, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		return claims, true
	}

	// tokens with an unusual header still carry a readable payload
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, false
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
