package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beingiitian/internal/model"
)

func TestJWTService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.Issue(userID, "student@example.com", model.RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

// signAt builds a token whose issuance is backdated, so expiry boundaries can
// be exercised without a fake clock.
func signAt(t *testing.T, secret string, issuedAt time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID: uuid.New(),
		Email:  "student@example.com",
		Role:   model.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenExpiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTService_Expiry(t *testing.T) {
	svc := NewJWTService("test-secret")

	tests := []struct {
		name     string
		issuedAt time.Time
		wantErr  bool
	}{
		{"just inside the window", time.Now().Add(-(6*24 + 23) * time.Hour), false},
		{"just past the window", time.Now().Add(-(7*24 + 1) * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(signAt(t, "test-secret", tt.issuedAt))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, claims)
			}
		})
	}
}

func TestJWTService_TamperRejection(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.Issue(uuid.New(), "student@example.com", model.RoleStudent)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	other, err := svc.Issue(uuid.New(), "other@example.com", model.RoleAdmin)
	require.NoError(t, err)
	otherParts := strings.Split(other, ".")

	tests := []struct {
		name  string
		token string
	}{
		{"truncated signature", parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-5]},
		{"signature from another token", parts[0] + "." + parts[1] + "." + otherParts[2]},
		{"payload from another token", parts[0] + "." + otherParts[1] + "." + parts[2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").Issue(uuid.New(), "student@example.com", model.RoleStudent)
	require.NoError(t, err)

	claims, err := NewJWTService("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		claims, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	}
}
