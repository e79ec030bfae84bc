package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeValidateTokenUC struct {
	claims *domain.Claims
}

func (uc *fakeValidateTokenUC) Execute(ctx context.Context, token string) (*domain.Claims, error) {
	if token != "valid-token" {
		return nil, domain.ErrTokenInvalid
	}
	return uc.claims, nil
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: uuid.New(), Email: "agent@dar360.ae", Role: domain.RoleAgent}
	middleware := AuthMiddleware(&fakeValidateTokenUC{claims: claims})

	var gotClaims domain.Claims
	var gotOK bool
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, gotOK = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"bearer header", "Bearer valid-token", "", http.StatusNoContent},
		{"case-insensitive scheme", "bearer valid-token", "", http.StatusNoContent},
		{"query parameter fallback", "", "?token=valid-token", http.StatusNoContent},
		{"missing token", "", "", http.StatusUnauthorized},
		{"malformed header", "valid-token", "", http.StatusUnauthorized},
		{"invalid token", "Bearer wrong", "", http.StatusUnauthorized},
		{"invalid query token", "", "?token=wrong", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOK = false
			req := httptest.NewRequest(http.MethodGet, "/api/properties"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusNoContent {
				require.True(t, gotOK)
				require.Equal(t, *claims, gotClaims)
			}
		})
	}
}

func TestClaimsFromContext_Absent(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	require.False(t, ok)
}
