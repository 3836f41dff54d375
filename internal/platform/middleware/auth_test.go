package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"chirusapo_backend/internal/feature/account/domain/entity"
	"chirusapo_backend/internal/feature/account/usecase"
)

// mockTokenStore is a mock implementation of the TokenStore interface.
type mockTokenStore struct {
	FindByIDFunc func(id string) (*entity.Token, error)
}

func (m *mockTokenStore) FindByID(_ context.Context, id string) (*entity.Token, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, usecase.ErrTokenNotFound
}

func validToken(id string, accountID uint) *entity.Token {
	now := time.Now()
	return &entity.Token{
		ID:        id,
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		authHeader     string
		mockFindFunc   func(id string) (*entity.Token, error)
		expectedStatus int
		expectReached  bool
	}{
		{
			name:       "success: valid bearer token",
			authHeader: "Bearer valid-token",
			mockFindFunc: func(id string) (*entity.Token, error) {
				return validToken(id, 42), nil
			},
			expectedStatus: http.StatusOK,
			expectReached:  true,
		},
		{
			name:           "failure: missing authorization header",
			authHeader:     "",
			mockFindFunc:   nil, // Store is not consulted
			expectedStatus: http.StatusUnauthorized,
			expectReached:  false,
		},
		{
			name:           "failure: non-bearer scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			mockFindFunc:   nil, // Store is not consulted
			expectedStatus: http.StatusUnauthorized,
			expectReached:  false,
		},
		{
			name:           "failure: unknown token",
			authHeader:     "Bearer unknown-token",
			mockFindFunc:   func(string) (*entity.Token, error) { return nil, usecase.ErrTokenNotFound },
			expectedStatus: http.StatusUnauthorized,
			expectReached:  false,
		},
		{
			name:       "failure: expired token",
			authHeader: "Bearer expired-token",
			mockFindFunc: func(id string) (*entity.Token, error) {
				token := validToken(id, 42)
				token.ExpiresAt = time.Now().Add(-time.Minute)
				return token, nil
			},
			expectedStatus: http.StatusUnauthorized,
			expectReached:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockTokenStore{FindByIDFunc: tt.mockFindFunc}

			reached := false
			router := gin.New()
			router.GET("/protected", AuthRequired(store), func(c *gin.Context) {
				reached = true
				id, ok := AccountID(c)
				assert.True(t, ok, "account ID should be set")
				assert.Equal(t, uint(42), id)
				assert.Equal(t, "valid-token", c.GetString(ContextTokenID))
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectReached, reached, "handler reachability mismatch")

			if tt.expectedStatus == http.StatusUnauthorized {
				var body map[string]any
				err := json.Unmarshal(w.Body.Bytes(), &body)
				assert.NoError(t, err)
				assert.Equal(t, []any{"UNAUTHORIZED"}, body["message"])
				assert.Nil(t, body["data"])
			}
		})
	}
}

func TestAccountID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns false when not authenticated", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		_, ok := AccountID(c)
		assert.False(t, ok)
	})

	t.Run("returns the stored account ID", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(ContextAccountID, uint(7))

		id, ok := AccountID(c)
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
	})
}
