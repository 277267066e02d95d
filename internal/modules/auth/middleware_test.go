package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedHandler(t *testing.T, j JWT) (http.Handler, *string) {
	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		seenUserID = id
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(j)(next), &seenUserID
}

func TestMiddleware_MissingHeader(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	handler, _ := newProtectedHandler(t, j)

	req := httptest.NewRequest(http.MethodGet, "/api/investments", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	handler, _ := newProtectedHandler(t, j)

	req := httptest.NewRequest(http.MethodGet, "/api/investments", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	handler, _ := newProtectedHandler(t, j)

	req := httptest.NewRequest(http.MethodGet, "/api/investments", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_ValidTokenInjectsUserID(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	handler, seenUserID := newProtectedHandler(t, j)

	token, _, err := j.Sign("user-1", "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/investments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", *seenUserID)
}

func TestBearerToken_Parsing(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
}
