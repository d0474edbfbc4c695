package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/domain"
	"github.com/fieldlog/fieldlog/internal/middleware"
	"github.com/fieldlog/fieldlog/internal/token"
)

// stubUserLoader resolves any id to a fixed user, or fails with err.
type stubUserLoader struct {
	user domain.User
	err  error
}

func (s *stubUserLoader) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	u := s.user
	u.ID = id
	return u, nil
}

// echoRequester is a terminal handler that reports the requester it found.
var echoRequester = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	req, ok := middleware.RequesterFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"userId": req.UserID.String(),
		"role":   string(req.Role),
	})
})

func newIssuer(t *testing.T, ttl time.Duration) *token.Issuer {
	t.Helper()
	iss, err := token.New("test-secret", ttl)
	require.NoError(t, err)
	return iss
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestRequireAuth_ValidToken(t *testing.T) {
	iss := newIssuer(t, time.Hour)
	userID := uuid.New()
	tok, err := iss.Issue(userID)
	require.NoError(t, err)

	loader := &stubUserLoader{user: domain.User{Role: domain.RoleAdmin}}
	h := middleware.RequireAuth(iss, loader)(echoRequester)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, userID.String(), body["userId"])
	// The role comes from the store, not from anything inside the token.
	assert.Equal(t, "admin", body["role"])
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	h := middleware.RequireAuth(newIssuer(t, time.Hour), &stubUserLoader{})(echoRequester)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", errorBody(t, rec))
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	h := middleware.RequireAuth(newIssuer(t, time.Hour), &stubUserLoader{})(echoRequester)

	for _, header := range []string{"Bearer", "Basic abc123", "Bearer a b c"} {
		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "No token provided", errorBody(t, rec), "header %q", header)
	}
}

func TestRequireAuth_CaseInsensitiveScheme(t *testing.T) {
	iss := newIssuer(t, time.Hour)
	tok, err := iss.Issue(uuid.New())
	require.NoError(t, err)

	loader := &stubUserLoader{user: domain.User{Role: domain.RoleUser}}
	h := middleware.RequireAuth(iss, loader)(echoRequester)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	h := middleware.RequireAuth(newIssuer(t, time.Hour), &stubUserLoader{})(echoRequester)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorBody(t, rec))
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	iss := newIssuer(t, time.Nanosecond)
	tok, err := iss.Issue(uuid.New())
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	h := middleware.RequireAuth(iss, &stubUserLoader{})(echoRequester)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorBody(t, rec))
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	// A syntactically valid token for a user that no longer exists is as good
	// as no token at all.
	iss := newIssuer(t, time.Hour)
	tok, err := iss.Issue(uuid.New())
	require.NoError(t, err)

	loader := &stubUserLoader{err: domain.ErrNotFound}
	h := middleware.RequireAuth(iss, loader)(echoRequester)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorBody(t, rec))
}

func TestRequesterFrom_EmptyContext(t *testing.T) {
	_, ok := middleware.RequesterFrom(context.Background())
	assert.False(t, ok)
}

func TestWithRequester_RoundTrip(t *testing.T) {
	want := authz.Requester{UserID: uuid.New(), Role: domain.RoleUser}
	ctx := middleware.WithRequester(context.Background(), want)

	got, ok := middleware.RequesterFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
