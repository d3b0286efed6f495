package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passkeeper/internal/auth"
	"passkeeper/internal/common"
	"passkeeper/internal/handlers"
	"passkeeper/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)


func registerUser(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	var tok tokenBody
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/signup", "", map[string]string{
		"name": "U", "email": email, "password": "pw123!",
	}, &tok))
	return tok.Token
}

func TestScenario_GenerateStoreListDelete(t *testing.T) {
	srv := newTestServer(t)
	tok := registerUser(t, srv, "alice@example.com")

	var gen struct {
		Password string `json:"password"`
		Strength string `json:"strength"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/password/generate?length=16", "", nil, &gen))
	require.Len(t, gen.Password, 16)

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/item", tok,
		map[string]string{"name": "Gmail", "password": gen.Password}, &created))
	assert.Equal(t, "Gmail", created.Name)

	var items []handlers.ItemDTO
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/items", tok, nil, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Gmail", items[0].Name)
	assert.Equal(t, gen.Password, items[0].Password)
	assert.Empty(t, items[0].Error)

	var del map[string]bool
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, "/api/item/"+created.ID, tok, nil, &del))
	assert.True(t, del["deleted"])

	items = nil
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/items", tok, nil, &items))
	assert.Empty(t, items)
}

func TestItems_DuplicateName(t *testing.T) {
	srv := newTestServer(t)
	tok := registerUser(t, srv, "alice@example.com")

	body := map[string]string{"name": "Gmail", "password": "x"}
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/item", tok, body, nil))
	var e errBody
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/item", tok, body, &e))
	assert.Equal(t, "duplicate_name", e.Error)
}

func TestItems_OwnershipIsolation(t *testing.T) {
	srv := newTestServer(t)
	alice := registerUser(t, srv, "alice@example.com")
	bob := registerUser(t, srv, "bob@example.com")

	var created struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/item", alice,
		map[string]string{"name": "Bank", "password": "s3cret"}, &created))

	var items []handlers.ItemDTO
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/items", bob, nil, &items))
	assert.Empty(t, items)

	// чужая и несуществующая запись дают одинаковый ответ
	var foreign, missing errBody
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/item/"+created.ID, bob, nil, &foreign))
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/item/no-such-id", bob, nil, &missing))
	assert.Equal(t, foreign, missing)

	items = nil
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/items", alice, nil, &items))
	assert.Len(t, items, 1)
}

func TestItems_RequireAuth(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/items", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodPost, "/api/item", "", map[string]string{"name": "a", "password": "b"}, nil))
	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodDelete, "/api/item/x", "garbage", nil, nil))
}

func TestItems_ListPartialDecryptFailure(t *testing.T) {
	a := &mockAuth{}
	a.On("Verify", "tok").Return(auth.Identity{Subject: "u-1"}, nil)
	s := &mockStore{}
	now := time.Now()
	s.On("List", mock.Anything, "u-1").Return([]service.CredentialView{
		{ID: "2", Name: "broken", CreatedAt: now, Err: fmt.Errorf("%w: bad tag", common.ErrDecryptionFailed)},
		{ID: "1", Name: "ok", Secret: "pw", CreatedAt: now.Add(-time.Minute)},
	}, nil).Once()
	router := newMockRouter(a, s)

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"error":"decryption_failed"`)
	assert.Contains(t, body, `"password":"pw"`)
	assert.NotContains(t, body, "bad tag")
	s.AssertExpectations(t)
}

func TestItems_InternalErrorHidesDetail(t *testing.T) {
	a := &mockAuth{}
	a.On("Verify", "tok").Return(auth.Identity{Subject: "u-1"}, nil)
	s := &mockStore{}
	s.On("Create", mock.Anything, "u-1", "n", "p").Return(service.CredentialView{}, errors.New("pq: relation credentials does not exist")).Once()
	router := newMockRouter(a, s)

	req := httptest.NewRequest(http.MethodPost, "/api/item", strings.NewReader(`{"name":"n","password":"p"}`))
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "relation")
	assert.Contains(t, rr.Body.String(), `"error":"internal"`)
}

func TestItems_CreateReturnsStoredName(t *testing.T) {
	srv := newTestServer(t)
	tok := registerUser(t, srv, "trim@example.com")

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/item", tok,
		map[string]string{"name": "  Gmail ", "password": "pw"}, &created))
	assert.Equal(t, "Gmail", created.Name)

	var items []handlers.ItemDTO
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/items", tok, nil, &items))
	require.Len(t, items, 1)
	assert.Equal(t, created.Name, items[0].Name)
}

func TestItems_DeleteMalformedID(t *testing.T) {
	srv := newTestServer(t)
	tok := registerUser(t, srv, "bad-id@example.com")

	var body map[string]string
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/item/not-a-uuid", tok, nil, &body))
	assert.Equal(t, "not_found", body["error"])
}
