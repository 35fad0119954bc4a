package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"bookstore-management/internal/config"
	domainInventory "bookstore-management/internal/domain/inventory"
	domainUser "bookstore-management/internal/domain/user"
	"bookstore-management/internal/middleware"
	"bookstore-management/internal/usecase/inventory"
	"bookstore-management/internal/usecase/user"
	appErrors "bookstore-management/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUsers is an in-memory domainUser.Repository.
type memUsers struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*domainUser.User
	fail   error
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[uint]*domainUser.User{}}
}

func (m *memUsers) emailTaken(email string, except uint) bool {
	for id, u := range m.rows {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (m *memUsers) Create(_ context.Context, u *domainUser.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.emailTaken(u.Email, 0) {
		return domainUser.ErrUserAlreadyExists
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	row := *u
	m.rows[u.ID] = &row
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uint) (*domainUser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	u, ok := m.rows[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	row := *u
	return &row, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			row := *u
			return &row, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (m *memUsers) GetAll(_ context.Context) ([]*domainUser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, domainUser.ErrNoUsers
	}
	out := make([]*domainUser.User, 0, len(m.rows))
	for _, u := range m.rows {
		row := *u
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) Update(_ context.Context, id uint, p *domainUser.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return domainUser.ErrUserNotFoundForUpdate
	}
	if p.Email != nil && m.emailTaken(*p.Email, id) {
		return domainUser.ErrUserAlreadyExists
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHashed != nil {
		u.PasswordHashed = *p.PasswordHashed
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (m *memUsers) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domainUser.ErrUserNotFoundForDelete
	}
	delete(m.rows, id)
	return nil
}

// memItems is an in-memory domainInventory.Repository for one collection.
type memItems struct {
	mu         sync.Mutex
	collection domainInventory.Collection
	nextID     uint
	rows       map[uint]*domainInventory.Item
}

func newMemItems(c domainInventory.Collection) *memItems {
	return &memItems{collection: c, rows: map[uint]*domainInventory.Item{}}
}

func (m *memItems) Collection() domainInventory.Collection { return m.collection }

func (m *memItems) checkUnique(isbn, title *string, except uint) error {
	for id, it := range m.rows {
		if id != except && isbn != nil && it.ISBN == *isbn {
			return domainInventory.ErrISBNExists
		}
	}
	for id, it := range m.rows {
		if id != except && title != nil && it.Title == *title {
			return domainInventory.ErrTitleExists
		}
	}
	return nil
}

func (m *memItems) Create(_ context.Context, item *domainInventory.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkUnique(&item.ISBN, &item.Title, 0); err != nil {
		return err
	}
	m.nextID++
	item.ID = m.nextID
	item.SchemaVersion = domainInventory.SchemaVersion
	item.RecomputeAvailable()
	row := *item
	m.rows[item.ID] = &row
	return nil
}

func (m *memItems) GetByID(_ context.Context, id uint) (*domainInventory.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.rows[id]
	if !ok {
		return nil, domainInventory.ErrNotFound(m.collection)
	}
	row := *it
	return &row, nil
}

func (m *memItems) GetAll(_ context.Context) ([]*domainInventory.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, domainInventory.ErrNoneFound(m.collection)
	}
	out := make([]*domainInventory.Item, 0, len(m.rows))
	for _, it := range m.rows {
		row := *it
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memItems) Update(_ context.Context, id uint, p *domainInventory.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.rows[id]
	if !ok {
		return domainInventory.ErrNotFoundForUpdate(m.collection)
	}
	if err := m.checkUnique(p.ISBN, p.Title, id); err != nil {
		return err
	}
	next := *it
	p.Apply(&next)
	if !next.HasConsistentStock() {
		return domainInventory.ErrReservedExceedsTotal
	}
	*it = next
	return nil
}

func (m *memItems) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domainInventory.ErrNotFoundForDelete(m.collection)
	}
	delete(m.rows, id)
	return nil
}

type testServer struct {
	engine *gin.Engine
	users  *memUsers
	books  *memItems
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "handler-test-secret"}}
	users := newMemUsers()
	books := newMemItems(domainInventory.Books)
	stock := newMemItems(domainInventory.Stock)

	userService := user.NewService(users, cfg)

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware())
	api := engine.Group("/api")
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))

	NewAuthHandler(userService).RegisterRoutes(api)
	NewUserHandler(userService).RegisterRoutes(api, protected)
	NewInventoryHandler(inventory.NewService(books, nil)).RegisterRoutes(protected)
	NewInventoryHandler(inventory.NewService(stock, nil)).RegisterRoutes(protected)

	return &testServer{engine: engine, users: users, books: books}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// login registers a user and returns an Authorization header value.
func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/user", "", `{"name":"A","email":"a@x.com","password":"p","isActive":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth", "", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tok user.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.Token)
	return "Bearer " + tok.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestUserLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/user/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	u, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", u["email"])
	assert.Equal(t, true, u["isActive"])
	assert.NotContains(t, u, "password")
	assert.NotContains(t, w.Body.String(), "$2a$")

	w = s.do(t, http.MethodGet, "/api/user/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/user/1", "Bearer garbage", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/api/user/1", token, `{"name":"B"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domainUser.MsgUserUpdated, decode(t, w)["message"])

	w = s.do(t, http.MethodGet, "/api/users", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0]["name"])

	w = s.do(t, http.MethodDelete, "/api/user/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domainUser.MsgUserDeleted, decode(t, w)["message"])

	w = s.do(t, http.MethodDelete, "/api/user/1", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found for delete", decode(t, w)["error"])
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing fields", `{"name":"A"}`, "Please fill in all required fields: email, password, isActive"},
		{"isActive not a bool", `{"name":"A","email":"a@x.com","password":"p","isActive":"yes"}`, "Please fill in all required fields: isActive"},
		{"bad email", `{"name":"A","email":"nope","password":"p","isActive":false}`, "Invalid email format"},
		{"malformed json", `{"name":`, "Invalid request body."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/user", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decode(t, w)["error"])
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"A","email":"a@x.com","password":"p","isActive":true}`

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/user", "", body).Code)
	w := s.do(t, http.MethodPost, "/api/user", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already registered.", decode(t, w)["error"])
}

func TestAuthenticate_Failures(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/user", "",
		`{"name":"A","email":"a@x.com","password":"p","isActive":true}`).Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/user", "",
		`{"name":"C","email":"c@x.com","password":"p","isActive":false}`).Code)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing password", `{"email":"a@x.com"}`, http.StatusBadRequest},
		{"unknown email", `{"email":"z@x.com","password":"p"}`, http.StatusBadRequest},
		{"wrong password", `{"email":"a@x.com","password":"q"}`, http.StatusUnauthorized},
		{"inactive user", `{"email":"c@x.com","password":"p"}`, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/auth", "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.NotContains(t, w.Body.String(), "token")
		})
	}
}

func TestInvalidOrMissingID(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	for _, path := range []string{"/api/user/abc", "/api/user", "/api/book/1.5", "/api/book", "/api/stock/-1"} {
		t.Run(path, func(t *testing.T) {
			w := s.do(t, http.MethodGet, path, token, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, appErrors.ErrInvalidID.Message, decode(t, w)["error"])
		})
	}

	w := s.do(t, http.MethodDelete, "/api/stock", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmptyPayloads(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodPatch, "/api/user/1", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields provided for update.", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/book", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields provided for created.", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/stock", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields provided for created.", decode(t, w)["error"])
}

const bookPayload = `{
	"title": "Dune",
	"author": "Frank Herbert",
	"isbn": "978-3-16-148410-0",
	"totalStock": 10,
	"reservedStock": 2,
	"minimumStock": 0,
	"costPrice": 4.5,
	"salePrice": 9.9,
	"publicationDate": "1965-08-01"
}`

func TestBookLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/books", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No books found.", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/book", token, bookPayload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Book registered successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/book", token, bookPayload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ISBN already exists", decode(t, w)["error"])

	w = s.do(t, http.MethodGet, "/api/books", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = s.do(t, http.MethodGet, "/api/book/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	book := decode(t, w)["book"].(map[string]interface{})
	assert.Equal(t, "Dune", book["title"])
	assert.EqualValues(t, 8, book["availableStock"])
	assert.EqualValues(t, domainInventory.SchemaVersion, book["schemaVersion"])

	w = s.do(t, http.MethodPatch, "/api/book/1", token, `{"reservedStock":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domainInventory.MsgUpdated, decode(t, w)["message"])
	got, err := s.books.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, got.AvailableStock)

	w = s.do(t, http.MethodGet, "/api/book/99", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found", decode(t, w)["error"])

	w = s.do(t, http.MethodDelete, "/api/book/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book deleted successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodDelete, "/api/book/1", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found for delete", decode(t, w)["error"])
}

func TestMarkupOnlyValuesAreMissing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/user", "", `{"name":"<p></p>","email":"m@x.com","password":"p","isActive":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all required fields: name", decode(t, w)["error"])

	token := s.login(t)
	w = s.do(t, http.MethodPost, "/api/book", token, `{"title":"<b></b>","author":"Frank Herbert","isbn":"978-3-16-148410-0","totalStock":10,"reservedStock":0,"minimumStock":1,"costPrice":4.5,"salePrice":9.9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all required fields: title", decode(t, w)["error"])
}

func TestReservedStockCannotExceedTotal(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/book", token, `{"title":"Dune","author":"Frank Herbert","isbn":"978-3-16-148410-0","totalStock":1,"reservedStock":5,"minimumStock":1,"costPrice":4.5,"salePrice":9.9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domainInventory.ErrReservedExceedsTotal.Message, decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/book", token, bookPayload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPatch, "/api/book/1", token, `{"totalStock":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Reserved stock cannot exceed total stock.", decode(t, w)["error"])

	got, err := s.books.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, got.TotalStock)
}

func TestStockCollectionIsSeparate(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/book", token, bookPayload).Code)

	w := s.do(t, http.MethodGet, "/api/stocks", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No stocks found.", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/stock", token, bookPayload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Stock registered successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodPatch, "/api/stock/7", token, `{"title":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Stock not found for update", decode(t, w)["error"])
}

func TestInternalErrorsAreHidden(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	s.users.fail = appErrors.Internal("failed to get user", errors.New("connection reset by peer"))

	w := s.do(t, http.MethodGet, "/api/user/1", token, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, appErrors.GenericMessage, decode(t, w)["error"])
	assert.False(t, strings.Contains(w.Body.String(), "connection reset"))
}

func TestRequestTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RequestSizeLimitMiddleware(16))
	engine.POST("/echo", func(c *gin.Context) {
		var v map[string]interface{}
		if _, err := bindBody(c, &v); err != nil {
			respondWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"title":"`+strings.Repeat("x", 64)+`"}`))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
