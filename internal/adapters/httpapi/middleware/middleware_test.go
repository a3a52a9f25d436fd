package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"inkwell/internal/ports/pagecache"
	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type stubParser map[string]*userPort.Session

func (p stubParser) ParseToken(token string) (*userPort.Session, error) {
	if s, ok := p[token]; ok {
		return s, nil
	}
	return nil, errors.New("bad token")
}

func TestLoginRequired_RedirectsWithNext(t *testing.T) {
	r := gin.New()
	r.Use(Authenticate(stubParser{}))
	called := false
	r.POST("/posts/:id/comment/", LoginRequired(), func(c *gin.Context) { called = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/posts/42/comment/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, LoginPath, loc.Path)
	assert.Equal(t, "/posts/42/comment/", loc.Query().Get("next"))
	assert.False(t, called)
}

func TestAuthenticate_BearerAndCookie(t *testing.T) {
	parser := stubParser{"tok": {UserID: "u1", Username: "leo"}}
	r := gin.New()
	r.Use(Authenticate(parser))
	r.GET("/me", LoginRequired(), func(c *gin.Context) {
		id, name, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "name": name, "ok": ok})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","name":"leo","ok":true}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer forged")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAuthenticate_NonBearerHeaderFallsBackToCookie(t *testing.T) {
	parser := stubParser{"tok": {UserID: "u1", Username: "leo"}}
	r := gin.New()
	r.Use(Authenticate(parser))
	r.GET("/me", LoginRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "tok")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code, "a bare header value is not a bearer token")
}

type memoryCache struct {
	entries map[string]*pagecache.Entry
	failGet bool
}

func (m *memoryCache) Get(_ context.Context, key string) (*pagecache.Entry, bool, error) {
	if m.failGet {
		return nil, false, errors.New("backend down")
	}
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, e *pagecache.Entry, _ time.Duration) error {
	m.entries[key] = e
	return nil
}

func TestCachePage_ServesStoredBody(t *testing.T) {
	store := &memoryCache{entries: map[string]*pagecache.Entry{}}
	hits := 0
	r := gin.New()
	r.GET("/", CachePage(store, "home_page", time.Minute, PageKey), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"render": hits, "page": c.Query("page")})
	})

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	first := get("/")
	second := get("/?page=1")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, hits)

	other := get("/?page=2")
	assert.NotEqual(t, first.Body.String(), other.Body.String())
	assert.Equal(t, 2, hits)
	assert.Contains(t, store.entries, "home_page:page=1")
	assert.Contains(t, store.entries, "home_page:page=2")
}

func TestCachePage_SkipsErrorsAndBackendFailures(t *testing.T) {
	store := &memoryCache{entries: map[string]*pagecache.Entry{}}
	r := gin.New()
	r.GET("/missing", CachePage(store, "p", time.Minute, PageKey), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, store.entries)

	store.failGet = true
	r.GET("/ok", CachePage(store, "p", time.Minute, PageKey), func(c *gin.Context) {
		c.String(http.StatusOK, "fresh")
	})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fresh", w.Body.String())
}

func TestPageKey(t *testing.T) {
	for target, want := range map[string]string{
		"/":         "page=1",
		"/?page=0":  "page=1",
		"/?page=x":  "page=1",
		"/?page=3":  "page=3",
		"/?page=-2": "page=1",
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		assert.Equal(t, want, PageKey(c), target)
	}
}
