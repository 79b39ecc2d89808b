package pages

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, files map[string]string) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	h := NewHandler(dir, locale.NewResolver("en"))
	r := gin.New()
	h.RegisterRoutes(r)
	r.NoRoute(h.Assets)
	return r
}

func allPages() map[string]string {
	files := map[string]string{}
	for _, c := range locale.Supported() {
		files[string(c)+".html"] = "home " + string(c)
		files["team-"+string(c)+".html"] = "team " + string(c)
	}
	return files
}

func get(r http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoot_RedirectsToResolvedLanguage(t *testing.T) {
	r := setupRouter(t, allPages())

	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"browser language", "pl-PL,pl;q=0.9", "/pl/"},
		{"alias", "ua", "/uk/"},
		{"unsupported falls back to default", "de-DE", "/en/"},
		{"no header", "", "/en/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/", map[string]string{"Accept-Language": tt.accept})
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestHome_ServesEverySupportedLanguage(t *testing.T) {
	r := setupRouter(t, allPages())

	for _, c := range locale.Supported() {
		for _, p := range []string{"/" + string(c), "/" + string(c) + "/"} {
			w := get(r, p, nil)
			require.Equal(t, http.StatusOK, w.Code, p)
			assert.Equal(t, "home "+string(c), w.Body.String())
			assert.Equal(t, string(c), w.Header().Get("Content-Language"))
		}

		w := get(r, "/"+string(c)+"/team", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "team "+string(c), w.Body.String())
	}
}

func TestHome_FallsBackToLegacyFileName(t *testing.T) {
	r := setupRouter(t, map[string]string{"ua.html": "home ua", "team-cz.html": "team cz"})

	w := get(r, "/uk/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home ua", w.Body.String())

	w = get(r, "/cs/team", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "team cz", w.Body.String())
}

func TestHome_MissingFile(t *testing.T) {
	r := setupRouter(t, nil)

	w := get(r, "/en/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLegacyRedirects(t *testing.T) {
	r := setupRouter(t, allPages())

	tests := []struct {
		path string
		want string
	}{
		{"/ua", "/uk/"},
		{"/ua/", "/uk/"},
		{"/cz", "/cs/"},
		{"/ua/team", "/uk/team"},
		{"/cz/team", "/cs/team"},
		{"/team-ua", "/uk/team"},
		{"/team-cz.html", "/cs/team"},
		{"/team-en", "/en/team"},
		{"/pl.html", "/pl/"},
		{"/ua.html", "/uk/"},
		{"/team", "/ru/team"},
		{"/index.html", "/"},
		{"/ua?utm_source=mail", "/uk/?utm_source=mail"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(r, tt.path, nil)
			assert.Equal(t, http.StatusMovedPermanently, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestLocale(t *testing.T) {
	r := setupRouter(t, nil)

	tests := []struct {
		name    string
		target  string
		headers map[string]string
		want    locale.Code
	}{
		{"path", "/api/locale?path=/cz/team&document_lang=ru", nil, locale.CS},
		{"document lang", "/api/locale?path=/blog&document_lang=uk-UA", nil, locale.UK},
		{"accept language", "/api/locale", map[string]string{"Accept-Language": "pl"}, locale.PL},
		{"referer", "/api/locale", map[string]string{"Referer": "https://example.com/ua/team"}, locale.UK},
		{"default", "/api/locale", nil, locale.EN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.target, tt.headers)
			require.Equal(t, http.StatusOK, w.Code)

			var resp LocaleResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Lang)
			assert.Equal(t, locale.Supported(), resp.Supported)
			assert.Equal(t, locale.UK, resp.Aliases["ua"])
			assert.Equal(t, locale.EN, resp.Default)
		})
	}
}

func TestAssets(t *testing.T) {
	r := setupRouter(t, map[string]string{
		"css/site.css": "body{}",
		".env":         "SECRET=1",
	})

	w := get(r, "/css/site.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())

	assert.Equal(t, http.StatusNotFound, get(r, "/.env", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/css", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/../go.mod", nil).Code)

	w = get(r, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
