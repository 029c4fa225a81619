package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>signup</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin.html"), []byte("<h1>admin</h1>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "app.js"), []byte("console.log(1)"), 0o644))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "healthy") })
	RegisterStatic(r, dir)

	do := func(method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w
	}

	w := do(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "signup")

	w = do(http.MethodGet, "/admin.html")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "admin")

	w = do(http.MethodGet, "/js/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "console.log(1)", w.Body.String())

	require.Equal(t, http.StatusOK, do(http.MethodGet, "/health").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodGet, "/missing.css").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodGet, "/js/").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodPost, "/index.html").Code)
}
