package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// RegisterStatic serves the frontend directory at the site root for any GET or
// HEAD request no API route claimed. Directories are served only through their
// index.html.
func RegisterStatic(r *gin.Engine, dir string) {
	files := http.FileServer(gin.Dir(dir, false))
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		fi, err := os.Stat(name)
		if err == nil && fi.IsDir() {
			fi, err = os.Stat(filepath.Join(name, "index.html"))
		}
		if err != nil || fi.IsDir() {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})
}
