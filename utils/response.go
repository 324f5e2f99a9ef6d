// utils/response.go
package utils

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// RedirectWithFlash sends the browser back to a page with a transient status
// message carried in the query string. Levels: success, warning, error, info.
func RedirectWithFlash(c *gin.Context, location, level, message string) {
	q := url.Values{}
	q.Set("flash", message)
	q.Set("flash_level", level)
	c.Redirect(http.StatusSeeOther, location+"?"+q.Encode())
}
