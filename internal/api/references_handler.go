package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"physique-coach/internal/library"
)

// GetReferences returns GET /references?module=
func GetReferences(c *gin.Context) {
	refs, err := library.References(c.Query("module"))
	if err != nil {
		abortWithError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, refs)
}
