package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/training-capacity-api/internal/middleware"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
	"github.com/noah-isme/training-capacity-api/pkg/response"
)

// bindJSON decodes the request body, answering 400 itself on failure.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

// includeInactive reads the ?includeInactive flag used by the soft-deleting catalogues.
func includeInactive(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))
	return err == nil && v
}

// respondCached writes data with the cache flag and timing in meta.
func respondCached(c *gin.Context, data interface{}, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.OK(c, data, meta)
}
