package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

// userIDHeader carries the identity resolved by the upstream auth proxy.
// Session handling itself lives outside this service.
const userIDHeader = "X-User-ID"

func (h *handlerImpl) HandleIdentityMiddleware(c *gin.Context) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		h.logger.Warn().Str("path", c.FullPath()).Msg("missing identity header")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}
	c.Set(userIDCtxKey, userID)
}

// currentUserID returns the identity set by the middleware, aborting with
// 401 when absent.
func (h *handlerImpl) currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return "", false
	}
	userID, _ := value.(string)
	return userID, true
}
