package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/service"
)

// Context keys populated by the auth middleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// currentActor reads the authenticated actor from the request context.
func currentActor(c *gin.Context) service.Actor {
	return service.Actor{
		UserID: c.GetString(CtxUserID),
		Role:   c.GetString(CtxRole),
	}
}

// queryDate parses a "YYYY-MM-DD" query parameter, defaulting to today when
// absent.
func queryDate(c *gin.Context, name string) (model.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return model.Today(), true
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, false
	}
	return d, true
}
