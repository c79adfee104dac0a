package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mtodo/internal/middleware"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
	"github.com/xxxsen/mtodo/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserIDKey)
}

func badRequest(c *gin.Context) {
	response.Error(c, http.StatusBadRequest, "invalid request body")
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if fe, ok := appErr.AsFieldError(err); ok {
		response.Error(c, http.StatusBadRequest, fe.Error())
		return
	}
	switch {
	case appErr.IsUnauthorized(err):
		response.Error(c, http.StatusUnauthorized, "invalid credentials")
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "todo not found")
	case appErr.IsConflict(err):
		response.Error(c, http.StatusBadRequest, "email already exists")
	case appErr.IsInvalid(err):
		badRequest(c)
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
