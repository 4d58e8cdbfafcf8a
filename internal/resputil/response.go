package resputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raids-lab/taskflow/pkg/board"
)

type Response[T any] struct {
	Code ErrorCode `json:"code"`
	Data T         `json:"data"`
	Msg  string    `json:"msg"`
}

func wrapResponse(c *gin.Context, httpCode int, msg string, data any, code ErrorCode) {
	c.JSON(httpCode, Response[any]{
		Code: code,
		Data: data,
		Msg:  msg,
	})
}

func Success(c *gin.Context, data any) {
	wrapResponse(c, http.StatusOK, "", data, OK)
}

func Error(c *gin.Context, msg string, errorCode ErrorCode) {
	wrapResponse(c, http.StatusInternalServerError, msg, nil, errorCode)
}

func HTTPError(c *gin.Context, httpCode int, msg string, errorCode ErrorCode) {
	wrapResponse(c, httpCode, msg, nil, errorCode)
}

func BadRequest(c *gin.Context, msg string) {
	wrapResponse(c, http.StatusBadRequest, msg, nil, InvalidRequest)
}

// BoardError maps a tagged mutation error onto the HTTP boundary.
func BoardError(c *gin.Context, err error) {
	switch board.KindOf(err) {
	case board.KindUnauthorized:
		HTTPError(c, http.StatusUnauthorized, err.Error(), Unauthorized)
	case board.KindForbidden:
		HTTPError(c, http.StatusForbidden, err.Error(), Forbidden)
	case board.KindNotFound:
		HTTPError(c, http.StatusNotFound, err.Error(), NotFound)
	case board.KindValidationFailed:
		HTTPError(c, http.StatusBadRequest, err.Error(), ValidationFailed)
	default:
		HTTPError(c, http.StatusInternalServerError, err.Error(), OperationFailed)
	}
}
