package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnprocessableEntity:
		return "unprocessable entity"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal server error"
	}
}

func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// обрабатываем только первую ошибку
		firstErr := c.Errors[0]
		var msg string
		if firstErr.IsType(gin.ErrorTypePublic) {
			msg = firstErr.Error()
		} else {
			msg = statusErrorText(c.Writer.Status())
		}

		// AbortWithError проставляет заголовки сразу, поэтому смотрим на тело,
		// а не на Written(): страницу ошибки рисуем, пока тело пустое.
		if c.Writer.Size() > 0 {
			return
		}

		accept := c.GetHeader("Accept")
		switch {
		case strings.Contains(accept, "application/json"):
			c.JSON(c.Writer.Status(), gin.H{"error": msg})
		default:
			c.HTML(c.Writer.Status(), "error", gin.H{"Message": msg})
		}
		c.Abort()
	}
}
