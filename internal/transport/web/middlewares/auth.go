package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fsdevblog/groph-invoices/internal/service/tokens"
)

var ErrTokenNotExist = errors.New("token not exist")

const (
	CurrentUserIDKey  = "currentUserID"
	SessionCookieName = "session"
	LoginPath         = "/login"
	DashboardPath     = "/dashboard"
)

// checkSession извлекает сессионный токен из куки и проверяет его. Если кука не
// передана, вернется ошибка ErrTokenNotExist.
func checkSession(c *gin.Context, sessionSecret []byte) (*jwt.Token, error) {
	cookie, cookieErr := c.Cookie(SessionCookieName)
	if cookieErr != nil || cookie == "" {
		return nil, ErrTokenNotExist
	}

	token, err := tokens.ValidateUserJWT(cookie, sessionSecret)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	return token, nil
}

// AuthRequired проверяет, что запрос идет с действительной сессией. Записывает в
// контекст (поле CurrentUserIDKey) id юзера; без сессии отправляет на страницу входа.
func AuthRequired(sessionSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := checkSession(c, sessionSecret)
		if err != nil {
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		userClaim, ok := token.Claims.(*tokens.UserClaims)
		if !ok {
			_ = c.AbortWithError(http.StatusInternalServerError, errors.New("invalid jwt claims type")).
				SetType(gin.ErrorTypePrivate)
			return
		}
		c.Set(CurrentUserIDKey, userClaim.UserID)
		c.Next()
	}
}

// NonAuthRequired пропускает только запросы без действительной сессии:
// залогиненного юзера нет смысла держать на странице входа.
func NonAuthRequired(sessionSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := checkSession(c, sessionSecret); err == nil {
			c.Redirect(http.StatusSeeOther, DashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
