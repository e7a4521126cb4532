package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-invoices/internal/domain"
	"github.com/fsdevblog/groph-invoices/internal/service"
	"github.com/fsdevblog/groph-invoices/internal/transport/web/middlewares"
)

// Сообщения страницы входа. Неопознанные ошибки не превращаются в сообщение,
// а пробрасываются дальше.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."
)

const sessionCookieMaxAge = int(service.SessionTokenExpire / time.Second)

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// ShowLogin GET LoginRoute.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login", gin.H{"Email": ""})
}

type LoginParams struct {
	Email    string `binding:"required,email"        form:"email"`
	Password string `binding:"required,min=6,max=72" form:"password"`
}

// Login POST LoginRoute. Аутентификация по паре почта/пароль, на успех ставится
// сессионная кука и происходит переход на дашборд.
func (h *AuthHandler) Login(c *gin.Context) {
	var params LoginParams
	if bindErr := c.ShouldBind(&params); bindErr != nil {
		c.HTML(http.StatusUnprocessableEntity, "login", gin.H{
			"Message": MsgInvalidCredentials,
			"Email":   c.PostForm("email"),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	_, token, err := h.userService.Authenticate(ctx, service.AuthenticateArgs{
		Email:    params.Email,
		Password: params.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound), errors.Is(err, domain.ErrPasswordMissMatch):
			_ = c.Error(err)
			c.HTML(http.StatusUnauthorized, "login", gin.H{
				"Message": MsgInvalidCredentials,
				"Email":   params.Email,
			})
		case errors.Is(err, domain.ErrUnknown), errors.Is(err, domain.ErrDuplicateKey):
			_ = c.Error(err)
			c.HTML(http.StatusInternalServerError, "login", gin.H{
				"Message": MsgSomethingWentWrong,
				"Email":   params.Email,
			})
		default:
			// неопознанный вид ошибки — не гасим.
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.SetCookie(middlewares.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, DashboardRoute)
}

// Logout POST LogoutRoute. Сбрасывает сессионную куку.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middlewares.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, LoginRoute)
}
