package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack-api/internal/service"
)

func mountAuth(api, authed *gin.RouterGroup, d Deps) {
	ezPublic := New(api)

	// POST /auth/register
	type registerIn struct {
		Email    string `json:"email"    binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"     binding:"required"`
		Username string `json:"username" binding:"required"`
	}
	RegisterAction[registerIn, *service.AuthResult](ezPublic, Action[registerIn, *service.AuthResult]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (*service.AuthResult, error) {
			return d.Users.Register(c.Request.Context(), in.Email, in.Password, in.Name, in.Username)
		},
	})

	// POST /auth/login
	type loginIn struct {
		Email    string `json:"email"    binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	RegisterAction[loginIn, *service.AuthResult](ezPublic, Action[loginIn, *service.AuthResult]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.AuthResult, error) {
			return d.Users.Login(c.Request.Context(), in.Email, in.Password)
		},
	})

	// GET /auth/check-username?username=
	type checkQ struct {
		Username string `form:"username"`
	}
	type checkOut struct {
		Available bool `json:"available"`
	}
	RegisterAction[checkQ, checkOut](ezPublic, Action[checkQ, checkOut]{
		Method: http.MethodGet,
		Path:   "/auth/check-username",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *checkQ) (checkOut, error) {
			ok, err := d.Users.CheckUsername(c.Request.Context(), in.Username)
			if err != nil {
				return checkOut{}, err
			}
			return checkOut{Available: ok}, nil
		},
	})

	// GET /auth/me —— 必须挂鉴权分组才能拿到 userId
	ezAuth := New(authed)
	RegisterAction[struct{}, *service.ProfileView](ezAuth, Action[struct{}, *service.ProfileView]{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.ProfileView, error) {
			return d.Users.Me(c.Request.Context(), c.GetString("userId"))
		},
	})
}
