package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack-api/internal/service"
)

func mountUsers(authed *gin.RouterGroup, d Deps) {
	ez := New(authed)

	// PUT /users/profile —— 改名/邮箱/头像，邮箱撞车报 Conflict
	RegisterAction[service.ProfilePatch, *service.ProfileView](ez, Action[service.ProfilePatch, *service.ProfileView]{
		Method: http.MethodPut,
		Path:   "/users/profile",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.ProfilePatch) (*service.ProfileView, error) {
			return d.Users.UpdateProfile(c.Request.Context(), c.GetString("userId"), *in)
		},
	})
}
