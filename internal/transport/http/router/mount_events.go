package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fittrack-api/internal/domain"
	"fittrack-api/internal/service"
)

func paramUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, BadRequest("invalid " + name)
	}
	return uint(v), nil
}

// ownerOrAdmin 只有本人或管理员能看别人的资源
func ownerOrAdmin(c *gin.Context, ownerID string) error {
	if c.GetString("userId") == ownerID || c.GetString("role") == domain.RoleAdmin {
		return nil
	}
	return domain.ErrForbidden
}

func mountEvents(api, authed *gin.RouterGroup, d Deps) {
	ezPublic := New(api)
	ezAuth := New(authed)

	// GET /events —— 公共目录（走缓存）
	RegisterAction[struct{}, []domain.Event](ezPublic, Action[struct{}, []domain.Event]{
		Method: http.MethodGet,
		Path:   "/events",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Event, error) {
			list, err := d.Events.List(c.Request.Context())
			if err != nil {
				return nil, err
			}
			if list == nil {
				list = []domain.Event{}
			}
			return list, nil
		},
	})

	// GET /events/:id
	RegisterAction[struct{}, *domain.Event](ezPublic, Action[struct{}, *domain.Event]{
		Method: http.MethodGet,
		Path:   "/events/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Event, error) {
			id, err := paramUint(c, "id")
			if err != nil {
				return nil, err
			}
			return d.Events.Get(c.Request.Context(), id)
		},
	})

	// 管理员才可改目录
	RegisterAction[service.EventInput, *domain.Event](ezAuth, Action[service.EventInput, *domain.Event]{
		Method: http.MethodPost,
		Path:   "/events",
		Binder: BindJSON,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *service.EventInput) (*domain.Event, error) {
			return d.Events.Create(c.Request.Context(), *in)
		},
	})

	RegisterAction[service.EventInput, *domain.Event](ezAuth, Action[service.EventInput, *domain.Event]{
		Method: http.MethodPut,
		Path:   "/events/:id",
		Binder: BindJSON,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *service.EventInput) (*domain.Event, error) {
			id, err := paramUint(c, "id")
			if err != nil {
				return nil, err
			}
			return d.Events.Update(c.Request.Context(), id, *in)
		},
	})

	RegisterAction[struct{}, gin.H](ezAuth, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/events/:id",
		Binder: BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := paramUint(c, "id")
			if err != nil {
				return nil, err
			}
			if err := d.Events.Delete(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	// GET /events/registrations/:userId —— 本人或管理员
	RegisterAction[struct{}, []uint](ezAuth, Action[struct{}, []uint]{
		Method: http.MethodGet,
		Path:   "/events/registrations/:userId",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]uint, error) {
			owner := c.Param("userId")
			if err := ownerOrAdmin(c, owner); err != nil {
				return nil, err
			}
			return d.Registrations.EventIDsForUser(c.Request.Context(), owner)
		},
	})

	// POST /events/:id/register
	RegisterAction[struct{}, *domain.Registration](ezAuth, Action[struct{}, *domain.Registration]{
		Method: http.MethodPost,
		Path:   "/events/:id/register",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Registration, error) {
			id, err := paramUint(c, "id")
			if err != nil {
				return nil, err
			}
			return d.Registrations.Register(c.Request.Context(), c.GetString("userId"), id)
		},
	})

	// DELETE /events/:id/register
	RegisterAction[struct{}, gin.H](ezAuth, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/events/:id/register",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := paramUint(c, "id")
			if err != nil {
				return nil, err
			}
			if err := d.Registrations.Unregister(c.Request.Context(), c.GetString("userId"), id); err != nil {
				return nil, err
			}
			return gin.H{"eventId": id}, nil
		},
	})
}
