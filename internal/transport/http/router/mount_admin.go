package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack-api/internal/domain"
	"fittrack-api/internal/service"
)

// 后台端接口集中在这里注册；分组已走 AuthJWT("admin")
func mountAdmin(admin *gin.RouterGroup, d Deps) {
	ez := New(admin)

	// --- GET /admin/v1/users  用户列表 ---
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"` // 按 email/name/username 模糊搜
	}
	type row struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}
	RegisterAction[listQ, listOut](ez, Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			us, total, err := d.Users.List(c.Request.Context(), in.Offset, in.Limit, in.Q)
			if err != nil {
				return listOut{}, Internal("list users failed", err)
			}
			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{
					ID: u.ID, Email: u.Email, Username: u.Username, Name: u.Name, Role: u.Role,
				})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/users/:id/ban  封禁（软删） ---
	RegisterAction[struct{}, gin.H](ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, BadRequest("missing id")
			}
			if err := d.Users.Ban(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	// --- 赛事管理 ---
	RegisterAction[struct{}, []domain.Event](ez, Action[struct{}, []domain.Event]{
		Method: http.MethodGet,
		Path:   "/events",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Event, error) {
			return d.Events.List(c.Request.Context())
		},
	})

	RegisterAction[service.EventInput, *domain.Event](ez, Action[service.EventInput, *domain.Event]{
		Method: http.MethodPost,
		Path:   "/events",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *service.EventInput) (*domain.Event, error) {
			return d.Events.Create(c.Request.Context(), *in)
		},
	})

	RegisterAction[service.EventInput, *domain.Event](ez, Action[service.EventInput, *domain.Event]{
		Method: http.MethodPut,
		Path:   "/events/:id",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *service.EventInput) (*domain.Event, error) {
			id, err := paramUint(c, "id")
			if err != nil {
				return nil, err
			}
			return d.Events.Update(c.Request.Context(), id, *in)
		},
	})

	RegisterAction[struct{}, gin.H](ez, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/events/:id",
		Binder: BindNone,
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

	// --- GET /admin/v1/events/:id/registrations  报名名单 ---
	RegisterAction[struct{}, []domain.Registration](ez, Action[struct{}, []domain.Registration]{
		Method: http.MethodGet,
		Path:   "/events/:id/registrations",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Registration, error) {
			id, err := paramUint(c, "id")
			if err != nil {
				return nil, err
			}
			regs, err := d.Registrations.Roster(c.Request.Context(), id)
			if err != nil {
				return nil, err
			}
			if regs == nil {
				regs = []domain.Registration{}
			}
			return regs, nil
		},
	})
}
