package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack-api/internal/domain"
)

func mountWorkouts(authed *gin.RouterGroup, d Deps) {
	ez := New(authed)

	// GET /workouts/:userId —— 训练列表 + 读时聚合的统计
	type listOut struct {
		Workouts []domain.Workout  `json:"workouts"`
		Stats    *domain.UserStats `json:"stats"`
	}
	RegisterAction[struct{}, listOut](ez, Action[struct{}, listOut]{
		Method: http.MethodGet,
		Path:   "/workouts/:userId",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (listOut, error) {
			owner := c.Param("userId")
			if err := ownerOrAdmin(c, owner); err != nil {
				return listOut{}, err
			}
			ws, err := d.Workouts.ForUser(c.Request.Context(), owner)
			if err != nil {
				return listOut{}, err
			}
			stats, err := d.Workouts.StatsFor(c.Request.Context(), owner)
			if err != nil {
				return listOut{}, err
			}
			return listOut{Workouts: ws, Stats: stats}, nil
		},
	})

	// POST /workouts —— 整段动作序列一次提交
	type createIn struct {
		Exercises []domain.Exercise `json:"exercises"`
		Notes     string            `json:"notes"`
	}
	RegisterAction[createIn, *domain.Workout](ez, Action[createIn, *domain.Workout]{
		Method: http.MethodPost,
		Path:   "/workouts",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *createIn) (*domain.Workout, error) {
			return d.Workouts.Create(c.Request.Context(), c.GetString("userId"), in.Exercises, in.Notes)
		},
	})

	// DELETE /workouts/:id —— 仅限本人，整体删除
	RegisterAction[struct{}, gin.H](ez, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/workouts/:id",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := paramUint(c, "id")
			if err != nil {
				return nil, err
			}
			if err := d.Workouts.Delete(c.Request.Context(), id, c.GetString("userId")); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
