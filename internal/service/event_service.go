package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack-api/internal/core/cache"
	"fittrack-api/internal/domain"
)

const eventListCacheKey = "events:all"
const eventListCacheTTL = 30 * time.Second

// EventInput 赛事表单。一次提交校验全部字段，逐字段报错。
type EventInput struct {
	Title           string `json:"title"`
	Date            string `json:"date"` // YYYY-MM-DD
	Location        string `json:"location"`
	MaxParticipants int    `json:"maxParticipants"`
	Image           string `json:"image"`
	Category        string `json:"category"`
	Distance        string `json:"distance"`
	Difficulty      string `json:"difficulty"`
	Description     string `json:"description"`
}

type EventService struct {
	events domain.EventStore
	cache  *cache.Cache // 可为 nil（未配置 redis）
	log    *zap.Logger
	now    func() time.Time
}

func NewEventService(events domain.EventStore, c *cache.Cache, log *zap.Logger) *EventService {
	return &EventService{events: events, cache: c, log: log, now: time.Now}
}

// List 公共赛事目录；配了 redis 就走读穿缓存
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	if s.cache == nil {
		return s.events.List(ctx)
	}
	out, err := cache.GetOrLoadJSON[[]domain.Event](s.cache, ctx, eventListCacheKey, eventListCacheTTL,
		func(ctx context.Context) (*[]domain.Event, error) {
			list, e := s.events.List(ctx)
			if e != nil {
				return nil, e
			}
			return &list, nil
		})
	if err != nil {
		// 缓存层故障降级直读
		s.log.Warn("event list cache degraded", zap.Error(err))
		return s.events.List(ctx)
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

func (s *EventService) Get(ctx context.Context, id uint) (*domain.Event, error) {
	return s.events.ByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, in EventInput) (*domain.Event, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	e := &domain.Event{
		Title:           strings.TrimSpace(in.Title),
		Date:            in.Date,
		DateDisplay:     FormatDateDisplay(in.Date),
		Location:        strings.TrimSpace(in.Location),
		Participants:    0, // 计数只经由报名台账变动
		MaxParticipants: in.MaxParticipants,
		Image:           in.Image,
		Category:        in.Category,
		Distance:        strings.TrimSpace(in.Distance),
		Difficulty:      in.Difficulty,
		Description:     in.Description,
	}
	if e.Image == "" {
		e.Image = domain.DefaultEventImage
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("event created", zap.Uint("id", e.ID), zap.String("title", e.Title))
	return e, nil
}

// Update 管理端整表单重新提交，校验规则与创建一致
func (s *EventService) Update(ctx context.Context, id uint, in EventInput) (*domain.Event, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	distance := strings.TrimSpace(in.Distance)
	display := FormatDateDisplay(in.Date)
	image := in.Image
	if image == "" {
		image = domain.DefaultEventImage
	}
	patch := domain.EventPatch{
		Title:           &title,
		Date:            &in.Date,
		DateDisplay:     &display,
		Location:        &location,
		MaxParticipants: &in.MaxParticipants,
		Image:           &image,
		Category:        &in.Category,
		Distance:        &distance,
		Difficulty:      &in.Difficulty,
		Description:     &in.Description,
	}
	e, err := s.events.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("event deleted", zap.Uint("id", id))
	return nil
}

// InvalidateList 报名台账变动后由注册服务调用
func (s *EventService) InvalidateList(ctx context.Context) { s.invalidate(ctx) }

func (s *EventService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, eventListCacheKey)
	}
}

func (s *EventService) validate(in EventInput) error {
	v := domain.NewValidationError()
	if strings.TrimSpace(in.Title) == "" {
		v.Add("title", "title is required")
	}
	today := s.now().Format("2006-01-02")
	if in.Date == "" {
		v.Add("date", "date is required")
	} else if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		v.Add("date", "date must be YYYY-MM-DD")
	} else if in.Date < today {
		v.Add("date", "date cannot be before today")
	}
	if strings.TrimSpace(in.Location) == "" {
		v.Add("location", "location is required")
	}
	if in.MaxParticipants <= 0 {
		v.Add("maxParticipants", "must be a number greater than 0")
	}
	if in.Category == "" {
		v.Add("category", "category is required")
	} else if !domain.ValidCategory(in.Category) {
		v.Add("category", "unknown category")
	}
	if strings.TrimSpace(in.Distance) == "" {
		v.Add("distance", "distance is required")
	}
	if in.Difficulty == "" {
		v.Add("difficulty", "difficulty is required")
	} else if !domain.ValidDifficulty(in.Difficulty) {
		v.Add("difficulty", "unknown difficulty")
	}
	return v.OrNil()
}

// FormatDateDisplay "2025-04-15" → "15 ABR 2025"，月份缩写沿用前端文案
func FormatDateDisplay(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	months := []string{"ENE", "FEB", "MAR", "ABR", "MAY", "JUN", "JUL", "AGO", "SEP", "OCT", "NOV", "DIC"}
	return t.Format("2") + " " + months[t.Month()-1] + " " + t.Format("2006")
}
