package endpoints

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MahmoudAkram21/um-qura-back/internal/calendar"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/packets"
)

const DefaultStarLimit = 10

type StarController struct {
	store db.Store
	now   func() time.Time
}

func newStarController(store db.Store, now func() time.Time) *StarController {
	if now == nil {
		now = time.Now
	}
	return &StarController{store: store, now: now}
}

// CalendarModule mounts the nested seasons+stars calendar at /calendar.
func CalendarModule(store db.Store) api.Module {
	ctl := newStarController(store, nil)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/calendar", ctl.getCalendar)
	})
}

// StarModule mounts the read-only star endpoints used by the mobile app.
func StarModule(store db.Store, now func() time.Time) api.Module {
	ctl := newStarController(store, now)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/stars", ctl.listStars)
		c.PUBLIC_GET("/stars/current", ctl.getCurrentStar)
		c.PUBLIC_GET("/stars/:id", ctl.getStar)
	})
}

// GET /api/v1/stars/calendar, /api/v1/mobile/calendar
func (s *StarController) getCalendar(ctx *gin.Context) (any, *api.APIError) {
	rows, err := s.store.Calendar(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal(err)
	}
	return packets.NewCalendar(rows), nil
}

// StarListQuery is shared with the admin list.
type StarListQuery struct {
	api.ListQuery
	SeasonID *int `form:"seasonId" binding:"omitempty,min=0"`
}

// ListStars runs a paginated star query; the admin controller reuses it.
func ListStars(ctx *gin.Context, store db.Store) (any, *api.APIError) {
	var q StarListQuery
	if apiErr := api.BindQuery(ctx, &q); apiErr != nil {
		return nil, apiErr
	}
	page := q.ToPage(DefaultStarLimit)

	stars, total, err := store.ListStars(ctx.Request.Context(), db.StarFilter{SeasonID: q.SeasonID}, page)
	if err != nil {
		return nil, api.Internal(err)
	}

	out := make([]packets.StarResponse, 0, len(stars))
	for _, st := range stars {
		out = append(out, packets.NewStarResponse(st))
	}
	return packets.StarListResponse{
		Stars:      out,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}

// GET /api/v1/mobile/stars
func (s *StarController) listStars(ctx *gin.Context) (any, *api.APIError) {
	return ListStars(ctx, s.store)
}

// GET /api/v1/mobile/stars/current
func (s *StarController) getCurrentStar(ctx *gin.Context) (any, *api.APIError) {
	now := s.now()
	from, to := calendar.DayBounds(now)

	candidates, err := s.store.StarsOverlapping(ctx.Request.Context(), from, to)
	if err != nil {
		return nil, api.Internal(err)
	}
	star, ok := calendar.FindCurrent(now, candidates)
	if !ok {
		return nil, api.NotFound("No star found for today's date")
	}
	return packets.NewStarResponse(star), nil
}

// GET /api/v1/mobile/stars/:id
func (s *StarController) getStar(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	star, err := s.store.GetStar(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Star not found")
	}
	return packets.NewStarResponse(*star), nil
}
