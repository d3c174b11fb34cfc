package endpoints

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/calendar"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/admin/control/packets"
	mobileapi "github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/endpoints"
	mobile "github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/packets"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
	"github.com/MahmoudAkram21/um-qura-back/internal/mqtt"
)

type StarController struct {
	store db.Store
	pub   mqtt.Publisher
}

// StarModule mounts all authenticated /stars endpoints.
func StarModule(store db.Store, pub mqtt.Publisher) api.Module {
	ctl := &StarController{store: store, pub: publisherOrNoop(pub)}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/stars", ctl.listStars)
		c.POST("/stars", ctl.createStar)
		c.GET("/stars/:id", ctl.getStar)
		c.PUT("/stars/:id", ctl.updateStar)
		c.DELETE("/stars/:id", ctl.deleteStar)
	})
}

// GET /api/v1/admin/stars
func (s *StarController) listStars(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	return mobileapi.ListStars(ctx, s.store)
}

// GET /api/v1/admin/stars/:id
func (s *StarController) getStar(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	star, err := s.store.GetStar(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Star not found")
	}
	return mobile.NewStarResponse(*star), nil
}

// POST /api/v1/admin/stars
func (s *StarController) createStar(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	var request packets.CreateStarRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}
	// both already passed the datestr validator
	start, _ := calendar.ParseDate(request.StartDate)
	end, _ := calendar.ParseDate(request.EndDate)
	if apiErr := checkRange(start, end); apiErr != nil {
		return nil, apiErr
	}

	star, err := s.store.CreateStar(ctx.Request.Context(), model.NewStar{
		SeasonID:         request.SeasonID,
		Name:             request.Name,
		StartDate:        start,
		EndDate:          end,
		Description:      request.Description,
		WeatherInfo:      request.WeatherInfo,
		AgriculturalInfo: request.AgriculturalInfo,
		Tips:             request.Tips,
	})
	if err != nil {
		return nil, api.FromStore(err, "Star not found")
	}
	log.Info().Int("star_id", star.ID).Int("admin_id", admin.AdminID).Msg("star created")
	s.pub.Publish(mqtt.Event{Entity: "stars", Action: mqtt.Created, ID: star.ID})
	return api.Created("Star created successfully", mobile.NewStarResponse(*star)), nil
}

// PUT /api/v1/admin/stars/:id
func (s *StarController) updateStar(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateStarRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}

	patch := model.StarPatch{
		Name:             request.Name,
		Description:      request.Description,
		WeatherInfo:      request.WeatherInfo,
		AgriculturalInfo: request.AgriculturalInfo,
		Tips:             request.Tips,
	}
	if request.StartDate != nil {
		t, _ := calendar.ParseDate(*request.StartDate)
		patch.StartDate = &t
	}
	if request.EndDate != nil {
		t, _ := calendar.ParseDate(*request.EndDate)
		patch.EndDate = &t
	}

	// a one-sided date change must still leave start <= end
	if patch.StartDate != nil || patch.EndDate != nil {
		current, err := s.store.GetStar(ctx.Request.Context(), id)
		if err != nil {
			return nil, api.FromStore(err, "Star not found")
		}
		start, end := current.StartDate, current.EndDate
		if patch.StartDate != nil {
			start = *patch.StartDate
		}
		if patch.EndDate != nil {
			end = *patch.EndDate
		}
		if apiErr := checkRange(start, end); apiErr != nil {
			return nil, apiErr
		}
	}

	star, err := s.store.UpdateStar(ctx.Request.Context(), id, patch)
	if err != nil {
		return nil, api.FromStore(err, "Star not found")
	}
	log.Info().Int("star_id", id).Int("admin_id", admin.AdminID).Msg("star updated")
	s.pub.Publish(mqtt.Event{Entity: "stars", Action: mqtt.Updated, ID: id})
	return api.OK("Star updated successfully", mobile.NewStarResponse(*star)), nil
}

// DELETE /api/v1/admin/stars/:id
func (s *StarController) deleteStar(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	deleted, err := s.store.DeleteStar(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Star not found")
	}
	if !deleted {
		return nil, api.NotFound("Star not found")
	}
	log.Info().Int("star_id", id).Int("admin_id", admin.AdminID).Msg("star deleted")
	s.pub.Publish(mqtt.Event{Entity: "stars", Action: mqtt.Deleted, ID: id})
	return api.OK("Star deleted successfully", packets.DeletedResponse{Deleted: true}), nil
}

func checkRange(start, end time.Time) *api.APIError {
	if start.After(end) {
		return &api.APIError{
			Kind:    api.KindValidation,
			Message: "Validation failed",
			Fields:  map[string][]string{"endDate": {"must not be before startDate"}},
		}
	}
	return nil
}
