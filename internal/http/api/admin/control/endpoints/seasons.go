package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/admin/control/packets"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
	"github.com/MahmoudAkram21/um-qura-back/internal/mqtt"
)

type SeasonController struct {
	store db.Store
	pub   mqtt.Publisher
}

// SeasonModule mounts all authenticated /seasons endpoints.
func SeasonModule(store db.Store, pub mqtt.Publisher) api.Module {
	ctl := &SeasonController{store: store, pub: publisherOrNoop(pub)}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/seasons", ctl.listSeasons)
		c.POST("/seasons", ctl.createSeason)
		c.GET("/seasons/:id", ctl.getSeason)
		c.PUT("/seasons/:id", ctl.updateSeason)
		c.DELETE("/seasons/:id", ctl.deleteSeason)
	})
}

// GET /api/v1/admin/seasons
func (s *SeasonController) listSeasons(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	all, err := s.store.ListSeasons(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal(err)
	}
	out := make([]packets.SeasonResponse, 0, len(all))
	for _, se := range all {
		out = append(out, packets.NewSeasonResponse(se))
	}
	return out, nil
}

// GET /api/v1/admin/seasons/:id
func (s *SeasonController) getSeason(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	season, err := s.store.GetSeason(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Season not found")
	}
	return packets.NewSeasonResponse(*season), nil
}

// POST /api/v1/admin/seasons
func (s *SeasonController) createSeason(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	var request packets.CreateSeasonRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}

	in := model.Season{
		Name:     request.Name,
		ColorHex: request.ColorHex,
		IconName: request.IconName,
		Duration: request.Duration,
	}
	if request.SortOrder != nil {
		in.SortOrder = *request.SortOrder
	}

	season, err := s.store.CreateSeason(ctx.Request.Context(), in)
	if err != nil {
		return nil, api.FromStore(err, "Season not found")
	}
	log.Info().Int("season_id", season.ID).Int("admin_id", admin.AdminID).Msg("season created")
	s.pub.Publish(mqtt.Event{Entity: "seasons", Action: mqtt.Created, ID: season.ID})
	return api.Created("Season created", packets.NewSeasonResponse(*season)), nil
}

// PUT /api/v1/admin/seasons/:id
func (s *SeasonController) updateSeason(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateSeasonRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}

	season, err := s.store.UpdateSeason(ctx.Request.Context(), id, model.SeasonPatch{
		Name:      request.Name,
		ColorHex:  request.ColorHex,
		IconName:  request.IconName,
		Duration:  request.Duration,
		SortOrder: request.SortOrder,
	})
	if err != nil {
		return nil, api.FromStore(err, "Season not found")
	}
	log.Info().Int("season_id", id).Int("admin_id", admin.AdminID).Msg("season updated")
	s.pub.Publish(mqtt.Event{Entity: "seasons", Action: mqtt.Updated, ID: id})
	return api.OK("Season updated", packets.NewSeasonResponse(*season)), nil
}

// DELETE /api/v1/admin/seasons/:id
func (s *SeasonController) deleteSeason(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	deleted, err := s.store.DeleteSeason(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Season not found")
	}
	if !deleted {
		return nil, api.NotFound("Season not found")
	}
	log.Info().Int("season_id", id).Int("admin_id", admin.AdminID).Msg("season deleted")
	s.pub.Publish(mqtt.Event{Entity: "seasons", Action: mqtt.Deleted, ID: id})
	return api.OK("Season deleted", packets.DeletedResponse{Deleted: true}), nil
}

func publisherOrNoop(pub mqtt.Publisher) mqtt.Publisher {
	if pub == nil {
		return mqtt.Noop{}
	}
	return pub
}
