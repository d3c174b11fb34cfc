package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/admin/control/packets"
	"github.com/MahmoudAkram21/um-qura-back/internal/mqtt"
)

const DefaultPrayerLimit = 20

type PrayerController struct {
	store db.Store
	pub   mqtt.Publisher
}

// PrayerModule mounts all authenticated /prayers endpoints.
func PrayerModule(store db.Store, pub mqtt.Publisher) api.Module {
	ctl := &PrayerController{store: store, pub: publisherOrNoop(pub)}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayers", ctl.listPrayers)
		c.POST("/prayers", ctl.createPrayer)
		c.GET("/prayers/:id", ctl.getPrayer)
		c.PUT("/prayers/:id", ctl.updatePrayer)
		c.DELETE("/prayers/:id", ctl.deletePrayer)
	})
}

// GET /api/v1/admin/prayers
func (p *PrayerController) listPrayers(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	var q api.ListQuery
	if apiErr := api.BindQuery(ctx, &q); apiErr != nil {
		return nil, apiErr
	}
	page := q.ToPage(DefaultPrayerLimit)

	list, total, err := p.store.ListPrayers(ctx.Request.Context(), page)
	if err != nil {
		return nil, api.Internal(err)
	}
	out := make([]packets.PrayerResponse, 0, len(list))
	for _, pr := range list {
		out = append(out, packets.NewPrayerResponse(pr))
	}
	return packets.PrayerListResponse{
		Prayers:    out,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}

// GET /api/v1/admin/prayers/:id
func (p *PrayerController) getPrayer(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	prayer, err := p.store.GetPrayer(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Prayer not found")
	}
	return packets.NewPrayerResponse(*prayer), nil
}

// POST /api/v1/admin/prayers
func (p *PrayerController) createPrayer(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	var request packets.PrayerRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}
	prayer, err := p.store.CreatePrayer(ctx.Request.Context(), request.Text)
	if err != nil {
		return nil, api.FromStore(err, "Prayer not found")
	}
	log.Info().Int("prayer_id", prayer.ID).Int("admin_id", admin.AdminID).Msg("prayer created")
	p.pub.Publish(mqtt.Event{Entity: "prayers", Action: mqtt.Created, ID: prayer.ID})
	return api.Created("Prayer created successfully", packets.NewPrayerResponse(*prayer)), nil
}

// PUT /api/v1/admin/prayers/:id
func (p *PrayerController) updatePrayer(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdatePrayerRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}
	if request.Text == nil {
		return nil, api.BadRequest("text is required for update")
	}

	prayer, err := p.store.UpdatePrayer(ctx.Request.Context(), id, *request.Text)
	if err != nil {
		return nil, api.FromStore(err, "Prayer not found")
	}
	log.Info().Int("prayer_id", id).Int("admin_id", admin.AdminID).Msg("prayer updated")
	p.pub.Publish(mqtt.Event{Entity: "prayers", Action: mqtt.Updated, ID: id})
	return api.OK("Prayer updated successfully", packets.NewPrayerResponse(*prayer)), nil
}

// DELETE /api/v1/admin/prayers/:id
func (p *PrayerController) deletePrayer(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	deleted, err := p.store.DeletePrayer(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Prayer not found")
	}
	if !deleted {
		return nil, api.NotFound("Prayer not found")
	}
	log.Info().Int("prayer_id", id).Int("admin_id", admin.AdminID).Msg("prayer deleted")
	p.pub.Publish(mqtt.Event{Entity: "prayers", Action: mqtt.Deleted, ID: id})
	return api.OK("Prayer deleted successfully", packets.DeletedResponse{Deleted: true}), nil
}
