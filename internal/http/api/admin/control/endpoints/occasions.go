package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/hijri"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/admin/control/packets"
	mobile "github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/packets"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
	"github.com/MahmoudAkram21/um-qura-back/internal/mqtt"
)

const DefaultOccasionLimit = 50

type OccasionController struct {
	store db.Store
	pub   mqtt.Publisher
}

// OccasionModule mounts all authenticated /occasions endpoints.
func OccasionModule(store db.Store, pub mqtt.Publisher) api.Module {
	ctl := &OccasionController{store: store, pub: publisherOrNoop(pub)}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/occasions", ctl.listOccasions)
		c.POST("/occasions", ctl.createOccasion)
		c.GET("/occasions/:id", ctl.getOccasion)
		c.PUT("/occasions/:id", ctl.updateOccasion)
		c.DELETE("/occasions/:id", ctl.deleteOccasion)
	})
}

func occasionResponse(o model.Occasion) mobile.OccasionResponse {
	return mobile.NewOccasionResponse(hijri.Annotate(o))
}

// GET /api/v1/admin/occasions
func (o *OccasionController) listOccasions(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	var q api.ListQuery
	if apiErr := api.BindQuery(ctx, &q); apiErr != nil {
		return nil, apiErr
	}
	page := q.ToPage(DefaultOccasionLimit)

	list, total, err := o.store.ListOccasions(ctx.Request.Context(), page)
	if err != nil {
		return nil, api.Internal(err)
	}
	out := make([]mobile.OccasionResponse, 0, len(list))
	for _, occ := range list {
		out = append(out, occasionResponse(occ))
	}
	return packets.OccasionListResponse{
		Occasions:  out,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}

// GET /api/v1/admin/occasions/:id
func (o *OccasionController) getOccasion(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	occ, err := o.store.GetOccasion(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Occasion not found")
	}
	return occasionResponse(*occ), nil
}

// POST /api/v1/admin/occasions
func (o *OccasionController) createOccasion(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	var request packets.CreateOccasionRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}
	occ, err := o.store.CreateOccasion(ctx.Request.Context(), model.NewOccasion{
		HijriMonth:  request.HijriMonth,
		HijriDay:    request.HijriDay,
		Title:       request.Title,
		PrayerTitle: request.PrayerTitle,
		PrayerText:  request.PrayerText,
	})
	if err != nil {
		return nil, api.FromStore(err, "Occasion not found")
	}
	log.Info().Int("occasion_id", occ.ID).Int("admin_id", admin.AdminID).Msg("occasion created")
	o.pub.Publish(mqtt.Event{Entity: "occasions", Action: mqtt.Created, ID: occ.ID})
	return api.Created("Occasion created successfully", occasionResponse(*occ)), nil
}

// PUT /api/v1/admin/occasions/:id
func (o *OccasionController) updateOccasion(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateOccasionRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}
	occ, err := o.store.UpdateOccasion(ctx.Request.Context(), id, model.OccasionPatch{
		HijriMonth:  request.HijriMonth,
		HijriDay:    request.HijriDay,
		Title:       request.Title,
		PrayerTitle: request.PrayerTitle,
		PrayerText:  request.PrayerText,
	})
	if err != nil {
		return nil, api.FromStore(err, "Occasion not found")
	}
	log.Info().Int("occasion_id", id).Int("admin_id", admin.AdminID).Msg("occasion updated")
	o.pub.Publish(mqtt.Event{Entity: "occasions", Action: mqtt.Updated, ID: id})
	return api.OK("Occasion updated successfully", occasionResponse(*occ)), nil
}

// DELETE /api/v1/admin/occasions/:id
func (o *OccasionController) deleteOccasion(ctx *gin.Context, admin auth.Claims) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	deleted, err := o.store.DeleteOccasion(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.FromStore(err, "Occasion not found")
	}
	if !deleted {
		return nil, api.NotFound("Occasion not found")
	}
	log.Info().Int("occasion_id", id).Int("admin_id", admin.AdminID).Msg("occasion deleted")
	o.pub.Publish(mqtt.Event{Entity: "occasions", Action: mqtt.Deleted, ID: id})
	return api.OK("Occasion deleted successfully", packets.DeletedResponse{Deleted: true}), nil
}
