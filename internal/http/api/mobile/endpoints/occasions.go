package endpoints

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/hijri"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/packets"
)

type OccasionController struct {
	store db.Store
	now   func() time.Time
	loc   *time.Location
}

// OccasionModule mounts the public occasions sections. "Today" is read
// from now in loc.
func OccasionModule(store db.Store, now func() time.Time, loc *time.Location) api.Module {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	ctl := &OccasionController{store: store, now: now, loc: loc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/occasions", ctl.getSections)
	})
}

// GET /api/v1/occasions
func (o *OccasionController) getSections(ctx *gin.Context) (any, *api.APIError) {
	all, err := o.store.AllOccasions(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal(err)
	}
	today := hijri.FromTime(o.now(), o.loc)
	return packets.NewOccasionSections(today, hijri.Bucket(today, all)), nil
}
