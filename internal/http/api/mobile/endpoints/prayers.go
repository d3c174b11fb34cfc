package endpoints

import (
	"errors"
	"math/rand/v2"

	"github.com/gin-gonic/gin"

	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/packets"
)

type PrayerController struct {
	store db.Store
	// intN returns a uniform int in [0, n)
	intN func(n int) int
}

func PrayerModule(store db.Store, intN func(n int) int) api.Module {
	if intN == nil {
		intN = rand.IntN
	}
	ctl := &PrayerController{store: store, intN: intN}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/prayers/random", ctl.getRandom)
	})
}

// GET /api/v1/prayers/random
func (p *PrayerController) getRandom(ctx *gin.Context) (any, *api.APIError) {
	n, err := p.store.CountPrayers(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal(err)
	}
	if n == 0 {
		return nil, api.NotFound("No prayers found")
	}

	prayer, err := p.store.PrayerAt(ctx.Request.Context(), p.intN(n))
	if errors.Is(err, db.ErrNotFound) {
		// rows deleted between count and fetch
		return nil, api.NotFound("No prayers found")
	}
	if err != nil {
		return nil, api.Internal(err)
	}
	return packets.RandomPrayerResponse{ID: prayer.ID, Text: prayer.Text}, nil
}
