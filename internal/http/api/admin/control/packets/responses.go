package packets

import (
	mobile "github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/packets"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

type SeasonResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ColorHex  string `json:"colorHex"`
	IconName  string `json:"iconName"`
	Duration  string `json:"duration"`
	SortOrder int    `json:"sortOrder"`
}

func NewSeasonResponse(s model.Season) SeasonResponse {
	return SeasonResponse{
		ID:        s.ID,
		Name:      s.Name,
		ColorHex:  s.ColorHex,
		IconName:  s.IconName,
		Duration:  s.Duration,
		SortOrder: s.SortOrder,
	}
}

type OccasionListResponse struct {
	Occasions  []mobile.OccasionResponse `json:"occasions"`
	Total      int                       `json:"total"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"totalPages"`
}

type PrayerResponse struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewPrayerResponse(p model.Prayer) PrayerResponse {
	return PrayerResponse{
		ID:        p.ID,
		Text:      p.Text,
		CreatedAt: mobile.Timestamp(p.CreatedAt),
		UpdatedAt: mobile.Timestamp(p.UpdatedAt),
	}
}

type PrayerListResponse struct {
	Prayers    []PrayerResponse `json:"prayers"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}
