package packets

import "github.com/MahmoudAkram21/um-qura-back/internal/model"

// seasons

type CreateSeasonRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	ColorHex  string `json:"colorHex" binding:"required,hexcolor6"`
	IconName  string `json:"iconName" binding:"required,min=1,max=50"`
	Duration  string `json:"duration" binding:"required,min=1,max=100"`
	SortOrder *int   `json:"sortOrder" binding:"omitempty,min=0"`
}

type UpdateSeasonRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	ColorHex  *string `json:"colorHex" binding:"omitempty,hexcolor6"`
	IconName  *string `json:"iconName" binding:"omitempty,min=1,max=50"`
	Duration  *string `json:"duration" binding:"omitempty,min=1,max=100"`
	SortOrder *int    `json:"sortOrder" binding:"omitempty,min=0"`
}

// stars

type CreateStarRequest struct {
	SeasonID         int      `json:"seasonId" binding:"required,gt=0"`
	Name             string   `json:"name" binding:"required,min=1,max=255"`
	StartDate        string   `json:"startDate" binding:"required,datestr"`
	EndDate          string   `json:"endDate" binding:"required,datestr"`
	Description      *string  `json:"description" binding:"omitempty,max=2000"`
	WeatherInfo      *string  `json:"weatherInfo" binding:"omitempty,max=5000"`
	AgriculturalInfo []string `json:"agriculturalInfo"`
	Tips             []string `json:"tips"`
}

type UpdateStarRequest struct {
	Name             *string              `json:"name" binding:"omitempty,min=1,max=255"`
	StartDate        *string              `json:"startDate" binding:"omitempty,datestr"`
	EndDate          *string              `json:"endDate" binding:"omitempty,datestr"`
	Description      model.NullableString `json:"description" binding:"omitempty,max=2000"`
	WeatherInfo      model.NullableString `json:"weatherInfo" binding:"omitempty,max=5000"`
	AgriculturalInfo *[]string            `json:"agriculturalInfo"`
	Tips             *[]string            `json:"tips"`
}

// occasions

type CreateOccasionRequest struct {
	HijriMonth  int     `json:"hijriMonth" binding:"required,min=1,max=12"`
	HijriDay    int     `json:"hijriDay" binding:"required,min=1,max=30"`
	Title       string  `json:"title" binding:"required,min=1,max=500"`
	PrayerTitle string  `json:"prayerTitle" binding:"required,min=1,max=500"`
	PrayerText  *string `json:"prayerText" binding:"omitempty,max=5000"`
}

type UpdateOccasionRequest struct {
	HijriMonth  *int                 `json:"hijriMonth" binding:"omitempty,min=1,max=12"`
	HijriDay    *int                 `json:"hijriDay" binding:"omitempty,min=1,max=30"`
	Title       *string              `json:"title" binding:"omitempty,min=1,max=500"`
	PrayerTitle *string              `json:"prayerTitle" binding:"omitempty,min=1,max=500"`
	PrayerText  model.NullableString `json:"prayerText" binding:"omitempty,max=5000"`
}

// prayers

type PrayerRequest struct {
	Text string `json:"text" binding:"required,min=1,max=10000"`
}

type UpdatePrayerRequest struct {
	Text *string `json:"text" binding:"omitempty,min=1,max=10000"`
}
