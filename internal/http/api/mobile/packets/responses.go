package packets

import (
	"time"

	"github.com/MahmoudAkram21/um-qura-back/internal/calendar"
	"github.com/MahmoudAkram21/um-qura-back/internal/hijri"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

// returned for a single star (detail, current star, list rows)
type StarResponse struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	SeasonID         int      `json:"seasonId"`
	SeasonName       string   `json:"season_name"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	DateRange        string   `json:"date_range"`
	Description      *string  `json:"description"`
	WeatherInfo      *string  `json:"weather_info"`
	AgriculturalInfo []string `json:"agricultural_info"`
	Tips             []string `json:"tips"`
}

func NewStarResponse(st model.Star) StarResponse {
	return StarResponse{
		ID:               st.ID,
		Name:             st.Name,
		SeasonID:         st.SeasonID,
		SeasonName:       st.SeasonName,
		StartDate:        calendar.FormatDate(st.StartDate),
		EndDate:          calendar.FormatDate(st.EndDate),
		DateRange:        calendar.FormatDateRange(st.StartDate, st.EndDate),
		Description:      st.Description,
		WeatherInfo:      st.WeatherInfo,
		AgriculturalInfo: orEmpty(st.AgriculturalInfo),
		Tips:             orEmpty(st.Tips),
	}
}

type StarListResponse struct {
	Stars      []StarResponse `json:"stars"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// one star inside a calendar season
type CalendarStar struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	DateRange        string   `json:"date_range"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Description      *string  `json:"description"`
	AgriculturalInfo []string `json:"agricultural_info"`
	WeatherInfo      *string  `json:"weather_info"`
	Tips             []string `json:"tips"`
}

type CalendarSeason struct {
	ID         int            `json:"id"`
	SeasonName string         `json:"season_name"`
	Duration   string         `json:"duration"`
	ColorHex   string         `json:"color_hex"`
	IconName   string         `json:"icon_name"`
	Stars      []CalendarStar `json:"stars"`
}

func NewCalendar(rows []model.SeasonWithStars) []CalendarSeason {
	out := make([]CalendarSeason, 0, len(rows))
	for _, row := range rows {
		season := CalendarSeason{
			ID:         row.ID,
			SeasonName: row.Name,
			Duration:   row.Duration,
			ColorHex:   row.ColorHex,
			IconName:   row.IconName,
			Stars:      make([]CalendarStar, 0, len(row.Stars)),
		}
		for _, st := range row.Stars {
			season.Stars = append(season.Stars, CalendarStar{
				ID:               st.ID,
				Name:             st.Name,
				DateRange:        calendar.FormatDateRange(st.StartDate, st.EndDate),
				StartDate:        calendar.FormatDate(st.StartDate),
				EndDate:          calendar.FormatDate(st.EndDate),
				Description:      st.Description,
				AgriculturalInfo: orEmpty(st.AgriculturalInfo),
				WeatherInfo:      st.WeatherInfo,
				Tips:             orEmpty(st.Tips),
			})
		}
		out = append(out, season)
	}
	return out
}

type OccasionResponse struct {
	ID           int     `json:"id"`
	HijriMonth   int     `json:"hijri_month"`
	HijriDay     int     `json:"hijri_day"`
	Title        string  `json:"title"`
	PrayerTitle  string  `json:"prayer_title"`
	PrayerText   *string `json:"prayer_text"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	HijriDisplay string  `json:"hijri_display"`
}

func NewOccasionResponse(a hijri.Annotated) OccasionResponse {
	return OccasionResponse{
		ID:           a.ID,
		HijriMonth:   a.HijriMonth,
		HijriDay:     a.HijriDay,
		Title:        a.Title,
		PrayerTitle:  a.PrayerTitle,
		PrayerText:   a.PrayerText,
		CreatedAt:    Timestamp(a.CreatedAt),
		UpdatedAt:    Timestamp(a.UpdatedAt),
		HijriDisplay: a.Display,
	}
}

func NewOccasionResponses(list []hijri.Annotated) []OccasionResponse {
	out := make([]OccasionResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewOccasionResponse(a))
	}
	return out
}

// sections for the public occasions screen
type OccasionSections struct {
	Hijri        hijri.Date         `json:"hijri"`
	Today        []OccasionResponse `json:"today"`
	CurrentMonth []OccasionResponse `json:"currentMonth"`
	NextMonth    []OccasionResponse `json:"nextMonth"`
	Year         []OccasionResponse `json:"year"`
}

func NewOccasionSections(today hijri.Date, b hijri.Buckets) OccasionSections {
	return OccasionSections{
		Hijri:        today,
		Today:        NewOccasionResponses(b.Today),
		CurrentMonth: NewOccasionResponses(b.CurrentMonth),
		NextMonth:    NewOccasionResponses(b.NextMonth),
		Year:         NewOccasionResponses(b.Year),
	}
}

type RandomPrayerResponse struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

// Timestamp renders created_at/updated_at values.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
