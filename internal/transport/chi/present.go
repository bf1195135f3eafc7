package chi

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	dombrand "github.com/kailas-cloud/cardex/internal/domain/brand"
	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
	domtag "github.com/kailas-cloud/cardex/internal/domain/tag"
	"github.com/kailas-cloud/cardex/internal/usecase/stats"
	"github.com/kailas-cloud/cardex/internal/usecase/tagging"
)

// pricePrinter groups thousands the way the dataset prints prices
// ("$230,000"). Printers are safe for concurrent use.
var pricePrinter = message.NewPrinter(language.English)

type brandRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type tagResponse struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

type carResponse struct {
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Brand        brandRef      `json:"brand"`
	Year         int           `json:"year"`
	Seats        string        `json:"seats"`
	Price        *string       `json:"price"`
	FuelTypes    []string      `json:"fuel_types"`
	TopSpeed     *string       `json:"top_speed"`
	Acceleration *string       `json:"acceleration"`
	Tags         []tagResponse `json:"tags"`
}

type carDetailResponse struct {
	carResponse
	Engines   []string  `json:"engines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type carListResponse struct {
	Cars       []carResponse `json:"cars"`
	NextCursor *string       `json:"next_cursor"`
	Total      int           `json:"total"`
}

type recommendationResponse struct {
	Recommendations []carResponse `json:"recommendations"`
}

type engineResponse struct {
	ID            int      `json:"id"`
	Layout        *string  `json:"layout"`
	CylinderCount *int     `json:"cylinder_count"`
	Aspiration    *string  `json:"aspiration"`
	CapacityCC    *int     `json:"capacity_cc"`
	BatteryKWH    *float64 `json:"battery_kwh"`
	Horsepower    *int     `json:"horsepower"`
	Torque        *int     `json:"torque"`
	Description   string   `json:"description"`
}

type engineListResponse struct {
	Engines []engineResponse `json:"engines"`
}

type brandResponse struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type brandListResponse struct {
	Brands []brandResponse `json:"brands"`
}

type popularEngineResponse struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type popularTagResponse struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Count    int    `json:"count"`
}

type statisticsResponse struct {
	CarCount            int                     `json:"car_count"`
	AveragePrice        *string                 `json:"average_price"`
	AverageTopSpeed     *string                 `json:"average_top_speed"`
	AverageAcceleration *string                 `json:"average_acceleration"`
	PopularEngines      []popularEngineResponse `json:"popular_engines"`
	PopularTags         []popularTagResponse    `json:"popular_tags"`
}

type brandDetailResponse struct {
	brandResponse
	Statistics statisticsResponse `json:"statistics"`
}

type tagCountResponse struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Cars     int    `json:"cars"`
}

type tagListResponse struct {
	Tags []tagCountResponse `json:"tags"`
}

func carToResponse(c domcar.Car, tags []domtag.Tag) carResponse {
	fuels := make([]string, len(c.FuelTypes()))
	for i, f := range c.FuelTypes() {
		fuels[i] = f.Name()
	}

	var topSpeed, accel *string
	if p := c.Performance(); p != nil {
		topSpeed = topSpeedDisplay(p.TopSpeedKMH())
		accel = accelerationDisplay(p.AccelMinSeconds(), p.AccelMaxSeconds())
	}

	return carResponse{
		Name:         c.Name(),
		Slug:         c.Slug(),
		Brand:        brandRef{Name: c.BrandName(), Slug: c.BrandSlug()},
		Year:         c.Year(),
		Seats:        c.Seats(),
		Price:        priceDisplay(c.PriceMin(), c.PriceMax()),
		FuelTypes:    fuels,
		TopSpeed:     topSpeed,
		Acceleration: accel,
		Tags:         tagsToResponse(tags),
	}
}

func carToDetail(c domcar.Car, tags []domtag.Tag, engines []domeng.Engine) carDetailResponse {
	list := make([]string, len(engines))
	for i, e := range engines {
		list[i] = e.String()
	}
	return carDetailResponse{
		carResponse: carToResponse(c, tags),
		Engines:     list,
		CreatedAt:   time.UnixMilli(c.CreatedAt()).UTC(),
		UpdatedAt:   time.UnixMilli(c.UpdatedAt()).UTC(),
	}
}

func tagsToResponse(tags []domtag.Tag) []tagResponse {
	out := make([]tagResponse, len(tags))
	for i, t := range tags {
		out[i] = tagResponse{Category: t.Category().Name(), Value: t.Value()}
	}
	return out
}

func engineToResponse(e domeng.Engine) engineResponse {
	var layout, aspiration *string
	if e.Layout() != nil {
		s := string(*e.Layout())
		layout = &s
	}
	if e.Aspiration() != nil {
		s := string(*e.Aspiration())
		aspiration = &s
	}
	return engineResponse{
		ID:            e.ID(),
		Layout:        layout,
		CylinderCount: e.CylinderCount(),
		Aspiration:    aspiration,
		CapacityCC:    e.CapacityCC(),
		BatteryKWH:    e.BatteryKWH(),
		Horsepower:    e.Horsepower(),
		Torque:        e.Torque(),
		Description:   e.String(),
	}
}

func brandToResponse(b dombrand.Brand) brandResponse {
	return brandResponse{
		Name:      b.Name(),
		Slug:      b.Slug(),
		CreatedAt: time.UnixMilli(b.CreatedAt()).UTC(),
	}
}

func statisticsToResponse(st stats.Statistics) statisticsResponse {
	engines := make([]popularEngineResponse, len(st.PopularEngines))
	for i, e := range st.PopularEngines {
		engines[i] = popularEngineResponse{Description: e.Description, Count: e.Count}
	}
	tags := make([]popularTagResponse, len(st.PopularTags))
	for i, t := range st.PopularTags {
		tags[i] = popularTagResponse{Category: t.Category.Name(), Value: t.Value, Count: t.Count}
	}
	return statisticsResponse{
		CarCount:            st.CarCount,
		AveragePrice:        statDisplay(st.AveragePrice, "$", ""),
		AverageTopSpeed:     statDisplay(st.AverageTopSpeed, "", " km/h"),
		AverageAcceleration: statDisplay(st.AverageAcceleration, "", " seconds"),
		PopularEngines:      engines,
		PopularTags:         tags,
	}
}

func tagCountsToResponse(counts []tagging.TagCount) []tagCountResponse {
	out := make([]tagCountResponse, len(counts))
	for i, tc := range counts {
		out[i] = tagCountResponse{
			Category: tc.Tag.Category().Name(),
			Value:    tc.Tag.Value(),
			Cars:     tc.Cars,
		}
	}
	return out
}

// priceDisplay renders the price range with grouped thousands: both bounds
// "$50,000-$60,000", a single or collapsed bound "$50,000", none nil.
func priceDisplay(minPrice, maxPrice *int) *string {
	var s string
	switch {
	case minPrice == nil && maxPrice == nil:
		return nil
	case minPrice == nil:
		s = formatPrice(*maxPrice)
	case maxPrice == nil || *minPrice == *maxPrice:
		s = formatPrice(*minPrice)
	default:
		s = formatPrice(*minPrice) + "-" + formatPrice(*maxPrice)
	}
	return &s
}

func formatPrice(v int) string {
	return pricePrinter.Sprintf("$%d", v)
}

func topSpeedDisplay(v *int) *string {
	if v == nil {
		return nil
	}
	s := strconv.Itoa(*v) + " km/h"
	return &s
}

// accelerationDisplay renders 0-100 km/h times at one decimal:
// "2.5-3.5 seconds" when the bounds differ, "3.5 seconds" otherwise.
func accelerationDisplay(minS, maxS *float64) *string {
	var s string
	switch {
	case minS == nil && maxS == nil:
		return nil
	case minS == nil:
		s = formatSeconds(*maxS)
	case maxS == nil || *minS == *maxS:
		s = formatSeconds(*minS)
	default:
		s = strconv.FormatFloat(*minS, 'f', 1, 64) + "-" + formatSeconds(*maxS)
	}
	return &s
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + " seconds"
}

// statDisplay renders an aggregate rounded to two decimals with trailing
// zeros trimmed: "$52500.12", "249.67 km/h", "105000" stays "$105000".
func statDisplay(v *float64, prefix, suffix string) *string {
	if v == nil {
		return nil
	}
	s := prefix + strconv.FormatFloat(math.Round(*v*100)/100, 'f', -1, 64) + suffix
	return &s
}
