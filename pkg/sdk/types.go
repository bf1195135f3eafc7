package cardex

import "time"

// FuelType is a single-letter fuel code.
type FuelType string

// Fuel type constants.
const (
	FuelPetrol   FuelType = "P"
	FuelDiesel   FuelType = "D"
	FuelElectric FuelType = "E"
	FuelHydrogen FuelType = "H"
	FuelCNG      FuelType = "C"
	FuelHybrid   FuelType = "X"
)

// EngineLayout is a single-letter cylinder layout code.
type EngineLayout string

// Engine layout constants.
const (
	LayoutInline EngineLayout = "I"
	LayoutV      EngineLayout = "V"
	LayoutFlat   EngineLayout = "F"
	LayoutW      EngineLayout = "W"
	LayoutRotary EngineLayout = "R"
)

// EngineAspiration is a single-letter aspiration code.
type EngineAspiration string

// Engine aspiration constants.
const (
	AspirationTurbo        EngineAspiration = "T"
	AspirationSupercharged EngineAspiration = "S"
	AspirationTwinTurbo    EngineAspiration = "W"
	AspirationQuadTurbo    EngineAspiration = "Q"
	AspirationNatural      EngineAspiration = "N"
)

// TagCategory groups derived tags by what they describe.
type TagCategory string

// Tag category constants.
const (
	TagBrand        TagCategory = "brand"
	TagFuelType     TagCategory = "fuel_type"
	TagEngine       TagCategory = "engine"
	TagSeats        TagCategory = "seats"
	TagPriceRange   TagCategory = "price_range"
	TagDisplacement TagCategory = "displacement"
	TagPerformance  TagCategory = "performance_metrics"
)

// Car is one catalog entry.
type Car struct {
	Name        string
	Slug        string
	Brand       string
	BrandSlug   string
	Year        int
	Seats       string
	PriceMin    *int
	PriceMax    *int
	FuelTypes   []FuelType
	Performance *Performance // nil when nothing was measured
	Tags        []Tag        // populated by Get, empty on listings
	CreatedAt   int64
	UpdatedAt   int64
}

// Performance holds the measured performance figures.
// Nil fields are unmeasured.
type Performance struct {
	TopSpeedKMH     *int
	AccelMinSeconds *float64
	AccelMaxSeconds *float64
}

// CarInput carries the fields to create a car. The slug is derived from
// the brand and name; the brand record is ensured on the fly.
type CarInput struct {
	Brand       string
	Name        string
	Year        int
	Seats       string
	PriceMin    *int
	PriceMax    *int
	FuelTypes   []FuelType
	Performance *Performance
}

// CarUpdate carries the replacement fields for a full update.
// Brand and slug are identity and cannot change.
type CarUpdate struct {
	Name        string
	Year        int
	Seats       string
	PriceMin    *int
	PriceMax    *int
	FuelTypes   []FuelType
	Performance *Performance
}

// CarQuery filters and pages a catalog listing. Zero-value fields are
// ignored; a zero Limit falls back to the client default.
type CarQuery struct {
	Search   string
	Fuel     FuelType
	Brand    string // brand slug
	Year     *int
	PriceMin *int
	PriceMax *int
	Cursor   string
	Limit    int
}

// CarPage is one page of the catalog plus the filtered total.
type CarPage struct {
	Cars       []Car
	NextCursor string
	Total      int
	HasMore    bool
}

// Engine is one engine option of a car.
type Engine struct {
	ID            int
	CarSlug       string
	Layout        *EngineLayout
	CylinderCount *int
	Aspiration    *EngineAspiration
	CapacityCC    *int
	BatteryKWH    *float64
	Horsepower    *int
	Torque        *int
	Description   string
	CreatedAt     int64
	UpdatedAt     int64
}

// EngineSpec carries the engine fields for create and update. Every field
// is optional; an all-nil spec is a legal placeholder engine.
type EngineSpec struct {
	Layout        *EngineLayout
	CylinderCount *int
	Aspiration    *EngineAspiration
	CapacityCC    *int
	BatteryKWH    *float64
	Horsepower    *int
	Torque        *int
}

// Brand is a car manufacturer known to the catalog.
type Brand struct {
	Name      string
	Slug      string
	CreatedAt int64
}

// Tag is one derived catalog tag.
type Tag struct {
	Category  TagCategory
	Value     string
	CreatedAt int64
}

// TagCount pairs a tag with the number of cars carrying it.
type TagCount struct {
	Category TagCategory
	Value    string
	Cars     int
}

// EngineCount pairs an engine description with its usage count.
type EngineCount struct {
	Description string
	Count       int
}

// Statistics aggregates a brand's catalog figures. Averages are nil when
// no car carries the underlying data.
type Statistics struct {
	CarCount            int
	AveragePrice        *float64
	AverageTopSpeed     *float64
	AverageAcceleration *float64
	PopularEngines      []EngineCount
	PopularTags         []TagCount
}

// Recommendation is one similar-car suggestion with its score in [0, 1].
type Recommendation struct {
	Car   Car
	Score float64
}

// Weights tune the recommendation score components. All four must be
// non-negative and sum to 1.
type Weights struct {
	Price       float64
	Performance float64
	Brand       float64
	Tags        float64
}

// ImportOptions tune one catalog load.
type ImportOptions struct {
	Reset         bool // wipe the catalog and rebuild indexes first
	DryRun        bool // parse and count only, no writes
	ProgressEvery int  // progress log cadence in rows, 0 disables
}

// ImportReport summarizes one catalog load.
type ImportReport struct {
	RunID      string
	Rows       int // data rows seen
	Created    int // cars stored (or buildable, on a dry run)
	Engines    int // engine rows stored
	Duplicates int // rows skipped because the car was already loaded
	Skipped    int // rows without a car or brand name
	Failed     int // rows that failed to convert or store
	Elapsed    time.Duration
}
