package car

// Filter narrows a car listing. Zero values mean no constraint.
// PriceMin and PriceMax bound the car's own price range: PriceMin requires
// the car's lower bound to be at least the given value, PriceMax caps the
// car's upper bound (a buyer's budget window).
type Filter struct {
	// Search is free text matched against car and brand names.
	Search string
	// FuelCode restricts to cars running on the given fuel type code.
	FuelCode string
	// BrandSlug restricts to one brand.
	BrandSlug string
	Year      *int
	PriceMin  *int
	PriceMax  *int
}
