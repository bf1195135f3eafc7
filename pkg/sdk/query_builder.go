package cardex

import "context"

// CarQueryBuilder is a fluent builder for catalog listings.
//
//	page, err := client.Cars().Query().
//	    Brand("porsche").
//	    Fuel(cardex.FuelPetrol).
//	    PriceMax(250000).
//	    Limit(20).
//	    Do(ctx)
type CarQueryBuilder struct {
	svc *CarService
	q   CarQuery
}

// Search sets the free-text search over car and brand names.
func (b *CarQueryBuilder) Search(text string) *CarQueryBuilder {
	b.q.Search = text
	return b
}

// Brand restricts the listing to one brand slug.
func (b *CarQueryBuilder) Brand(slug string) *CarQueryBuilder {
	b.q.Brand = slug
	return b
}

// Fuel restricts the listing to cars running on the given fuel.
func (b *CarQueryBuilder) Fuel(f FuelType) *CarQueryBuilder {
	b.q.Fuel = f
	return b
}

// Year restricts the listing to one model year.
func (b *CarQueryBuilder) Year(y int) *CarQueryBuilder {
	b.q.Year = &y
	return b
}

// PriceMin keeps only cars whose price range reaches the given floor.
func (b *CarQueryBuilder) PriceMin(n int) *CarQueryBuilder {
	b.q.PriceMin = &n
	return b
}

// PriceMax keeps only cars whose price range stays under the given cap.
func (b *CarQueryBuilder) PriceMax(n int) *CarQueryBuilder {
	b.q.PriceMax = &n
	return b
}

// Cursor resumes the listing from an earlier page's NextCursor.
func (b *CarQueryBuilder) Cursor(cursor string) *CarQueryBuilder {
	b.q.Cursor = cursor
	return b
}

// Limit caps the page size.
func (b *CarQueryBuilder) Limit(n int) *CarQueryBuilder {
	b.q.Limit = n
	return b
}

// Do executes the query and returns one catalog page.
func (b *CarQueryBuilder) Do(ctx context.Context) (CarPage, error) {
	return b.svc.List(ctx, b.q)
}
