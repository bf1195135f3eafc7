// Package cardex provides a Go client for the cardex car catalog backed
// by Redis or Valkey with the search module.
//
// The client wires the full catalog stack over one database connection:
// cars, engines, brands, derived tags, brand statistics, similar-car
// recommendations and bulk imports.
//
//	client, _ := cardex.New(ctx, cardex.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	created, _ := client.Cars().Create(ctx, cardex.CarInput{
//	    Brand:     "Porsche",
//	    Name:      "911 Turbo S",
//	    Year:      2022,
//	    Seats:     "2+2",
//	    FuelTypes: []cardex.FuelType{cardex.FuelPetrol},
//	})
//
// Listings page by cursor and filter by brand, fuel, year and price:
//
//	page, _ := client.Cars().Query().
//	    Brand("porsche").
//	    Fuel(cardex.FuelPetrol).
//	    PriceMax(250000).
//	    Limit(20).
//	    Do(ctx)
//
// Every car carries derived tags; the recommendation service scores
// candidates on price, performance, brand and tag overlap:
//
//	similar, _ := client.Recommendations().ForCar(ctx, created.Slug, cardex.RecommendQuery{})
package cardex
