package cardex

import (
	"context"
	"io"

	dombrand "github.com/kailas-cloud/cardex/internal/domain/brand"
	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
	"github.com/kailas-cloud/cardex/internal/domain/fuel"
	domtag "github.com/kailas-cloud/cardex/internal/domain/tag"
	caruc "github.com/kailas-cloud/cardex/internal/usecase/car"
	engineuc "github.com/kailas-cloud/cardex/internal/usecase/engine"
	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/cardex/internal/usecase/ingest"
	recommenduc "github.com/kailas-cloud/cardex/internal/usecase/recommend"
	statsuc "github.com/kailas-cloud/cardex/internal/usecase/stats"
	tagginguc "github.com/kailas-cloud/cardex/internal/usecase/tagging"
)

// --- carUseCase mock ---

type mockCarUC struct {
	createFn func(ctx context.Context, in caruc.CreateInput) (domcar.Car, error)
	getFn    func(ctx context.Context, carSlug string) (domcar.Car, error)
	listFn   func(ctx context.Context, q caruc.ListQuery) (caruc.ListResult, error)
	updateFn func(ctx context.Context, carSlug string, in caruc.UpdateInput) (domcar.Car, error)
	deleteFn func(ctx context.Context, carSlug string) error
}

func (m *mockCarUC) Create(ctx context.Context, in caruc.CreateInput) (domcar.Car, error) {
	return m.createFn(ctx, in)
}

func (m *mockCarUC) Get(ctx context.Context, carSlug string) (domcar.Car, error) {
	return m.getFn(ctx, carSlug)
}

func (m *mockCarUC) List(ctx context.Context, q caruc.ListQuery) (caruc.ListResult, error) {
	return m.listFn(ctx, q)
}

func (m *mockCarUC) Update(ctx context.Context, carSlug string, in caruc.UpdateInput) (domcar.Car, error) {
	return m.updateFn(ctx, carSlug, in)
}

func (m *mockCarUC) Delete(ctx context.Context, carSlug string) error {
	return m.deleteFn(ctx, carSlug)
}

// --- engineUseCase mock ---

type mockEngineUC struct {
	listFn   func(ctx context.Context, carSlug string) ([]domeng.Engine, error)
	getFn    func(ctx context.Context, carSlug string, id int) (domeng.Engine, error)
	createFn func(ctx context.Context, carSlug string, in engineuc.Input) (domeng.Engine, error)
	updateFn func(ctx context.Context, carSlug string, id int, in engineuc.Input) (domeng.Engine, error)
	deleteFn func(ctx context.Context, carSlug string, id int) error
}

func (m *mockEngineUC) List(ctx context.Context, carSlug string) ([]domeng.Engine, error) {
	return m.listFn(ctx, carSlug)
}

func (m *mockEngineUC) Get(ctx context.Context, carSlug string, id int) (domeng.Engine, error) {
	return m.getFn(ctx, carSlug, id)
}

func (m *mockEngineUC) Create(ctx context.Context, carSlug string, in engineuc.Input) (domeng.Engine, error) {
	return m.createFn(ctx, carSlug, in)
}

func (m *mockEngineUC) Update(ctx context.Context, carSlug string, id int, in engineuc.Input) (domeng.Engine, error) {
	return m.updateFn(ctx, carSlug, id, in)
}

func (m *mockEngineUC) Delete(ctx context.Context, carSlug string, id int) error {
	return m.deleteFn(ctx, carSlug, id)
}

// --- brandUseCase mock ---

type mockBrandUC struct {
	getFn   func(ctx context.Context, brandSlug string) (dombrand.Brand, error)
	listFn  func(ctx context.Context) ([]dombrand.Brand, error)
	countFn func(ctx context.Context) (int, error)
}

func (m *mockBrandUC) Get(ctx context.Context, brandSlug string) (dombrand.Brand, error) {
	return m.getFn(ctx, brandSlug)
}

func (m *mockBrandUC) List(ctx context.Context) ([]dombrand.Brand, error) {
	return m.listFn(ctx)
}

func (m *mockBrandUC) Count(ctx context.Context) (int, error) {
	return m.countFn(ctx)
}

// --- tagUseCase mock ---

type mockTagUC struct {
	tagsFn func(ctx context.Context, carSlug string) ([]domtag.Tag, error)
	listFn func(ctx context.Context, category string) ([]tagginguc.TagCount, error)
}

func (m *mockTagUC) Tags(ctx context.Context, carSlug string) ([]domtag.Tag, error) {
	return m.tagsFn(ctx, carSlug)
}

func (m *mockTagUC) List(ctx context.Context, category string) ([]tagginguc.TagCount, error) {
	return m.listFn(ctx, category)
}

// --- statsUseCase mock ---

type mockStatsUC struct {
	computeFn func(ctx context.Context, brandSlug string) (statsuc.Statistics, error)
}

func (m *mockStatsUC) Compute(ctx context.Context, brandSlug string) (statsuc.Statistics, error) {
	return m.computeFn(ctx, brandSlug)
}

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	recommendFn func(ctx context.Context, carSlug string, q recommenduc.Query) ([]recommenduc.Scored, error)
}

func (m *mockRecommendUC) Recommend(
	ctx context.Context, carSlug string, q recommenduc.Query,
) ([]recommenduc.Scored, error) {
	return m.recommendFn(ctx, carSlug, q)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// --- importUseCase mock ---

type mockImportUC struct {
	runFn func(ctx context.Context, r io.Reader, opts ingestuc.Options) (ingestuc.Report, error)
}

func (m *mockImportUC) Run(ctx context.Context, r io.Reader, opts ingestuc.Options) (ingestuc.Report, error) {
	return m.runFn(ctx, r, opts)
}

// --- fixtures ---

func testDomainCar(name, carSlug, brandName, brandSlug string) domcar.Car {
	price := 230000
	perf := domcar.ReconstructPerformance(intPtr(330), floatPtr(2.7), nil)
	return domcar.Reconstruct(
		name, carSlug, brandName, brandSlug, 2022, "2+2",
		&price, nil, []fuel.Type{fuel.TypePetrol}, &perf,
		1700000000000, 1700000000000,
	)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
