package usecase

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking/internal/dto/response"
	"travel-booking/internal/store"
)

func newCatalog(t *testing.T) (CatalogService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	client := newTestBackend(t, st, http.NotFoundHandler())
	return NewCatalogService(client, st, zap.NewNop()), st
}

func samplePackages() []response.TourPackage {
	return []response.TourPackage{
		{ID: 1, Title: "Phi Phi Island Hopping", Location: "Krabi", StartDate: "2026-09-10", EndDate: "2026-09-10", DurationDetail: "4 hours", Price: "1500.00", Slots: 8},
		{ID: 2, Title: "Chiang Mai Trek", Location: "Chiang Mai", StartDate: "2026-10-01", EndDate: "2026-10-03", DurationDetail: "2 days", Price: "4200.00", Slots: 4},
		{ID: 3, Title: "Bangkok Hidden Gem Food Walk", Location: "Bangkok", StartDate: "2026-09-20", EndDate: "2026-09-20", DurationDetail: "2.5 hours", Price: "800.00", Slots: 12},
	}
}

func TestFilterWithoutCriteriaReturnsInputUnchanged(t *testing.T) {
	svc, _ := newCatalog(t)
	packages := samplePackages()

	assert.Equal(t, packages, svc.Filter(packages, nil))
	assert.Equal(t, packages, svc.Filter(packages, &CatalogCriteria{}))
}

func TestFilterPreservesOrder(t *testing.T) {
	svc, _ := newCatalog(t)

	filtered := svc.Filter(samplePackages(), &CatalogCriteria{Query: "a"})

	require.Len(t, filtered, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{filtered[0].ID, filtered[1].ID, filtered[2].ID})
}

func TestFilterByQueryMatchesTitleAndLocation(t *testing.T) {
	svc, _ := newCatalog(t)
	packages := samplePackages()

	byTitle := svc.Filter(packages, &CatalogCriteria{Query: "phi phi"})
	require.Len(t, byTitle, 1)
	assert.Equal(t, 1, byTitle[0].ID)

	byLocation := svc.Filter(packages, &CatalogCriteria{Query: "krabi"})
	require.Len(t, byLocation, 1)
	assert.Equal(t, 1, byLocation[0].ID)

	assert.Empty(t, svc.Filter(packages, &CatalogCriteria{Query: "iceland"}))
}

func TestFilterByDateRange(t *testing.T) {
	svc, _ := newCatalog(t)
	packages := samplePackages()

	september := svc.Filter(packages, &CatalogCriteria{DateFrom: "2026-09-01", DateTo: "2026-09-30"})
	require.Len(t, september, 2)
	assert.Equal(t, 1, september[0].ID)
	assert.Equal(t, 3, september[1].ID)

	fromOctober := svc.Filter(packages, &CatalogCriteria{DateFrom: "2026-10-01"})
	require.Len(t, fromOctober, 1)
	assert.Equal(t, 2, fromOctober[0].ID)
}

func TestFilterSkipsDateBoundWhenPackageDateMissing(t *testing.T) {
	svc, _ := newCatalog(t)
	packages := []response.TourPackage{{ID: 9, Title: "Anytime Tour"}}

	filtered := svc.Filter(packages, &CatalogCriteria{DateFrom: "2026-01-01", DateTo: "2026-12-31"})
	require.Len(t, filtered, 1)
}

func TestFilterByThemeIsAnyOf(t *testing.T) {
	svc, _ := newCatalog(t)
	packages := samplePackages()

	filtered := svc.Filter(packages, &CatalogCriteria{Themes: []string{"Hidden Gem", "Island"}})

	require.Len(t, filtered, 2)
	assert.Equal(t, 1, filtered[0].ID)
	assert.Equal(t, 3, filtered[1].ID)
}

func TestFilterByDurationBuckets(t *testing.T) {
	svc, _ := newCatalog(t)
	packages := samplePackages()

	tests := []struct {
		name    string
		buckets []DurationBucket
		wantIDs []int
	}{
		{"short", []DurationBucket{DurationShort}, []int{3}},
		{"medium", []DurationBucket{DurationMedium}, []int{1}},
		{"multi-day", []DurationBucket{DurationMultiDay}, []int{2}},
		{"short or multi-day", []DurationBucket{DurationShort, DurationMultiDay}, []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := svc.Filter(packages, &CatalogCriteria{Durations: tt.buckets})
			var ids []int
			for _, pkg := range filtered {
				ids = append(ids, pkg.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterByDurationExcludesUnparsableDurations(t *testing.T) {
	svc, _ := newCatalog(t)
	packages := []response.TourPackage{
		{ID: 1, DurationDetail: "4 hours"},
		{ID: 2, DurationDetail: "depends on the weather"},
		{ID: 3, DurationDetail: ""},
	}

	filtered := svc.Filter(packages, &CatalogCriteria{Durations: []DurationBucket{DurationMedium}})

	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
}

func TestFilterWishlistOnly(t *testing.T) {
	svc, st := newCatalog(t)
	packages := samplePackages()

	_, err := st.ToggleWishlist(2)
	require.NoError(t, err)

	filtered := svc.Filter(packages, &CatalogCriteria{WishlistOnly: true})

	require.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].ID)
}

func TestFilterCombinesCategoriesWithAnd(t *testing.T) {
	svc, _ := newCatalog(t)
	packages := samplePackages()

	// Query matches 1 and 3; the duration bucket keeps only 3.
	filtered := svc.Filter(packages, &CatalogCriteria{
		Query:     "a",
		Durations: []DurationBucket{DurationShort},
	})

	require.Len(t, filtered, 1)
	assert.Equal(t, 3, filtered[0].ID)
}

func TestHoursFromDuration(t *testing.T) {
	tests := []struct {
		detail    string
		wantHours int
		wantOK    bool
	}{
		{"4 hours", 4, true},
		{"2.5 hours", 3, true},
		{"3-5 hours", 4, true},
		{"2 days", 48, true},
		{"1.5 days", 36, true},
		{"Full day (8 hours)", 8, true},
		{"2 Days / 1 Night", 48, true},
		{"depends on the weather", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.detail, func(t *testing.T) {
			hours, ok := HoursFromDuration(tt.detail)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantHours, hours)
			}
		})
	}
}

func TestBucketBoundariesOverlapAtThreeHours(t *testing.T) {
	// A 3 hour trip belongs to both the short and the medium bucket.
	assert.True(t, bucketMatches(DurationShort, 3))
	assert.True(t, bucketMatches(DurationMedium, 3))

	assert.False(t, bucketMatches(DurationShort, 4))
	assert.False(t, bucketMatches(DurationMedium, 6))
	assert.False(t, bucketMatches(DurationMultiDay, 23))
	assert.True(t, bucketMatches(DurationMultiDay, 24))
}
