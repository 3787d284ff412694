package usecase

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/store"
)

// DurationBucket is one of the catalog's duration filter options.
type DurationBucket string

const (
	DurationShort    DurationBucket = "0-3 hours"
	DurationMedium   DurationBucket = "3-5 hours"
	DurationMultiDay DurationBucket = "Multi-day"
)

// ThemeOptions are the theme keywords offered by the catalog filter. A
// theme matches by substring against title+location.
var ThemeOptions = []string{"Water activities", "Adrenaline", "Nature", "Hidden Gem"}

// CatalogCriteria composes by AND across categories and OR within the
// multi-select ones (themes, durations).
type CatalogCriteria struct {
	Query        string
	DateFrom     string // YYYY-MM-DD, inclusive lower bound on start_date
	DateTo       string // YYYY-MM-DD, inclusive upper bound on end_date
	Themes       []string
	Durations    []DurationBucket
	WishlistOnly bool
}

// Empty reports whether no filter is active.
func (c *CatalogCriteria) Empty() bool {
	return c.Query == "" && c.DateFrom == "" && c.DateTo == "" &&
		len(c.Themes) == 0 && len(c.Durations) == 0 && !c.WishlistOnly
}

type CatalogService interface {
	LoadPackages(ctx context.Context) ([]response.TourPackage, error)
	Filter(packages []response.TourPackage, criteria *CatalogCriteria) []response.TourPackage
}

type catalogService struct {
	api   *api.Client
	store *store.Store
	log   *zap.Logger
}

func NewCatalogService(client *api.Client, st *store.Store, log *zap.Logger) CatalogService {
	return &catalogService{
		api:   client,
		store: st,
		log:   log.With(zap.String("service", "catalog")),
	}
}

// LoadPackages fetches the full catalog; the backend does not paginate.
func (s *catalogService) LoadPackages(ctx context.Context) ([]response.TourPackage, error) {
	packages, err := s.api.ListPackages(ctx)
	if err != nil {
		s.log.Warn("Failed to load packages", zap.Error(err))
		return nil, err
	}
	return packages, nil
}

// Filter applies the criteria preserving input order. With no active
// criteria the input comes back unchanged.
func (s *catalogService) Filter(packages []response.TourPackage, criteria *CatalogCriteria) []response.TourPackage {
	if criteria == nil || criteria.Empty() {
		return packages
	}

	filtered := make([]response.TourPackage, 0, len(packages))
	for _, pkg := range packages {
		if s.matches(&pkg, criteria) {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}

func (s *catalogService) matches(pkg *response.TourPackage, criteria *CatalogCriteria) bool {
	haystack := strings.ToLower(pkg.Title + " " + pkg.Location)

	if criteria.Query != "" && !strings.Contains(haystack, strings.ToLower(criteria.Query)) {
		return false
	}

	// ISO dates compare lexicographically; only bound when both the filter
	// side and the package side are set.
	if criteria.DateFrom != "" && pkg.StartDate != "" && pkg.StartDate < criteria.DateFrom {
		return false
	}
	if criteria.DateTo != "" && pkg.EndDate != "" && pkg.EndDate > criteria.DateTo {
		return false
	}

	if len(criteria.Themes) > 0 {
		found := false
		for _, theme := range criteria.Themes {
			if strings.Contains(haystack, strings.ToLower(theme)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(criteria.Durations) > 0 {
		hours, known := HoursFromDuration(pkg.DurationDetail)
		if !known {
			return false
		}
		found := false
		for _, bucket := range criteria.Durations {
			if bucketMatches(bucket, hours) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if criteria.WishlistOnly && !s.store.InWishlist(pkg.ID) {
		return false
	}

	return true
}

func bucketMatches(bucket DurationBucket, hours int) bool {
	switch bucket {
	case DurationShort:
		return hours >= 0 && hours <= 3
	case DurationMedium:
		return hours >= 3 && hours <= 5
	case DurationMultiDay:
		return hours >= 24
	default:
		return false
	}
}

var (
	dayPattern       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*day`)
	hourRangePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*hour`)
	hourPattern      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*hour`)
)

// HoursFromDuration estimates an hour count from a free-text duration
// description: "<N> day" counts N*24, "<A>-<B> hour" averages the range,
// "<N> hour" is taken as-is. Unparsable text reports !ok and matches no
// duration filter.
func HoursFromDuration(detail string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(detail))
	if s == "" {
		return 0, false
	}

	if m := dayPattern.FindStringSubmatch(s); m != nil {
		days, _ := strconv.ParseFloat(m[1], 64)
		return int(math.Round(days * 24)), true
	}
	if m := hourRangePattern.FindStringSubmatch(s); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		return int(math.Round((lo + hi) / 2)), true
	}
	if m := hourPattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		return int(math.Round(hours)), true
	}

	return 0, false
}
