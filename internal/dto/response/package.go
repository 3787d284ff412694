package response

import "strconv"

type PackageImage struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

// TourPackage is the backend's package representation. Price is a decimal
// string in the canonical currency (THB).
type TourPackage struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Image       string `json:"image"`
	Slots       int    `json:"slots"`

	Images []PackageImage `json:"images,omitempty"`

	Activities     string `json:"activities,omitempty"`
	Includes       string `json:"includes,omitempty"`
	Excludes       string `json:"excludes,omitempty"`
	DurationDetail string `json:"duration_detail,omitempty"`
	GroupSize      string `json:"group_size,omitempty"`
	Languages      string `json:"languages,omitempty"`
	MeetingPoint   string `json:"meeting_point,omitempty"`

	AgencyName    string `json:"agency_name,omitempty"`
	OwnerUsername string `json:"owner_username,omitempty"`

	MapImage string `json:"map_image,omitempty"`
	MapURL   string `json:"map_url,omitempty"`
}

// PriceAmount parses the decimal-as-string price. Unparsable prices count
// as zero, matching the original storefront.
func (p *TourPackage) PriceAmount() float64 {
	amount, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return amount
}
