package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"travel-booking/internal/api"
	"travel-booking/internal/currency"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/usecase"
	"travel-booking/internal/wire"
)

// idArg parses the single positional identifier every booking command
// takes.
func idArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, api.NewValidationError("missing %s", what)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, api.NewValidationError("invalid %s: %s", what, args[0])
	}
	return id, nil
}

func displayCode(app *wire.App) currency.Code {
	return currency.Code(app.Store.Currency())
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runPackages(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("packages", flag.ContinueOnError)
	query := fs.String("query", "", "free-text search over title and location")
	from := fs.String("from", "", "earliest start date (YYYY-MM-DD)")
	to := fs.String("to", "", "latest end date (YYYY-MM-DD)")
	themes := fs.String("themes", "", "comma-separated theme keywords")
	durations := fs.String("durations", "", `comma-separated duration buckets: "0-3 hours", "3-5 hours", "Multi-day"`)
	wishlistOnly := fs.Bool("wishlist", false, "only wishlisted packages")
	if err := fs.Parse(args); err != nil {
		return err
	}

	packages, err := app.Service.Catalog.LoadPackages(ctx)
	if err != nil {
		return err
	}

	criteria := &usecase.CatalogCriteria{
		Query:        *query,
		DateFrom:     *from,
		DateTo:       *to,
		Themes:       splitList(*themes),
		WishlistOnly: *wishlistOnly,
	}
	for _, d := range splitList(*durations) {
		criteria.Durations = append(criteria.Durations, usecase.DurationBucket(d))
	}

	filtered := app.Service.Catalog.Filter(packages, criteria)
	if len(filtered) == 0 {
		fmt.Println("No packages found")
		return nil
	}

	code := displayCode(app)
	for _, pkg := range filtered {
		marker := " "
		if app.Store.InWishlist(pkg.ID) {
			marker = "*"
		}
		fmt.Printf("%s #%-4d %-40s %-20s %s  %s - %s  (%d slots)\n",
			marker, pkg.ID, pkg.Title, pkg.Location,
			currency.FormatFromCanonical(pkg.PriceAmount(), code),
			pkg.StartDate, pkg.EndDate, pkg.Slots,
		)
	}
	return nil
}

func runPackage(ctx context.Context, app *wire.App, args []string) error {
	id, err := idArg(args, "package id")
	if err != nil {
		return err
	}

	session, err := app.Service.Booking.Detail(ctx, id)
	if err != nil {
		return err
	}
	pkg := &session.Package

	code := displayCode(app)
	fmt.Printf("#%d %s\n", pkg.ID, pkg.Title)
	if by := pkg.AgencyName; by != "" {
		fmt.Printf("by %s\n", by)
	} else if pkg.OwnerUsername != "" {
		fmt.Printf("by %s\n", pkg.OwnerUsername)
	}
	fmt.Printf("Location:  %s\n", pkg.Location)
	fmt.Printf("Dates:     %s - %s\n", pkg.StartDate, pkg.EndDate)
	fmt.Printf("Price:     %s per person\n", currency.FormatFromCanonical(pkg.PriceAmount(), code))
	fmt.Printf("Slots:     %d\n", pkg.Slots)
	if pkg.DurationDetail != "" {
		fmt.Printf("Duration:  %s\n", pkg.DurationDetail)
	}
	if pkg.GroupSize != "" {
		fmt.Printf("Group:     %s\n", pkg.GroupSize)
	}
	if pkg.Languages != "" {
		fmt.Printf("Languages: %s\n", pkg.Languages)
	}
	if pkg.MeetingPoint != "" {
		fmt.Printf("Meet at:   %s\n", pkg.MeetingPoint)
	}
	if app.Store.InWishlist(pkg.ID) {
		fmt.Println("In your wishlist")
	}
	fmt.Printf("\n%s\n", pkg.Description)
	return nil
}

func runWishlist(ctx context.Context, app *wire.App, args []string) error {
	if len(args) == 0 {
		ids := app.Store.Wishlist()
		if len(ids) == 0 {
			fmt.Println("Wishlist is empty")
			return nil
		}
		for _, id := range ids {
			fmt.Printf("#%d\n", id)
		}
		return nil
	}

	id, err := idArg(args, "package id")
	if err != nil {
		return err
	}

	added, err := app.Store.ToggleWishlist(id)
	if err != nil {
		return err
	}
	if added {
		fmt.Printf("Added #%d to wishlist\n", id)
	} else {
		fmt.Printf("Removed #%d from wishlist\n", id)
	}
	return nil
}

func runBook(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	people := fs.Int("people", 1, "party size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs.Args(), "package id")
	if err != nil {
		return err
	}

	session, err := app.Service.Booking.Detail(ctx, id)
	if err != nil {
		return err
	}

	bookingID, err := app.Service.Booking.Submit(ctx, session, *people)
	if err != nil {
		return err
	}

	fmt.Printf("Booking #%d created (%d slots left)\n", bookingID, session.Package.Slots)
	fmt.Printf("Next: travel-booking confirm %d\n", bookingID)
	return nil
}

func runConfirm(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("confirm", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	passport := fs.String("passport", "", "passport or ID number")
	gender := fs.String("gender", "", "male, female, other or prefer_not_to_say")
	nationality := fs.String("nationality", "", "nationality")
	dob := fs.String("dob", "", "date of birth (YYYY-MM-DD)")
	agencyRef := fs.String("agency-ref", "", "agency referral number (optional)")
	note := fs.String("note", "", "additional notes (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bookingID, err := idArg(fs.Args(), "booking id")
	if err != nil {
		return err
	}

	// Prefill from the profile, then let flags override field by field.
	form := app.Service.Booking.PrefillTraveler(ctx)
	override := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	override(&form.FullName, *name)
	override(&form.Email, *email)
	override(&form.Phone, *phone)
	override(&form.Passport, *passport)
	override(&form.Gender, *gender)
	override(&form.Nationality, *nationality)
	override(&form.DateOfBirth, *dob)
	override(&form.AgencyRef, *agencyRef)
	override(&form.Note, *note)

	if err := app.Service.Booking.ConfirmTraveler(ctx, bookingID, form); err != nil {
		return err
	}

	fmt.Printf("Traveler details saved for booking #%d\n", bookingID)
	fmt.Printf("Next: travel-booking pay %d\n", bookingID)
	return nil
}

func runPay(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ContinueOnError)
	method := fs.String("method", string(usecase.MethodQR), "payment method: qr or slip")
	slip := fs.String("slip", "", "path to the transfer slip image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bookingID, err := idArg(fs.Args(), "booking id")
	if err != nil {
		return err
	}

	summary, err := app.Service.Payment.Summary(ctx, bookingID)
	if err != nil {
		return err
	}

	fmt.Printf("Booking #%d  %s\n", summary.Booking.ID, summary.Booking.Package.Title)
	fmt.Printf("Travel date: %s\n", summary.Booking.TravelDate)
	fmt.Printf("Guests:      %d\n", summary.Booking.NumberOfPeople)
	fmt.Printf("Total:       %s\n\n", summary.DisplayTotal)

	switch usecase.PaymentMethod(*method) {
	case usecase.MethodQR:
		fmt.Println(app.Service.Payment.QRInstructions())
		fmt.Printf("After paying: travel-booking pay %d -method slip -slip <file>\n", bookingID)
		return nil
	case usecase.MethodSlip:
		if *slip == "" {
			return api.NewValidationError("please attach a payment slip with -slip")
		}
		if err := app.Service.Payment.UploadSlip(ctx, bookingID, *slip); err != nil {
			return err
		}
		fmt.Println("Slip uploaded. The agency will verify your payment shortly.")
		fmt.Println("Track the status with: travel-booking my")
		return nil
	default:
		return api.NewValidationError("unknown payment method %q", *method)
	}
}

func printBookings(bookings []response.Booking, app *wire.App) {
	code := displayCode(app)
	for _, b := range bookings {
		fmt.Printf("#%-4d %-40s %s  %d guests  %s  [%s]\n",
			b.ID, b.Package.Title, b.TravelDate, b.NumberOfPeople,
			currency.FormatFromCanonical(b.Total(), code), b.Status,
		)
	}
}

func runMy(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("my", flag.ContinueOnError)
	status := fs.String("status", "", "filter: pending, confirmed or canceled")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bookings, err := app.Service.Bookings.Mine(ctx)
	if err != nil {
		return err
	}

	if *status != "" {
		bookings = app.Service.Bookings.FilterByStatus(bookings, *status)
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings found")
		return nil
	}

	printBookings(bookings, app)
	return nil
}

func runWatch(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("Watching your bookings, Ctrl-C to stop")

	app.Service.Bookings.Watch(ctx, func(bookings []response.Booking) {
		fmt.Println("---")
		if len(bookings) == 0 {
			fmt.Println("No bookings yet")
			return
		}
		printBookings(bookings, app)
	})

	return nil
}

func runReceipt(ctx context.Context, app *wire.App, args []string) error {
	bookingID, err := idArg(args, "booking id")
	if err != nil {
		return err
	}

	path, err := app.Service.Bookings.DownloadReceipt(ctx, bookingID)
	if err != nil {
		return err
	}

	fmt.Printf("Receipt saved to %s\n", path)
	return nil
}
