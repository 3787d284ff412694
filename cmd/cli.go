package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/wire"
)

const usage = `Usage: travel-booking <command> [flags]

Catalog
  packages      List packages, with optional filters
  package       Show one package
  wishlist      Toggle or list wishlisted packages

Booking
  book          Book a package
  confirm       Save traveler details for a pending booking
  pay           Pay for a booking (QR instructions or slip upload)
  my            List your bookings
  watch         Follow your bookings until interrupted
  receipt       Download a booking receipt PDF

Account
  login, logout, register, profile, reset-password
  currency      Show or set the display currency

Blog
  blog          List, read or publish blog posts

Run "travel-booking <command> -h" for command flags.`

// Run dispatches a subcommand. Every command converts its errors into a
// user-facing message here; nothing escapes raw.
func Run(ctx context.Context, app *wire.App, logger *zap.Logger, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "packages":
		err = runPackages(ctx, app, rest)
	case "package":
		err = runPackage(ctx, app, rest)
	case "wishlist":
		err = runWishlist(ctx, app, rest)
	case "book":
		err = runBook(ctx, app, rest)
	case "confirm":
		err = runConfirm(ctx, app, rest)
	case "pay":
		err = runPay(ctx, app, rest)
	case "my":
		err = runMy(ctx, app, rest)
	case "watch":
		err = runWatch(ctx, app, rest)
	case "receipt":
		err = runReceipt(ctx, app, rest)
	case "login":
		err = runLogin(ctx, app, rest)
	case "logout":
		err = app.Service.Auth.Logout()
	case "register":
		err = runRegister(ctx, app, rest)
	case "profile":
		err = runProfile(ctx, app, rest)
	case "reset-password":
		err = runResetPassword(ctx, app, rest)
	case "currency":
		err = runCurrency(app, rest)
	case "blog":
		err = runBlog(ctx, app, rest)
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", cmd, usage)
		return 2
	}

	if err != nil {
		logger.Debug("Command failed", zap.String("command", cmd), zap.Error(err))
		fmt.Fprintln(os.Stderr, api.UserMessage(err))
		return 1
	}

	return 0
}
