package cmd

import (
	"context"
	"flag"
	"fmt"

	"travel-booking/internal/api"
	"travel-booking/internal/currency"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/wire"
)

func runLogin(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	remember := fs.Bool("remember", false, "keep the session via refresh token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, err := app.Service.Auth.Login(ctx, *email, *password, *remember)
	if err != nil {
		return err
	}

	if profile != nil && profile.IsAgency {
		fmt.Printf("Logged in as agency account %s\n", profile.Username)
	} else if profile != nil {
		fmt.Printf("Logged in as %s\n", profile.Username)
	} else {
		fmt.Println("Logged in")
	}
	return nil
}

func runRegister(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "user name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &request.RegisterRequest{Username: *username, Email: *email, Password: *password}
	if err := app.Service.Auth.Register(ctx, req); err != nil {
		return err
	}

	fmt.Println("Registration successful. Please verify your email before logging in.")
	return nil
}

func runProfile(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	passport := fs.String("passport", "", "passport or ID number")
	gender := fs.String("gender", "", "male, female, other or prefer_not_to_say")
	nationality := fs.String("nationality", "", "nationality")
	dob := fs.String("dob", "", "date of birth (YYYY-MM-DD)")
	address := fs.String("address", "", "address")
	avatar := fs.String("avatar", "", "path to a profile picture")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := &request.ProfileUpdateForm{
		Name:        *name,
		Email:       *email,
		Phone:       *phone,
		PassportNo:  *passport,
		Gender:      *gender,
		Nationality: *nationality,
		DateOfBirth: *dob,
		Address:     *address,
	}

	// With no flags this is a plain profile view.
	if len(form.Fields()) == 0 && *avatar == "" {
		profile, err := app.Service.Auth.Profile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Username:    %s\n", profile.Username)
		fmt.Printf("Email:       %s\n", profile.Email)
		if profile.Phone != "" {
			fmt.Printf("Phone:       %s\n", profile.Phone)
		}
		if profile.PassportNo != "" {
			fmt.Printf("Passport:    %s\n", profile.PassportNo)
		}
		if profile.Nationality != "" {
			fmt.Printf("Nationality: %s\n", profile.Nationality)
		}
		if profile.BirthDate != "" {
			fmt.Printf("Born:        %s\n", profile.BirthDate)
		}
		if profile.IsAgency {
			fmt.Println("Agency account")
		}
		return nil
	}

	profile, err := app.Service.Auth.UpdateProfile(ctx, form, *avatar)
	if err != nil {
		return err
	}
	fmt.Printf("Profile updated for %s\n", profile.Username)
	return nil
}

func runResetPassword(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	email := fs.String("email", "", "account email to send the reset link to")
	uid := fs.String("uid", "", "uid from the reset link")
	token := fs.String("token", "", "token from the reset link")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Two-step flow: request a link by email, then confirm with uid+token.
	if *uid == "" && *token == "" {
		if err := app.Service.Auth.RequestPasswordReset(ctx, *email); err != nil {
			return err
		}
		fmt.Println("Reset link sent, check your inbox.")
		return nil
	}

	if err := app.Service.Auth.ConfirmPasswordReset(ctx, *uid, *token, *password); err != nil {
		return err
	}
	fmt.Println("Password reset successful, you can log in now.")
	return nil
}

func runCurrency(app *wire.App, args []string) error {
	if len(args) == 0 {
		fmt.Println(app.Store.Currency())
		return nil
	}

	code := args[0]
	if !currency.Supported(code) {
		return api.NewValidationError("unsupported currency %q (try THB or USD)", code)
	}
	if err := app.Store.SetCurrency(code); err != nil {
		return err
	}
	fmt.Printf("Display currency set to %s\n", code)
	return nil
}

func runBlog(ctx context.Context, app *wire.App, args []string) error {
	if len(args) == 0 {
		posts, err := app.Service.Blog.ListPosts(ctx)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("No posts yet")
			return nil
		}
		for _, post := range posts {
			fmt.Printf("%-30s %s by %s (%s)\n", post.Slug, post.Title, post.AuthorName, post.CreatedAt)
		}
		return nil
	}

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("blog create", flag.ContinueOnError)
		title := fs.String("title", "", "post title")
		content := fs.String("content", "", "post body")
		image := fs.String("image", "", "path to a cover image")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		form := &request.CreatePostForm{Title: *title, Content: *content}
		post, err := app.Service.Blog.CreatePost(ctx, form, *image)
		if err != nil {
			return err
		}
		fmt.Printf("Published %q as %s\n", post.Title, post.Slug)
		return nil
	default:
		post, err := app.Service.Blog.GetPost(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\nby %s, %s\n\n%s\n", post.Title, post.AuthorName, post.CreatedAt, post.Content)
		return nil
	}
}
