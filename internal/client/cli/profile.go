package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/formatx"
	"github.com/msivanov/materialhub/internal/shared"
)

// Profile fetches and prints the current user's profile.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.users.FetchProfile(ctx)
	if err != nil {
		log.Printf("Profile unsuccessful: %s", a.users.Error())
		return err
	}

	fmt.Printf("%s <%s>\n", u.Username, u.Email)
	if u.Bio != "" {
		fmt.Println(u.Bio)
	}
	if u.Website != "" {
		fmt.Printf("Website: %s\n", u.Website)
	}
	premium := "no"
	if u.IsPremium {
		premium = "yes"
	}
	fmt.Printf("Materials: %d  Downloads: %d  Credits: %d  Premium: %s\n",
		u.MaterialsCount, u.DownloadsCount, u.Credits, premium)
	fmt.Printf("Joined: %s\n", formatx.Date(u.DateJoined, "YYYY-MM-DD"))
	return nil
}

// EditProfile prompts for profile fields and sends only the ones the user
// actually answered.
func (a *App) EditProfile(ctx context.Context) error {
	var update models.ProfileUpdate

	email, err := getSimpleText(a.reader, "Email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if email != "" {
		if !formatx.IsValidEmail(email) {
			log.Printf("Invalid email address: %s", email)
			return nil
		}
		update.Email = &email
	}

	bio, err := GetMultiline(a.reader, "Bio (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if bio != "" {
		update.Bio = &bio
	}

	website, err := getSimpleText(a.reader, "Website (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if website != "" {
		if !formatx.IsValidURL(website) {
			log.Printf("Invalid URL: %s", website)
			return nil
		}
		update.Website = &website
	}

	if update.Email == nil && update.Bio == nil && update.Website == nil {
		printlnFn("Nothing to update")
		return nil
	}

	if _, err := a.users.UpdateProfile(ctx, update); err != nil {
		log.Printf("Update unsuccessful: %s", a.users.Error())
		return err
	}

	log.Printf("Profile updated")
	return nil
}

// ChangePassword prompts for the old and new password and applies the
// change. Both byte slices are wiped before returning.
func (a *App) ChangePassword(ctx context.Context) error {
	printlnFn("Current password")
	oldPassword, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(oldPassword)

	printlnFn("New password")
	newPassword, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(newPassword)

	err = a.users.ChangePassword(ctx, models.PasswordChange{
		OldPassword: string(oldPassword),
		NewPassword: string(newPassword),
	})
	if err != nil {
		log.Printf("Password change unsuccessful: %s", a.users.Error())
		return err
	}

	log.Printf("Password changed")
	return nil
}
