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

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email, and password (twice) and attempts
// to create a new account via the user store.
//
// On success it prints the server's welcome message and returns nil. The
// password byte slices are securely wiped before returning. Any I/O or
// store error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if !formatx.IsValidEmail(email) {
		log.Printf("Invalid email address: %s", email)
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)

	resp, err := a.users.Register(ctx, models.Registration{
		Username:        userName,
		Email:           email,
		Password:        string(password),
		PasswordConfirm: string(confirm),
	})
	if err != nil {
		log.Printf("Registration unsuccessful: %s", a.users.Error())
		return err
	}

	if resp.Message != "" {
		fmt.Println(resp.Message)
	} else {
		fmt.Println("Success!")
	}
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// On success the session is persisted locally, so the next start of the
// program is already logged in. On failure the store's user-facing error
// message is shown.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	u, err := a.users.Login(ctx, models.Credentials{Username: userName, Password: string(password)})
	if err != nil {
		log.Printf("Login unsuccessful: %s", a.users.Error())
		return err
	}

	log.Printf("Login successful, welcome %s", u.Username)
	return nil
}

// Logout clears the local session first and notifies the server
// best-effort; it always leaves the client logged out.
func (a *App) Logout(ctx context.Context) error {
	a.users.Logout(ctx)
	a.path = "/"
	log.Printf("Logged out")
	return nil
}
