package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/mindhaven/internal/common"
)

const minPasswordLength = 8

var (
	errEmptyFields      = errors.New("please fill in all fields")
	errPasswordMismatch = errors.New("passwords do not match")
	errPasswordTooShort = errors.New("password must be at least 8 characters")
	errAlreadyLoggedIn  = errors.New("already logged in, type 'logout' first")
)

// signup collects name, email and a confirmed password, then registers.
// On success the session navigates to the dashboard.
func (a *App) signup(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	name, err := a.prompt("Name")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	a.printf("Confirm ")
	confirm, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if name == "" || email == "" || len(password) == 0 || len(confirm) == 0 {
		return errEmptyFields
	}
	if string(password) != string(confirm) {
		return errPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return errPasswordTooShort
	}

	return a.session.Signup(ctx, name, email, string(password))
}

func (a *App) login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if strings.TrimSpace(email) == "" || len(password) == 0 {
		return errEmptyFields
	}
	return a.session.Login(ctx, email, string(password))
}

func (a *App) logout() {
	a.session.Logout()
}

func (a *App) whoami() {
	s := a.session.State()
	if !s.IsAuthenticated || s.User == nil {
		a.println("Not logged in.")
		return
	}
	a.printf("%s <%s>\n", s.User.Name, s.User.Email)
}
