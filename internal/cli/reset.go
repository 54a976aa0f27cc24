package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/movewell/internal/db"
	"github.com/terraincognita07/movewell/internal/security"
	"github.com/terraincognita07/movewell/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 16

// RunResetPasswordCommand replaces the account password with a temporary one
// and flags the account so the user is asked to pick a new password.
func RunResetPasswordCommand(options db.Options, email string, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("a valid email is required, got %q", email)
	}

	database, err := db.Open(options)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.Close(database)
	}()

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, string(passwordHash), true); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", normalizedEmail)
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "The user must change it after signing in.")
	return nil
}
