// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import "codeberg.org/oliverandrich/jokebox/internal/models"

// CanDelete reports whether user may delete joke.
// Owners may delete their own jokes, admins may delete any joke.
func CanDelete(user *models.User, joke *models.Joke) bool {
	if user == nil || joke == nil {
		return false
	}
	return user.IsAdmin || joke.UserID == user.ID
}
