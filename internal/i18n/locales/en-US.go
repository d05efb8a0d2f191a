package locales

// MessagesEnUS contains English translations.
var MessagesEnUS = map[string]string{
	// Common
	"common.success": "Success",
	"common.error":   "Error",

	// Auth
	"auth.invalid_credentials": "Invalid email or password",
	"auth.session_expired":     "Session expired, please sign in again",
	"auth.unauthorized":        "Authentication required",
	"auth.forbidden":           "You do not have permission to perform this action",
	"auth.account_disabled":    "This account is disabled",
	"auth.logged_out":          "Signed out",

	// Validation
	"validation.required":        "Required field missing",
	"validation.result_range":    "Result must be an integer between 0 and 99",
	"validation.invalid_date":    "Invalid date, expected DD/MM/YYYY",
	"validation.invalid_json":    "Invalid JSON in request body",
	"validation.password_length": "Password must be at least 8 characters",

	// Games
	"game.not_found":      "Game not found",
	"game.duplicate":      "A game with this name or code already exists",
	"game.created":        "Game created",
	"game.updated":        "Game updated",
	"game.deleted":        "Game deleted",
	"game.result_set":     "Result published",
	"game.result_cleared": "Result cleared",

	// Migration
	"migration.completed":        "Daily migration completed",
	"migration.backup_not_found": "Migration backup not found",
	"migration.already_restored": "This backup has already been restored",
	"migration.restored":         "Migration restored",

	// Users
	"user.not_found":      "User not found",
	"user.duplicate":      "A user with this email already exists",
	"user.created":        "User created",
	"user.updated":        "User updated",
	"user.password_set":   "Password updated",
	"user.reset_sent":     "If the email exists, a reset link has been sent",
	"user.reset_invalid":  "Reset token is invalid or expired",
	"user.wrong_password": "Current password is incorrect",

	// Imports
	"import.completed":   "Import completed",
	"import.file_failed": "File rejected: fix the listed rows and retry",
	"import.fetch_error": "Failed to fetch results from the upstream source",
}
