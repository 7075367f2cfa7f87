package errors

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Regular expressions for parsing SQLite constraint messages.
var (
	// reUniqueColumn extracts "table.column" from "UNIQUE constraint failed: jobs.slug".
	reUniqueColumn = regexp.MustCompile(`UNIQUE constraint failed: (?:\w+)\.(\w+)`)
	// reNotNullColumn extracts the column from "NOT NULL constraint failed: jobs.title".
	reNotNullColumn = regexp.MustCompile(`NOT NULL constraint failed: (?:\w+)\.(\w+)`)
)

// MapDBError maps database errors to AppError instances.
// It handles common database error patterns including:
// - sql.ErrNoRows → NotFound
// - UNIQUE constraint violations → Conflict (with the offending column as Field)
// - CHECK constraint violations → Validation
// - NOT NULL violations → Validation
// - Context timeouts/cancellations → Timeout/Canceled
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Resource not found",
			Cause:   err,
		}
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return mapSQLiteError(sqliteErr.Code(), sqliteErr.Error(), err)
	}

	// The driver sometimes surfaces constraint failures through fmt.Errorf
	// chains that lose the typed error; fall back to message matching.
	if mapped := mapConstraintMessage(err.Error(), err); mapped != nil {
		return mapped
	}

	return err
}

// mapSQLiteError maps SQLite result codes to AppError instances.
// Extended result codes carry the constraint subtype in the high byte.
func mapSQLiteError(code int, msg string, cause error) error {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return uniqueViolation(msg, cause)
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "Invalid data. Please check your input.",
			Cause:   cause,
		}
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return notNullViolation(msg, cause)
	}

	if code&0xff == sqlite3.SQLITE_CONSTRAINT {
		// Unrecognized constraint subtype; try the message before giving up.
		if mapped := mapConstraintMessage(msg, cause); mapped != nil {
			return mapped
		}
	}

	return &AppError{
		Code:    ErrCodeInternal,
		Message: "A database error occurred. Please try again.",
		Cause:   cause,
	}
}

// mapConstraintMessage classifies a constraint failure by its message text.
// Returns nil when the message matches no known constraint pattern.
func mapConstraintMessage(msg string, cause error) error {
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return uniqueViolation(msg, cause)
	case strings.Contains(msg, "CHECK constraint failed"):
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "Invalid data. Please check your input.",
			Cause:   cause,
		}
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return notNullViolation(msg, cause)
	}
	return nil
}

// uniqueViolation maps unique constraint violations to Conflict errors,
// extracting the offending column from "UNIQUE constraint failed: table.column".
func uniqueViolation(msg string, cause error) error {
	appErr := &AppError{
		Code:    ErrCodeConflict,
		Message: "This value already exists. Please choose a different one.",
		Cause:   cause,
	}
	if m := reUniqueColumn.FindStringSubmatch(msg); len(m) == 2 {
		appErr.Field = m[1]
	}
	return appErr
}

// notNullViolation maps NOT NULL constraint violations to Validation errors.
func notNullViolation(msg string, cause error) error {
	appErr := &AppError{
		Code:    ErrCodeValidation,
		Message: "Required field is missing. Please check your input.",
		Cause:   cause,
	}
	if m := reNotNullColumn.FindStringSubmatch(msg); len(m) == 2 {
		appErr.Field = m[1]
		appErr.Message = "This field is required."
	}
	return appErr
}
