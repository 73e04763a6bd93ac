package core

// error_messages.go classifies storage failures for operators.
//
// Submitters only ever see "Database error!". The code returned here is
// logged next to the technical error so support can tell a lost connection
// from a constraint violation without reading stack traces.
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key: a row with this key already exists
//	        SQLSTATE 23505 on a primary key, or "duplicate key"
//
//	DB002 - Unique constraint: a unique value already exists
//	        SQLSTATE 23505, or "violates unique"
//
//	DB003 - Foreign key: referenced business does not exist
//	        SQLSTATE 23503, or "violates foreign key"
//
//	DB004 - Connection refused: unable to connect to database
//	        "connection refused"
//
//	DB005 - Connection reset: database connection was interrupted
//	        "connection reset"
//
//	DB006 - Timeout: operation timed out
//	        SQLSTATE 57014, "timeout", "deadline exceeded"
//
//	DB007 - Deadlock: conflicting concurrent operations
//	        SQLSTATE 40P01, or "deadlock"
//
//	DB008 - Check violation: a stored value broke a table CHECK
//	        SQLSTATE 23514, or "violates check constraint"
//
//	DB009 - Busy: every submission slot stayed taken
//	        ErrSubmissionsBusy
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check application logs for the original error.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgDuplicateKey = UserMessage{
		Message: "A record with this key already exists",
		Action:  "Submit the registration again",
		Code:    "DB001",
	}
	msgUnique = UserMessage{
		Message: "This value must be unique but already exists",
		Action:  "Submit the registration again",
		Code:    "DB002",
	}
	msgForeignKey = UserMessage{
		Message: "Referenced business does not exist",
		Action:  "Submit the business together with its items",
		Code:    "DB003",
	}
	msgConnRefused = UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "DB004",
	}
	msgConnReset = UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB005",
	}
	msgTimeout = UserMessage{
		Message: "Operation timed out",
		Action:  "Please try again later",
		Code:    "DB006",
	}
	msgDeadlock = UserMessage{
		Message: "Database was busy with conflicting operations",
		Action:  "Please try again",
		Code:    "DB007",
	}
	msgCheck = UserMessage{
		Message: "A value is outside the allowed range",
		Action:  "Check quantities and prices are not negative",
		Code:    "DB008",
	}
	msgBusy = UserMessage{
		Message: "Too many submissions are being saved right now",
		Action:  "Please try again in a few seconds",
		Code:    "DB009",
	}
)

// sqlStateMessages maps Postgres SQLSTATE codes to messages.
var sqlStateMessages = map[string]UserMessage{
	"23505": msgUnique,
	"23503": msgForeignKey,
	"23514": msgCheck,
	"40P01": msgDeadlock,
	"57014": msgTimeout,
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched case-insensitively with strings.Contains when the
// error carries no SQLSTATE. The first match wins.
var errorPatterns = []errorPattern{
	{"duplicate key", msgDuplicateKey},
	{"violates unique", msgUnique},
	{"violates foreign key", msgForeignKey},
	{"violates check constraint", msgCheck},
	{"connection refused", msgConnRefused},
	{"connection reset", msgConnReset},
	{"deadline exceeded", msgTimeout},
	{"timeout", msgTimeout},
	{"deadlock", msgDeadlock},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A wrapped *pgconn.PgError is classified by SQLSTATE; otherwise the error
// text is matched against known patterns.
//
//	msg := MapError(err)
//	// msg.Code == "DB003" for a foreign key violation
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if errors.Is(err, ErrSubmissionsBusy) {
		return msgBusy
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if msg, ok := sqlStateMessages[pgErr.Code]; ok {
			if pgErr.Code == "23505" && strings.HasSuffix(pgErr.ConstraintName, "_pkey") {
				return msgDuplicateKey
			}
			return msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
