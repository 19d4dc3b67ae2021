// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes reported by PostgreSQL and converts them into
// application errors with user-friendly messages (e.g. a foreign key
// violation becomes a 400 "The referenced customer does not exist").
package sqlerr

import "fmt"

// Code is the application-level category of a database error.
type Code string

const (
	Other                     Code = "other"
	NotNullViolation          Code = "not_null_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	UniqueViolation           Code = "unique_violation"
	CheckViolation            Code = "check_violation"
	InvalidTextRepresentation Code = "invalid_text_representation"
	ConnectionFailure         Code = "connection_failure"
)

// Severity mirrors the severity reported by PostgreSQL.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE into a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepresentation
	}

	// Class 08: connection exception.
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionFailure
	}

	return Other
}

// MapSeverity maps the severity string reported by PostgreSQL.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
