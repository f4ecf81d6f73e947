package common

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorCode describes one entry of the error taxonomy
type ErrorCode struct {
	Code        string // Error code (e.g. STORE_002)
	Category    string // Category (e.g. Store)
	SubCategory string // Sub category (e.g. Write)
	Description string // Human readable description
}

// Error codes, grouped by category
var (
	// Connection errors (CONN_xxx): the document store is unreachable
	ErrCodeConnection = ErrorCode{
		Code:        "CONN_001",
		Category:    "Connection",
		SubCategory: "Unreachable",
		Description: "Document store is unreachable",
	}

	// Store errors (STORE_xxx): a specific document operation failed
	ErrCodeStoreQuery = ErrorCode{
		Code:        "STORE_001",
		Category:    "Store",
		SubCategory: "Query",
		Description: "Document query failed",
	}

	ErrCodeStoreWrite = ErrorCode{
		Code:        "STORE_002",
		Category:    "Store",
		SubCategory: "Write",
		Description: "Document write failed",
	}

	ErrCodeStoreNotFound = ErrorCode{
		Code:        "STORE_003",
		Category:    "Store",
		SubCategory: "NotFound",
		Description: "Document not found",
	}

	// Data shape errors (DATA_xxx): malformed or missing fields
	ErrCodeDataShape = ErrorCode{
		Code:        "DATA_001",
		Category:    "DataShape",
		SubCategory: "Shape",
		Description: "Malformed record",
	}

	ErrCodeDataValidation = ErrorCode{
		Code:        "DATA_002",
		Category:    "DataShape",
		SubCategory: "Validation",
		Description: "Record failed validation",
	}

	// File errors (FILE_xxx): JSON cache or workbook I/O
	ErrCodeFileRead = ErrorCode{
		Code:        "FILE_001",
		Category:    "File",
		SubCategory: "Read",
		Description: "Could not read file",
	}

	ErrCodeFileWrite = ErrorCode{
		Code:        "FILE_002",
		Category:    "File",
		SubCategory: "Write",
		Description: "Could not write file",
	}

	// Business errors (BIZ_xxx)
	ErrCodeEmptyCart = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "Cart",
		Description: "Cart is empty",
	}

	ErrCodeUnknownKind = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Kind",
		Description: "Unknown collection type",
	}

	ErrCodeProductNotFound = ErrorCode{
		Code:        "BIZ_003",
		Category:    "Business",
		SubCategory: "Product",
		Description: "Product not found",
	}
)

// Error is the error type returned by every component of the module.
// Message is safe to show to the user; Cause keeps the underlying error.
type Error struct {
	Code    ErrorCode // Error code
	Message string    // User facing message
	Details any       // Extra details (missing fields, paths, ...)
	Cause   error     // Underlying error
}

// Error returns the message, followed by the cause when there is one
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code
}

// NewError creates a new error with all of its fields
func NewError(code ErrorCode, message string, details any, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// Sentinels, matched by code through errors.Is
var (
	ErrConnection     = NewError(ErrCodeConnection, "Database connection not available", nil, nil)
	ErrNotFound       = NewError(ErrCodeStoreNotFound, "Document not found", nil, nil)
	ErrStoreWrite     = NewError(ErrCodeStoreWrite, "Document write failed", nil, nil)
	ErrStoreQuery     = NewError(ErrCodeStoreQuery, "Document query failed", nil, nil)
	ErrDataShape      = NewError(ErrCodeDataShape, "Malformed record", nil, nil)
	ErrValidation     = NewError(ErrCodeDataValidation, "Record failed validation", nil, nil)
	ErrFileRead       = NewError(ErrCodeFileRead, "Could not read file", nil, nil)
	ErrFileWrite      = NewError(ErrCodeFileWrite, "Could not write file", nil, nil)
	ErrEmptyCart      = NewError(ErrCodeEmptyCart, "Cart is empty", nil, nil)
	ErrUnknownKind    = NewError(ErrCodeUnknownKind, "Unknown data type", nil, nil)
	ErrProductMissing = NewError(ErrCodeProductNotFound, "Product not found", nil, nil)
)

// NewConnectionError wraps a failure to reach the document store
func NewConnectionError(message string, cause error) error {
	return NewError(ErrCodeConnection, message, nil, cause)
}

// NewStoreError wraps a failed document operation
func NewStoreError(code ErrorCode, message string, cause error) error {
	return NewError(code, message, nil, cause)
}

// NewDataShapeError reports a malformed record; details usually carries the offending fields
func NewDataShapeError(message string, details any) error {
	return NewError(ErrCodeDataShape, message, details, nil)
}

// NewFileError wraps a JSON cache or workbook I/O failure for path
func NewFileError(code ErrorCode, path string, cause error) error {
	return NewError(code, fmt.Sprintf("%s %s", code.Description, path), path, cause)
}

// CodeOf returns the code of err, or "" when err is not an *Error
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.Code
	}
	return ""
}

func categoryOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.Category
	}
	return ""
}

// IsConnection reports whether err is a ConnectionError
func IsConnection(err error) bool { return categoryOf(err) == "Connection" }

// IsStore reports whether err is a StoreError
func IsStore(err error) bool { return categoryOf(err) == "Store" }

// IsDataShape reports whether err is a DataShapeError
func IsDataShape(err error) bool { return categoryOf(err) == "DataShape" }

// IsFile reports whether err is a FileError
func IsFile(err error) bool { return categoryOf(err) == "File" }

// ConvertMongoError maps a driver error onto the taxonomy.
// Errors that already belong to the taxonomy are returned unchanged.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var own *Error
	if errors.As(err, &own) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return NewError(ErrCodeStoreNotFound, "Document not found", nil, err)
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return NewConnectionError("Database connection not available", err)
	}
	if mongo.IsNetworkError(err) {
		return NewConnectionError("Network error talking to MongoDB", err)
	}
	if mongo.IsTimeout(err) {
		return NewConnectionError("MongoDB operation timed out", err)
	}
	if mongo.IsDuplicateKeyError(err) {
		return NewStoreError(ErrCodeStoreWrite, "Duplicate document in MongoDB", err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch {
		// Connection errors
		case cmdErr.Code >= 100 && cmdErr.Code < 200:
			return NewConnectionError("MongoDB connection error", err)
		// Write errors
		case cmdErr.Code >= 400 && cmdErr.Code < 500:
			return NewStoreError(ErrCodeStoreWrite, "MongoDB write error", err)
		default:
			return NewStoreError(ErrCodeStoreQuery, "MongoDB query error", err)
		}
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		return NewStoreError(ErrCodeStoreWrite, "MongoDB write error", err)
	}
	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) {
		return NewStoreError(ErrCodeStoreWrite, "MongoDB bulk write error", err)
	}

	return NewStoreError(ErrCodeStoreQuery, "MongoDB error", err)
}
