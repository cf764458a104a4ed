package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// Data-quality problems inside a sheet are never errors; they are returned as
// warnings (CELL, ROW, HDR, SAP and TE codes, see schema.Warning). The codes
// below cover requests that could not be processed at all.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Remove unused sheets or split the workbook
//	          Patterns: "file too large"
//
//	FILE002 - Unreadable file: File could not be read as a spreadsheet
//	          Action: Save the file again as .xlsx or UTF-8 .csv
//	          Patterns: "invalid workbook", "invalid csv"
//
//	FILE003 - Unsupported type: Only .xlsx, .xlsm and .csv files are accepted
//	          Action: Export the sizing sheet to a supported format
//	          Patterns: "unsupported file type"
//
//	FILE004 - No file: No file was selected
//	          Action: Please select a sizing workbook to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The uploaded file is empty
//	          Action: Please upload a workbook with data rows
//	          Patterns: "empty file"
//
//	FILE006 - Missing sheet: The workbook has no sizing sheet
//	          Action: Name the inventory sheet "Anexo Aplicaciones"
//	          Patterns: "sheet not found", "unknown sheet"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid JSON: Request body is not valid JSON
//	         Action: Check the request body against the API documentation
//	         Patterns: "invalid json"
//
//	REQ002 - Body too large: Request body exceeds the size limit
//	         Action: Send a smaller inventory
//	         Patterns: "request body too large"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many workbooks are being processed
//	         Action: Please wait a moment and try again
//	         Patterns: "too many concurrent"
//
//	UPL004 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout: Request timed out
//	         Action: Try a smaller workbook or check your connection
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Configuration (CFG001-CFG099)
//
//	CFG001 - Invalid configuration: A sizing constant is not positive
//	         Action: Contact the administrator; the server is misconfigured
//	         Patterns: "invalid configuration"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var unreadableFile = UserMessage{
	Message: "File could not be read as a spreadsheet",
	Action:  "Save the file again as .xlsx or UTF-8 .csv",
	Code:    "FILE002",
}

var missingSheet = UserMessage{
	Message: "The workbook has no sizing sheet",
	Action:  `Name the inventory sheet "Anexo Aplicaciones"`,
	Code:    "FILE006",
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE006)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Remove unused sheets or split the workbook",
			Code:    "FILE001",
		},
	},
	{pattern: "invalid workbook", msg: unreadableFile},
	{pattern: "invalid csv", msg: unreadableFile},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Only .xlsx, .xlsm and .csv files are accepted",
			Action:  "Export the sizing sheet to a supported format",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a sizing workbook to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a workbook with data rows",
			Code:    "FILE005",
		},
	},
	{pattern: "sheet not found", msg: missingSheet},
	{pattern: "unknown sheet", msg: missingSheet},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// =========================================================================
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "Request body is not valid JSON",
			Action:  "Check the request body against the API documentation",
			Code:    "REQ001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "Request body exceeds the size limit",
			Action:  "Send a smaller inventory",
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Upload Errors (UPL002-UPL005)
	// =========================================================================
	{
		pattern: "too many concurrent",
		msg: UserMessage{
			Message: "System is busy processing other workbooks",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller workbook or check your connection",
			Code:    "UPL005",
		},
	},

	// =========================================================================
	// Configuration (CFG001)
	// Checked before RATE001: validation messages name RATE_LIMIT_* settings.
	// =========================================================================
	{
		pattern: "invalid configuration",
		msg: UserMessage{
			Message: "The server's sizing configuration is invalid",
			Action:  "Contact the administrator; the server is misconfigured",
			Code:    "CFG001",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	msg := MapError(fmt.Errorf("read upload: %w", workbook.ErrSheetNotFound))
//	// msg.Code == "FILE006"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
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

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}
