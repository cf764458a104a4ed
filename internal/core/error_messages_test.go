package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "file too large maps correctly",
			err:         errors.New("file too large: 20MB exceeds limit"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "invalid workbook maps correctly",
			err:         errors.New("invalid workbook: zip: not a valid zip file"),
			wantCode:    "FILE002",
			wantMessage: "File could not be read as a spreadsheet",
		},
		{
			name:        "unsupported type maps correctly",
			err:         errors.New(`unsupported file type ".pdf"`),
			wantCode:    "FILE003",
			wantMessage: "Only .xlsx, .xlsm and .csv files are accepted",
		},
		{
			name:        "wrapped unknown sheet maps correctly",
			err:         fmt.Errorf("extract: %w", ErrUnknownSheet),
			wantCode:    "FILE006",
			wantMessage: "The workbook has no sizing sheet",
		},
		{
			name:        "invalid json maps correctly",
			err:         errors.New("invalid JSON: unexpected EOF"),
			wantCode:    "REQ001",
			wantMessage: "Request body is not valid JSON",
		},
		{
			name:        "busy maps correctly",
			err:         errors.New("too many concurrent workbook parses"),
			wantCode:    "UPL002",
			wantMessage: "System is busy processing other workbooks",
		},
		{
			name:        "deadline maps correctly",
			err:         errors.New("context deadline exceeded"),
			wantCode:    "UPL005",
			wantMessage: "Request timed out",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "configuration maps correctly",
			err:         errors.New("license: invalid configuration: pageviews per user must be positive"),
			wantCode:    "CFG001",
			wantMessage: "The server's sizing configuration is invalid",
		},
		{
			name:        "rate limit setting is a configuration error",
			err:         errors.New("config validation: invalid configuration:\n  - RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled"),
			wantCode:    "CFG001",
			wantMessage: "The server's sizing configuration is invalid",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("SHEET NOT FOUND"),
			wantCode:    "FILE006",
			wantMessage: "The workbook has no sizing sheet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := errors.New("empty file")
	result := FormatUserError(err)

	expected := "The uploaded file is empty (Code: FILE005). Please upload a workbook with data rows"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  errors.New("no file provided"),
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
