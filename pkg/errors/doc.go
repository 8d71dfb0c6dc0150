// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodePayload,
//	    "component configuration is not valid JSON",
//	    cause,
//	    map[string]any{
//	        "component": "accordion",
//	        "tag": "section",
//	    },
//	)
package errors
