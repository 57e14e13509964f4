package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and transport errors into a code/message
// pair safe to show in a toast. Raw driver detail stays in the logs only.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// GORM sentinel errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	// Unique constraint (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// Not null constraint (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// Network / connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Could not reach the data store, please try again shortly",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// Blog slug collision
	if strings.Contains(errLower, "slug") || strings.Contains(errLower, "idx_blog_posts_slug") {
		return ErrorInfo{
			Code:    ContentSlugExists,
			Message: "A blog post with this slug already exists",
		}
	}

	// Profile or subscriber email collision
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}

	// Join row already present (reconciliation raced with itself)
	if strings.Contains(errLower, "person_recommendations") ||
		strings.Contains(errLower, "blog_post_destinations") ||
		strings.Contains(errLower, "blog_post_recommendations") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This association already exists",
		}
	}

	// Primary key collision: a client-generated ID was reused
	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A record with this identifier already exists",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// Delete blocked by referencing rows
	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "destination") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "This destination still has recommendations attached",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record is still referenced by other data",
		}
	}

	// Insert/update referencing a missing row
	if strings.Contains(errLower, "destination_id") {
		return ErrorInfo{
			Code:    ContentDestinationInvalid,
			Message: "The selected destination no longer exists",
		}
	}
	if strings.Contains(errLower, "person_id") || strings.Contains(errLower, "author_id") {
		return ErrorInfo{
			Code:    ContentPersonNotFound,
			Message: "The selected person no longer exists",
		}
	}
	if strings.Contains(errLower, "recommendation_id") {
		return ErrorInfo{
			Code:    ContentRecommendationNotFound,
			Message: "The selected recommendation no longer exists",
		}
	}
	if strings.Contains(errLower, "blog_post_id") {
		return ErrorInfo{
			Code:    ContentBlogPostNotFound,
			Message: "The blog post no longer exists",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record could not be found",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	for _, field := range []string{"name", "title", "slug", "content", "email", "image", "description", "cuisine", "price_level", "destination_id"} {
		if strings.Contains(errLower, `"`+field+`"`) {
			return ErrorInfo{
				Code:    ValidationRequired,
				Message: strings.ReplaceAll(field, "_", " ") + " is required",
			}
		}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "destination"):
		return "Destination not found"
	case strings.Contains(contextLower, "recommendation"):
		return "Recommendation not found"
	case strings.Contains(contextLower, "person"), strings.Contains(contextLower, "people"):
		return "Person not found"
	case strings.Contains(contextLower, "blog"):
		return "Blog post not found"
	case strings.Contains(contextLower, "subscriber"):
		return "Subscriber not found"
	case strings.Contains(contextLower, "profile"), strings.Contains(contextLower, "user"):
		return "Account not found"
	}

	return "The requested record could not be found"
}

// ParseAndRespond parses the error and writes the standard error payload.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create the record, please try again"
	case strings.Contains(contextLower, "update"):
		return "Failed to save changes, please try again"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete the record, please try again"
	case strings.Contains(contextLower, "refresh"), strings.Contains(contextLower, "fetch"):
		return "Failed to fetch data, please try again"
	}

	return "Something went wrong, please try again"
}
