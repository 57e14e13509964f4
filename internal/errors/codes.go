package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The dashboard maps these codes to toast messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// Authorization (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// Generic resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Content (CONTENT_)
	ContentDestinationNotFound    = "CONTENT_DESTINATION_NOT_FOUND"
	ContentRecommendationNotFound = "CONTENT_RECOMMENDATION_NOT_FOUND"
	ContentPersonNotFound         = "CONTENT_PERSON_NOT_FOUND"
	ContentBlogPostNotFound       = "CONTENT_BLOG_POST_NOT_FOUND"
	ContentSlugExists             = "CONTENT_SLUG_EXISTS"
	ContentDestinationRequired    = "CONTENT_DESTINATION_REQUIRED"
	ContentDestinationInvalid     = "CONTENT_DESTINATION_INVALID"
	ContentPartiallySaved         = "CONTENT_PARTIALLY_SAVED"

	// Upload (UPLOAD_)
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalCacheError    = "INTERNAL_CACHE_ERROR"
)
