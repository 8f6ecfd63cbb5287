// Package errors provides structured domain errors with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Session errors
	CodeNotAuthenticated   Code = "NOT_AUTHENTICATED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAccountExists      Code = "ACCOUNT_EXISTS"

	// Wizard errors
	CodeInvalidTransition    Code = "WIZARD_INVALID_TRANSITION"
	CodeStepInvalid          Code = "WIZARD_STEP_INVALID"
	CodeSubmissionInProgress Code = "WIZARD_SUBMISSION_IN_PROGRESS"

	// Enrichment errors
	CodeInvalidChannelURL  Code = "YOUTUBE_INVALID_CHANNEL_URL"
	CodeChannelNotFound    Code = "YOUTUBE_CHANNEL_NOT_FOUND"
	CodeChannelFetchFailed Code = "YOUTUBE_CHANNEL_FETCH_FAILED"

	// Refinement errors
	CodeRefineFailed Code = "REFINE_FAILED"

	// Asset errors
	CodeAssetTooLarge     Code = "ASSET_TOO_LARGE"
	CodeAssetInvalidType  Code = "ASSET_INVALID_TYPE"
	CodeAssetUploadFailed Code = "ASSET_UPLOAD_FAILED"

	// Submission errors
	CodeProfileUpsertFailed  Code = "PROFILE_UPSERT_FAILED"
	CodePlatformUpsertFailed Code = "PLATFORM_UPSERT_FAILED"
	CodeBrandUpsertFailed    Code = "BRAND_UPSERT_FAILED"
	CodeSubmitFailed         Code = "SUBMIT_FAILED"
	CodeBrandSubmitFailed    Code = "BRAND_SUBMIT_FAILED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// BadRequest - validation failures, bad input
	case CodeInvalidTransition,
		CodeStepInvalid,
		CodeInvalidChannelURL,
		CodeAssetTooLarge,
		CodeAssetInvalidType:
		return http.StatusBadRequest

	case CodeNotAuthenticated, CodeInvalidCredentials:
		return http.StatusUnauthorized

	case CodeNotFound, CodeChannelNotFound:
		return http.StatusNotFound

	case CodeAccountExists, CodeSubmissionInProgress:
		return http.StatusConflict

	// BadGateway - an upstream dependency failed
	case CodeChannelFetchFailed,
		CodeRefineFailed,
		CodeAssetUploadFailed,
		CodeProfileUpsertFailed,
		CodePlatformUpsertFailed,
		CodeBrandUpsertFailed:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
