package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "pickem-league"
)

// envelope follows the Google JSON style guide: data on success, error on
// failure, never both.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorRules is checked in order; the first matching sentinel wins, so pick
// rule errors sit ahead of the generic usecase ones they may wrap.
var errorRules = []struct {
	targets []error
	mapped  mappedError
}{
	{[]error{pick.ErrInvalidSelection}, mappedError{http.StatusBadRequest, "invalidSelection", "INVALID_ARGUMENT"}},
	{[]error{pick.ErrPickLimitExceeded}, mappedError{http.StatusConflict, "pickLimitExceeded", "FAILED_PRECONDITION"}},
	{[]error{pick.ErrLockLimitExceeded}, mappedError{http.StatusConflict, "lockLimitExceeded", "FAILED_PRECONDITION"}},
	{[]error{pick.ErrDuplicatePick}, mappedError{http.StatusConflict, "duplicatePick", "ALREADY_EXISTS"}},
	{[]error{pick.ErrPicksClosed}, mappedError{http.StatusLocked, "picksClosed", "FAILED_PRECONDITION"}},
	{[]error{usecase.ErrInvalidInput}, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{[]error{usecase.ErrNotFound, pick.ErrNotFound}, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{[]error{usecase.ErrUnauthorized}, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{[]error{usecase.ErrForbidden}, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{[]error{usecase.ErrConflict}, mappedError{http.StatusConflict, "conflict", "ABORTED"}},
	{[]error{usecase.ErrDependencyUnavailable, resilience.ErrCircuitOpen}, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.mapped
			}
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeError(_ context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeJSON(w, mapped.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("internal server error"))
}
