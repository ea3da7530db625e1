package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"docchat-backend/pkg/api"

	"github.com/gorilla/schema"
	"go.uber.org/zap"
)

type codedError struct {
	err     error
	code    int
	message string
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

// publicMessage is what the caller sees in the "error" field.
func (e *codedError) publicMessage() string {
	if e.message != "" {
		return e.message
	}
	return e.err.Error()
}

func CodedError(code int, err error) error {
	return &codedError{err: err, code: code}
}

func CodedErrorf(code int, format string, args ...any) error {
	return &codedError{err: fmt.Errorf(format, args...), code: code}
}

// CodedErrorMessage reports message to the caller while keeping err as the
// detail that is logged and optionally disclosed.
func CodedErrorMessage(code int, message string, err error) error {
	return &codedError{err: err, code: code, message: message}
}

// ErrorPolicy decides how much of a server error reaches the caller.
type ErrorPolicy struct {
	ExposeDetails bool
}

func (p ErrorPolicy) body(code int, cerr *codedError) api.ErrorResponse {
	resp := api.ErrorResponse{Error: cerr.publicMessage()}
	if p.ExposeDetails && code >= http.StatusInternalServerError {
		resp.Details = cerr.err.Error()
	}
	return resp
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func ParseRequest[T any](r *http.Request) (T, error) {
	var data T
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		zap.L().Error("error parsing request body", zap.Error(err))
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request body")
	}
	return data, nil
}

func ParseRequestQueryParams[T any](r *http.Request) (T, error) {
	var data T

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	if err := decoder.Decode(&data, r.URL.Query()); err != nil {
		zap.L().Error("error decoding query params", zap.Error(err))
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request query params")
	}

	return data, nil
}

func RestHandler(policy ErrorPolicy, handler func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			var cerr *codedError
			if !errors.As(err, &cerr) {
				zap.L().Error("received non coded error from endpoint", zap.Error(err), zap.String("path", r.URL.Path))
				cerr = &codedError{err: err, code: http.StatusInternalServerError}
			} else if cerr.code >= http.StatusInternalServerError {
				zap.L().Error("internal server error received in endpoint", zap.Error(err), zap.String("path", r.URL.Path))
			}

			WriteJsonResponse(w, cerr.code, policy.body(cerr.code, cerr))
			return
		}

		if res == nil {
			res = struct{}{}
		}

		WriteJsonResponse(w, http.StatusOK, res)
	}
}

func WriteJsonResponse(w http.ResponseWriter, code int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("error serializing response body", zap.Error(err))
		http.Error(w, fmt.Sprintf("error serializing response body: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		zap.L().Error("error writing response body", zap.Error(err))
	}
}
