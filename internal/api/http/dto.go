package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// maxBodyBytes bounds JSON request bodies. Restores use maxRestoreBytes.
const (
	maxBodyBytes    = 1 << 20
	maxRestoreBytes = 256 << 20
)

var validate = validator.New()

type unitRequest struct {
	Name string `json:"name" validate:"required"`
}

type supplierRequest struct {
	Name  string   `json:"name" validate:"required,min=3"`
	Units []string `json:"units" validate:"required,min=1,dive,required"`
}

type questionRequest struct {
	Supplier string         `json:"supplier" validate:"required"`
	Category types.Category `json:"category" validate:"required"`
	Text     string         `json:"text" validate:"required"`
}

type questionUpdate struct {
	Text string `json:"text" validate:"required"`
}

type purgeRequest struct {
	Origin string `json:"origin"`
	Token  string `json:"token"`
}

// MutationResponse reports the outcome of a reference data change.
type MutationResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// decode reads a JSON body into dst and runs its validate tags.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidInput, fmt.Sprintf("invalid request body: %v", err))
	}
	return check(dst)
}

// check turns validator failures into a VALIDATION error listing the fields.
func check(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperrors.NewValidationError(apperrors.CodeInvalidInput, err.Error())
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fmt.Sprintf("%s:%s", fe.Namespace(), fe.Tag()))
	}
	return apperrors.NewValidationError(apperrors.CodeInvalidInput, "invalid fields: "+strings.Join(fields, ", ")).
		WithDetails(map[string]interface{}{"fields": fields})
}

// parseOrigin normalizes an origin name or alias. An empty value yields nil,
// meaning both workflows.
func parseOrigin(s string) (*types.Origin, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	o, err := types.ParseOrigin(s)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidInput, err.Error())
	}
	return &o, nil
}

// requireOrigin is parseOrigin for parameters that cannot be empty.
func requireOrigin(s string) (types.Origin, error) {
	o, err := parseOrigin(s)
	if err != nil {
		return "", err
	}
	if o == nil {
		return "", apperrors.NewValidationError(apperrors.CodeInvalidInput, "origin is required")
	}
	return *o, nil
}

// queryList collects a repeatable query parameter, also splitting commas.
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
