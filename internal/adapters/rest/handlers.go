package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/haulplan/internal/adapters/metrics"
	apptrip "github.com/andrescamacho/haulplan/internal/application/trip"
	"github.com/andrescamacho/haulplan/internal/domain/shared"
	domaintrip "github.com/andrescamacho/haulplan/internal/domain/trip"
	"github.com/andrescamacho/haulplan/pkg/logger"
)

// TripPlanner is the application service the HTTP layer drives.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req apptrip.PlanRequest) (*domaintrip.Trip, error)
}

// planRequest is the wire format of POST /plan.
type planRequest struct {
	CurrentLocation   string   `json:"current_location" validate:"required,max=500"`
	PickupLocation    string   `json:"pickup_location" validate:"required,max=500"`
	DropoffLocation   string   `json:"dropoff_location" validate:"required,max=500"`
	CurrentCycleHours *float64 `json:"current_cycle_hours" validate:"required,min=0,max=70"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Handler serves the trip planning endpoints.
type Handler struct {
	planner  TripPlanner
	validate *validator.Validate
	log      *logger.Logger
}

// NewHandler creates a handler backed by the given planner.
func NewHandler(planner TripPlanner, log *logger.Logger) *Handler {
	v := validator.New()
	// Report validation errors under the json field names clients sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{planner: planner, validate: v, log: log}
}

// PlanTrip handles POST /plan.
func (h *Handler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordPlanRequest(metrics.OutcomeValidationFailed)
		h.respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		metrics.RecordPlanRequest(metrics.OutcomeValidationFailed)
		h.respondError(w, http.StatusBadRequest, "Validation failed", fieldErrors(err))
		return
	}

	result, err := h.planner.PlanTrip(r.Context(), apptrip.PlanRequest{
		CurrentLocation:   req.CurrentLocation,
		PickupLocation:    req.PickupLocation,
		DropoffLocation:   req.DropoffLocation,
		CurrentCycleHours: *req.CurrentCycleHours,
	})
	if err != nil {
		h.respondPlanError(w, r, err)
		return
	}

	metrics.RecordPlanRequest(metrics.OutcomePlanned)
	metrics.RecordTripPlanned(result.Summary.TotalDistanceMiles, result.Summary.TotalDays, len(result.Stops))
	h.respondJSON(w, http.StatusOK, result)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// respondPlanError maps domain errors onto HTTP status codes. Errors the
// caller can fix (bad locations, unroutable pairs) come back as 400 with the
// domain message; everything else is a 500 with a generic body.
func (h *Handler) respondPlanError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *shared.GeocodeNotFoundError
	var unroutable *shared.RouteUnavailableError
	var invalid *shared.ValidationError

	switch {
	case errors.As(err, &notFound):
		metrics.RecordPlanRequest(metrics.OutcomeGeocodeNotFound)
		h.respondError(w, http.StatusBadRequest, notFound.Error(), nil)
	case errors.As(err, &unroutable):
		metrics.RecordPlanRequest(metrics.OutcomeRouteUnavailable)
		h.respondError(w, http.StatusBadRequest, unroutable.Error(), nil)
	case errors.As(err, &invalid):
		metrics.RecordPlanRequest(metrics.OutcomeValidationFailed)
		h.respondError(w, http.StatusBadRequest, "Validation failed", map[string]string{
			invalid.Field: invalid.Message,
		})
	default:
		metrics.RecordPlanRequest(metrics.OutcomeInternalError)
		h.log.Errorw("trip planning failed",
			"error", err,
			"request_id", RequestIDFrom(r.Context()),
		)
		h.respondError(w, http.StatusInternalServerError, "An error occurred while planning the trip", nil)
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Errorw("encoding response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	h.respondJSON(w, status, errorResponse{Error: message, Fields: fields})
}

// fieldErrors flattens validator output into a field -> message map.
func fieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fields
	}
	for _, fe := range verrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	default:
		return "Invalid value"
	}
}
