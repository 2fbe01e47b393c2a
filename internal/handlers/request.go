package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"sales-dashboard/internal/engine"
	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

// filterRequest carries the raw query parameters of a filter selection
// before they become FilterCriteria.
type filterRequest struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

// filterFromQuery builds FilterCriteria from the request query. Missing
// parameters fall back to the dataset defaults: full date range, every known
// region and category — the same defaults the dashboard controls start with.
// A region or category parameter that is present but empty selects nothing.
func filterFromQuery(r *http.Request, meta models.DatasetMeta, validate *validator.Validate) (models.FilterCriteria, error) {
	q := r.URL.Query()

	req := filterRequest{
		Start: q.Get("start"),
		End:   q.Get("end"),
	}
	if req.Start == "" {
		req.Start = meta.MinDate.Format(dateLayout)
	}
	if req.End == "" {
		req.End = meta.MaxDate.Format(dateLayout)
	}
	if err := validate.Struct(req); err != nil {
		return models.FilterCriteria{}, apperrors.ValidationWrap(err, "dates must be YYYY-MM-DD")
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		return models.FilterCriteria{}, apperrors.ValidationWrap(err, "invalid start date")
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		return models.FilterCriteria{}, apperrors.ValidationWrap(err, "invalid end date")
	}

	criteria := models.FilterCriteria{Start: start, End: end}

	if regions, ok := q["region"]; ok {
		criteria.Regions = models.NewStringSet(regions...)
	} else {
		criteria.Regions = models.NewStringSet(meta.Regions...)
	}
	if categories, ok := q["category"]; ok {
		criteria.Categories = models.NewStringSet(categories...)
	} else {
		criteria.Categories = models.NewStringSet(meta.Categories...)
	}
	return criteria, nil
}

func limitFromQuery(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ValidationWrap(err, "limit must be an integer")
	}
	return limit, nil
}

// toAppError translates engine failures into API errors. Criteria, attribute
// and domain errors are the caller's fault; anything else is internal.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, engine.ErrInvalidCriteria),
		errors.Is(err, engine.ErrInvalidAttribute),
		errors.Is(err, engine.ErrOutOfDomainValue):
		return apperrors.Validation(err.Error())
	default:
		return apperrors.InternalWrap(err, "analytics computation failed")
	}
}
