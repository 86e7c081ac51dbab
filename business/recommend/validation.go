package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"materialAdvisor/domain"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterStructValidation(requirementSpecLevel, domain.RequirementSpec{})
		validate.RegisterStructValidation(feedbackEventLevel, domain.FeedbackEvent{})
	})
	return validate
}

// ValidateRequirements checks range ordering, finiteness and the electrical type.
func ValidateRequirements(spec domain.RequirementSpec) error {
	return toValidationError(getValidator().Struct(spec))
}

// ValidateFeedback checks an event before it is appended.
func ValidateFeedback(event domain.FeedbackEvent) error {
	return toValidationError(getValidator().Struct(event))
}

func requirementSpecLevel(sl validator.StructLevel) {
	spec := sl.Current().Interface().(domain.RequirementSpec)

	checkRange(sl, spec.TensileStrength, "tensile_strength", "TensileStrength")
	checkRange(sl, spec.Density, "density", "Density")
	checkRange(sl, spec.OperatingTemperature, "operating_temperature", "OperatingTemperature")
	checkRange(sl, spec.Budget, "budget", "Budget")

	if spec.Budget != nil {
		if spec.Budget.Min != nil && *spec.Budget.Min < 0 {
			sl.ReportError(spec.Budget.Min, "budget.min", "Budget", "gte", "0")
		}
		if spec.Budget.Max != nil && *spec.Budget.Max <= 0 {
			sl.ReportError(spec.Budget.Max, "budget.max", "Budget", "gt", "0")
		}
	}

	names := make([]string, 0, len(spec.Properties))
	for name := range spec.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r := spec.Properties[name]
		checkRange(sl, &r, "properties."+name, "Properties")
	}

	switch spec.ElectricalType {
	case "", domain.ElectricalAny, domain.ElectricalConductor, domain.ElectricalInsulator:
	default:
		sl.ReportError(spec.ElectricalType, "electrical_type", "ElectricalType", "oneof", "conductor insulator any")
	}
}

func checkRange(sl validator.StructLevel, r *domain.Range, field, structField string) {
	if r == nil {
		return
	}
	if r.Min != nil && !finite(*r.Min) {
		sl.ReportError(r.Min, field+".min", structField, "finite", "")
		return
	}
	if r.Max != nil && !finite(*r.Max) {
		sl.ReportError(r.Max, field+".max", structField, "finite", "")
		return
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		sl.ReportError(r.Min, field, structField, "ltefield", "max")
	}
}

func feedbackEventLevel(sl validator.StructLevel) {
	ev := sl.Current().Interface().(domain.FeedbackEvent)

	if ev.MaterialID == "" {
		sl.ReportError(ev.MaterialID, "material_id", "MaterialID", "required", "")
	}

	switch ev.FeedbackType {
	case domain.FeedbackRating:
		if ev.Rating == nil {
			sl.ReportError(ev.Rating, "rating", "Rating", "required_if", "feedback_type rating")
		} else if *ev.Rating < 1 || *ev.Rating > 5 {
			sl.ReportError(*ev.Rating, "rating", "Rating", "range", "1-5")
		}
	case domain.FeedbackSelection:
		if ev.Selected == nil {
			sl.ReportError(ev.Selected, "selected", "Selected", "required_if", "feedback_type selection")
		}
	default:
		sl.ReportError(ev.FeedbackType, "feedback_type", "FeedbackType", "oneof", "rating selection")
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{
			Field:   fe.Field(),
			Message: describe(fe),
			Err:     err,
		}
	}

	return &ValidationError{Message: err.Error(), Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "ltefield":
		return "min must not exceed max"
	case "finite":
		return "must be a finite number"
	case "range":
		return fmt.Sprintf("must be between %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be > %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
