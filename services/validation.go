// ABOUTME: Form validation for everything the browser submits
// ABOUTME: Validation errors are caught here before any upstream call is made

package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quizforge/quiz-gateway/models"
)

// FormValidator wraps a configured validator instance. Messages are
// user-facing and surfaced inline next to the offending field.
type FormValidator struct {
	validate *validator.Validate
}

func NewFormValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// A question must read as a question.
	v.RegisterValidation("endsquestion", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(strings.TrimSpace(fl.Field().String()), "?")
	})

	v.RegisterStructValidation(questionFormChecks, models.QuestionForm{})

	return &FormValidator{validate: v}
}

// questionFormChecks enforces the answer-set invariant: at least one answer
// marked correct. The minimum of two answers is a field tag.
func questionFormChecks(sl validator.StructLevel) {
	form := sl.Current().Interface().(models.QuestionForm)
	for _, r := range form.Reponses {
		if r.EstCorrecte {
			return
		}
	}
	sl.ReportError(form.Reponses, "Reponses", "reponses", "onecorrect", "")
}

// Check validates a form and returns one violation per failing field, or nil
// when the form is valid.
func (f *FormValidator) Check(form interface{}) []models.FieldViolation {
	err := f.validate.Struct(form)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.FieldViolation{{Field: "", Message: "Données invalides. Vérifiez vos informations."}}
	}

	violations := make([]models.FieldViolation, 0, len(validationErrs))
	for _, fe := range validationErrs {
		violations = append(violations, models.FieldViolation{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return violations
}

// messageFor maps a failed tag to the user-facing message.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est obligatoire"
	case "email":
		return "Adresse email invalide"
	case "min":
		if fe.Field() == "Reponses" {
			return "Une question doit avoir au moins 2 réponses."
		}
		return fmt.Sprintf("Ce champ doit contenir au moins %s caractères", fe.Param())
	case "max":
		return fmt.Sprintf("Ce champ ne peut pas dépasser %s caractères", fe.Param())
	case "endsquestion":
		return "Une question doit se terminer par un point d'interrogation (?)"
	case "onecorrect":
		return "Il faut au moins une réponse correcte."
	default:
		return "Valeur invalide"
	}
}
