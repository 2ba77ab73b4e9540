package create_booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// минимальная длина канонического номера
const minPhoneDigits = 9

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Service = strings.TrimSpace(req.Service)
	req.Date = strings.TrimSpace(req.Date)

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, e := range verrs {
				fields = append(fields, e.Field()+": "+e.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate запрещает даты раньше сегодняшней в часовом поясе салона
func validateDate(date string, now time.Time, loc *time.Location) error {
	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date)
	}
	return nil
}

// composeRaw текстовое представление заявки, хранится в поле raw
func composeRaw(req *Request) string {
	lines := []string{
		"Service: " + req.Service,
		"Name: " + req.Name,
	}
	when := req.Date
	if req.Time != nil {
		when += " " + *req.Time
	}
	lines = append(lines, "Date: "+when)
	if req.Barber != nil && strings.TrimSpace(*req.Barber) != "" {
		lines = append(lines, "Barber: "+strings.TrimSpace(*req.Barber))
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) != "" {
		lines = append(lines, "Notes: "+strings.TrimSpace(*req.Notes))
	}
	return strings.Join(lines, "\n")
}
