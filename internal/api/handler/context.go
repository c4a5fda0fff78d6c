package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// bindAndValidate decodes the request body into req and validates it.
// Both failures surface as a ValidationFault so the error handler answers 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationFault("invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return domain.NewValidationFault(err.Error())
	}
	return nil
}
