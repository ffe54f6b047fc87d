package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rooman-dev/agl-new/internal/api/metrics"
	"github.com/rooman-dev/agl-new/internal/core/domain"
	"github.com/rooman-dev/agl-new/internal/core/ports"
)

// FormHandler relays the public contact and consultation forms.
type FormHandler struct {
	service ports.FormService
}

func NewFormHandler(service ports.FormService) *FormHandler {
	return &FormHandler{service: service}
}

// Contact handles POST /api/contact/contact.
//
// @Summary      Submit the contact form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      200   {object}  formResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/contact/contact [post]
func (h *FormHandler) Contact(c echo.Context) error {
	const form = string(domain.FormContact)

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(form, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	}
	trimAll(&req.Name, &req.Email, &req.Phone, &req.Subject, &req.Message)
	if err := c.Validate(&req); err != nil {
		return h.fail(form, err)
	}

	err := h.service.SubmitContact(c.Request().Context(), ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return h.fail(form, err)
	}

	metrics.FormSubmissionsTotal.WithLabelValues(form, "relayed").Inc()
	return c.JSON(http.StatusOK, formResponse{Success: true, Message: "Email sent successfully"})
}

// Consultation handles POST /api/contact/consultation.
//
// @Summary      Submit the consultation request form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body  body      consultationRequest  true  "Consultation request"
// @Success      200   {object}  formResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/contact/consultation [post]
func (h *FormHandler) Consultation(c echo.Context) error {
	const form = string(domain.FormConsultation)

	var req consultationRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(form, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	}
	trimAll(&req.Name, &req.Email, &req.Phone, &req.Company, &req.Website, &req.Service, &req.Budget, &req.Message)
	if err := c.Validate(&req); err != nil {
		return h.fail(form, err)
	}

	err := h.service.SubmitConsultation(c.Request().Context(), ports.ConsultationInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Website: req.Website,
		Service: req.Service,
		Budget:  req.Budget,
		Message: req.Message,
	})
	if err != nil {
		return h.fail(form, err)
	}

	metrics.FormSubmissionsTotal.WithLabelValues(form, "relayed").Inc()
	return c.JSON(http.StatusOK, formResponse{Success: true, Message: "Consultation request sent successfully"})
}

func (h *FormHandler) fail(form string, err error) error {
	var he *echo.HTTPError
	result := "error"
	switch {
	case errors.Is(err, domain.ErrValidation), errors.As(err, &he):
		result = "invalid"
	case errors.Is(err, domain.ErrDeliveryFailure):
		result = "delivery_failed"
	}
	metrics.FormSubmissionsTotal.WithLabelValues(form, result).Inc()
	return err
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
