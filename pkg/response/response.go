// Package response implements the JSON envelope shared by every endpoint:
// {success, message, data?, error?}, with list responses carrying an extra
// pagination block.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicart/medicart/pkg/pagination"
)

// Envelope is the standard response body.
type Envelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       interface{}      `json:"data,omitempty"`
	Error      string           `json:"error,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// OK writes a 200 envelope.
func OK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 envelope.
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 envelope with pagination metadata.
func List(c echo.Context, message string, data interface{}, meta pagination.Meta) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Pagination: &meta})
}

// Fail writes a failure envelope with the given status. The detail string is
// surfaced in the error field; it may be empty.
func Fail(c echo.Context, status int, message string, detail string) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Error: detail})
}

// FailErr is Fail with the detail taken from err.
func FailErr(c echo.Context, status int, message string, err error) error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return Fail(c, status, message, detail)
}
