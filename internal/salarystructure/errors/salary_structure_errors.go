package salarystructureerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary structure not found",
		http.StatusNotFound,
	)
	ErrInvalidWage = apperror.New(
		apperror.CodeInvalidInput,
		"Wage must be a non-negative amount",
		http.StatusBadRequest,
	)
	ErrInvalidComponentKind = apperror.New(
		apperror.CodeInvalidInput,
		"Component kind must be Fixed or Percentage",
		http.StatusBadRequest,
	)
	ErrInvalidComponentBase = apperror.New(
		apperror.CodeInvalidInput,
		"Component base must be Wage or Basic",
		http.StatusBadRequest,
	)
	ErrDuplicateComponentName = apperror.New(
		apperror.CodeInvalidInput,
		"Component names must be unique within a structure",
		http.StatusBadRequest,
	)
	ErrComponentsExceedWage = apperror.New(
		apperror.CodeInvalidInput,
		"Resolved components exceed the configured wage",
		http.StatusBadRequest,
	)
)
