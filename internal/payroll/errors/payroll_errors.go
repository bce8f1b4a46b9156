package payrollerrors

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
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be 1-12 and year must be reasonable",
		http.StatusBadRequest,
	)
	ErrDuplicatePayroll = apperror.New(
		apperror.CodeConflict,
		"Payroll already exists for this employee and period, edit it instead",
		http.StatusConflict,
	)
	ErrMissingSalaryStructure = apperror.New(
		apperror.CodeInvalidState,
		"Employee has no salary structure with a positive wage",
		http.StatusConflict,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll record not found",
		http.StatusNotFound,
	)
	ErrPayrollAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"Payroll has already been marked as paid",
		http.StatusConflict,
	)
)
