package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-hrm/internal/payroll"
	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/rbac"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	generateFn func(ctx context.Context, actorID string, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error)
	getAllFn   func(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, error)
	getByIDFn  func(ctx context.Context, id string) (payroll.PayrollResponse, error)
	updateFn   func(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error)
	markPaidFn func(ctx context.Context, id string) (payroll.PayrollResponse, error)
	payslipFn  func(ctx context.Context, id string) ([]byte, error)
}

func (f *fakePayrollService) Generate(ctx context.Context, actorID string, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	return f.generateFn(ctx, actorID, req)
}
func (f *fakePayrollService) GetAll(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, filter)
}
func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakePayrollService) Update(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakePayrollService) MarkPaid(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.markPaidFn(ctx, id)
}
func (f *fakePayrollService) GeneratePayslip(ctx context.Context, id string) ([]byte, error) {
	return f.payslipFn(ctx, id)
}

func TestPayrollHandler_Generate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.NewString()
		employeeID := uuid.NewString()

		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, aid string, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, 6, req.Month)
				return payroll.PayrollResponse{
					ID:         uuid.NewString(),
					EmployeeID: req.EmployeeID,
					Month:      req.Month,
					Year:       req.Year,
					NetSalary:  "46800.00",
					Status:     payroll.StatusUnpaid,
				}, nil
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","month":6,"year":2024}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", actorID)

		h.Generate(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got payroll.PayrollResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "46800.00", got.NetSalary)
	})

	t.Run("duplicate period", func(t *testing.T) {
		svc := &fakePayrollService{
			generateFn: func(ctx context.Context, aid string, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
				return payroll.PayrollResponse{}, payrollerrors.ErrDuplicatePayroll
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.NewString() + `","month":6,"year":2024}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.NewString())

		h.Generate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("missing body fields", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.NewString())

		h.Generate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPayrollHandler_GetAll(t *testing.T) {
	t.Run("employee role is scoped to own records", func(t *testing.T) {
		actorID := uuid.NewString()
		svc := &fakePayrollService{
			getAllFn: func(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, error) {
				assert.Equal(t, actorID, filter.EmployeeID)
				return []payroll.PayrollResponse{}, nil
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls?employee_id="+uuid.NewString(), nil)
		c.Set("employee_id", actorID)
		c.Set("role", rbac.RoleEmployee)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("paginates results", func(t *testing.T) {
		rows := make([]payroll.PayrollResponse, 15)
		for i := range rows {
			rows[i] = payroll.PayrollResponse{ID: uuid.NewString()}
		}
		svc := &fakePayrollService{
			getAllFn: func(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, error) {
				return rows, nil
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls?page=2&page_size=10", nil)
		c.Set("role", rbac.RolePayrollOfficer)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []payroll.PayrollResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 5)
	})
}

func TestPayrollHandler_Payslip(t *testing.T) {
	t.Run("streams pdf", func(t *testing.T) {
		svc := &fakePayrollService{
			payslipFn: func(ctx context.Context, id string) ([]byte, error) {
				return []byte("%PDF-1.4\nfake"), nil
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/123/payslip", nil)
		c.Params = gin.Params{{Key: "id", Value: "123"}}

		h.Payslip(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-123.pdf")
		assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakePayrollService{
			payslipFn: func(ctx context.Context, id string) ([]byte, error) {
				return nil, payrollerrors.ErrPayrollNotFound
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/404/payslip", nil)
		c.Params = gin.Params{{Key: "id", Value: "404"}}

		h.Payslip(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
