package employee

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/rbac"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

type fakeRepo struct {
	createFn      func(ctx context.Context, e *Employee) error
	updateFn      func(ctx context.Context, e *Employee) error
	deleteFn      func(ctx context.Context, id string) error
	findByIDFn    func(ctx context.Context, id string) (*Employee, error)
	findAllFn     func(ctx context.Context) ([]Employee, error)
	findOptionsFn func(ctx context.Context) ([]Employee, error)
}

func (r *fakeRepo) WithTx(tx *gorm.DB) Repository                 { return r }
func (r *fakeRepo) Create(ctx context.Context, e *Employee) error { return r.createFn(ctx, e) }
func (r *fakeRepo) Update(ctx context.Context, e *Employee) error { return r.updateFn(ctx, e) }
func (r *fakeRepo) Delete(ctx context.Context, id string) error   { return r.deleteFn(ctx, id) }
func (r *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return r.findByIDFn(ctx, id)
}
func (r *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return r.findAllFn(ctx)
}
func (r *fakeRepo) FindOptions(ctx context.Context) ([]Employee, error) {
	return r.findOptionsFn(ctx)
}

type fakeCounter struct {
	next int64
	err  error
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, f.err
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (o *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return o }
func (o *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	o.events = append(o.events, event)
	return nil
}
func (o *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (o *fakeOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (o *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestCreateEmployee(t *testing.T) {
	t.Run("assigns generated number and writes outbox event", func(t *testing.T) {
		gdb, mock := newTestDB(t)

		var created *Employee
		repo := &fakeRepo{
			createFn: func(ctx context.Context, e *Employee) error {
				created = e
				return nil
			},
		}
		outbox := &fakeOutbox{}
		svc := NewService(gdb, repo, &fakeCounter{}, outbox, nil, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
			FullName: "Anita Desai",
			Email:    "anita@example.com",
			JoinDate: "2024-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
		// Role falls back to the lowest-privilege default.
		assert.Equal(t, rbac.RoleEmployee, resp.Role)
		assert.NotNil(t, created)

		assert.Len(t, outbox.events, 1)
		assert.Equal(t, events.EmployeeCreatedTopic, outbox.events[0].Topic)
		assert.Equal(t, events.EventTypeEmployeeCreated, outbox.events[0].EventType)
		assert.Equal(t, created.ID.String(), outbox.events[0].AggregateID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps explicit employee number", func(t *testing.T) {
		gdb, mock := newTestDB(t)

		repo := &fakeRepo{
			createFn: func(ctx context.Context, e *Employee) error { return nil },
		}
		svc := NewService(gdb, repo, &fakeCounter{}, &fakeOutbox{}, nil, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
			FullName:       "Ravi Kumar",
			Email:          "ravi@example.com",
			JoinDate:       "2024-02-01",
			Role:           rbac.RoleHROfficer,
			EmployeeNumber: "EMP-900001",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-900001", resp.EmployeeNumber)
		assert.Equal(t, rbac.RoleHROfficer, resp.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		gdb, _ := newTestDB(t)
		svc := NewService(gdb, &fakeRepo{}, &fakeCounter{}, &fakeOutbox{}, nil, zap.NewNop())

		_, err := svc.Create(context.Background(), CreateEmployeeRequest{
			FullName: "X",
			Email:    "x@example.com",
			JoinDate: "2024-02-01",
			Role:     "Superuser",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
	})

	t.Run("rejects malformed join date", func(t *testing.T) {
		gdb, _ := newTestDB(t)
		svc := NewService(gdb, &fakeRepo{}, &fakeCounter{}, &fakeOutbox{}, nil, zap.NewNop())

		_, err := svc.Create(context.Background(), CreateEmployeeRequest{
			FullName: "X",
			Email:    "x@example.com",
			JoinDate: "15-01-2024",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoinDate)
	})
}

func TestGetOptions_SingleFetchWithoutCache(t *testing.T) {
	gdb, _ := newTestDB(t)

	calls := 0
	repo := &fakeRepo{
		findOptionsFn: func(ctx context.Context) ([]Employee, error) {
			calls++
			return []Employee{
				{ID: uuid.New(), EmployeeNumber: "EMP-000001", FullName: "Anita Desai"},
			}, nil
		},
	}
	svc := NewService(gdb, repo, &fakeCounter{}, &fakeOutbox{}, nil, zap.NewNop())

	resp, err := svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, 1, calls)
}

func TestNameByID(t *testing.T) {
	gdb, _ := newTestDB(t)

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return &Employee{ID: uuid.New(), FullName: "Anita Desai"}, nil
		},
	}
	svc := NewService(gdb, repo, &fakeCounter{}, &fakeOutbox{}, nil, zap.NewNop())

	name, err := svc.NameByID(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, "Anita Desai", name)
}

func TestNameByID_NotFound(t *testing.T) {
	gdb, _ := newTestDB(t)

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(gdb, repo, &fakeCounter{}, &fakeOutbox{}, nil, zap.NewNop())

	_, err := svc.NameByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}
