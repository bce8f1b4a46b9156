package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-hrm/internal/attendance"
	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/messaging/kafka/consumer"
	"go-hrm/internal/payroll"
	"go-hrm/internal/salarystructure"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/shared/counter"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	structureRepo := salarystructure.NewRepository(gormDB)
	structureService := salarystructure.NewService(gormDB, structureRepo, logger)

	leaveRepo := leave.NewRepository(gormDB)
	leaveService := leave.NewService(gormDB, leaveRepo, logger)
	attendanceRepo := attendance.NewRepository(gormDB)
	attendanceService := attendance.NewService(gormDB, attendanceRepo, leaveService, logger, standardDayHours())
	employeeRepo := employee.NewRepository(gormDB)
	employeeService := employee.NewService(gormDB, employeeRepo, counter.NewRepository(gormDB), nil, nil, logger)
	payrollRepo := payroll.NewRepository(gormDB)
	payrollService := payroll.NewService(
		gormDB, payrollRepo,
		attendanceService, leaveService, structureService, employeeService,
		kafka.NewOutboxRepository(gormDB), logger,
	)

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "go-hrm-salary-structure",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	payrollReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayrollGeneratedTopic,
		GroupID:        "go-hrm-payslip",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer payrollReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, structureService, logger)
	go consumer.ConsumePayrollGenerated(ctx, payrollReader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
