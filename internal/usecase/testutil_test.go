package usecase

import (
	"context"
	"io"
	"testing"

	"docspot-odonto/internal/delivery/dto"
	"docspot-odonto/internal/domain/entity"
	"docspot-odonto/internal/repository"
	"docspot-odonto/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// usecaseEnv wires the real usecases to an in-memory SQLite database and a
// miniredis server, so tests exercise the same repositories, services and
// SQL paths the application runs in production.
type usecaseEnv struct {
	db           *gorm.DB
	redisServer  *miniredis.Miniredis
	auth         AuthUsecase
	appointments AppointmentUsecase
}

func newUsecaseEnv(t *testing.T) *usecaseEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database handle: %v", err)
	}
	// The in-memory database exists per connection; a second connection
	// would see an empty schema
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&entity.User{}, &entity.Appointment{}, &entity.AuditLog{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}

	redisServer := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	userRepo := repository.NewUserRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditRepo)
	cacheService := service.NewAppointmentCacheService(redisClient, log)

	return &usecaseEnv{
		db:           db,
		redisServer:  redisServer,
		auth:         NewAuthUsecase(db, log, userRepo, auditService),
		appointments: NewAppointmentUsecase(db, log, userRepo, appointmentRepo, cacheService, auditService),
	}
}

func (e *usecaseEnv) registerUser(t *testing.T, username, role string, clinic *string) *dto.UserResponse {
	t.Helper()

	user, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Password: "s3nha-forte",
		Role:     role,
		Name:     "Nome " + username,
		Email:    username + "@example.com",
		Phone:    "11999990000",
		Clinic:   clinic,
	})
	if err != nil {
		t.Fatalf("register %s as %s: %v", username, role, err)
	}
	return user
}

func (e *usecaseEnv) createAppointment(t *testing.T, doctorID string) *dto.AppointmentResponse {
	t.Helper()

	appointment, err := e.appointments.Create(context.Background(), &dto.CreateAppointmentRequest{
		DoctorID: doctorID,
		Service:  "Limpeza",
		Time:     "10:00",
		Date:     "2026-09-15",
		Price:    decimal.NewFromInt(150),
	})
	if err != nil {
		t.Fatalf("create appointment for doctor %s: %v", doctorID, err)
	}
	return appointment
}
