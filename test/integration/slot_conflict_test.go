package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/model"
	"legal-consult-be/internal/repository/implementation"
	"legal-consult-be/internal/repository/unitofwork"
	"legal-consult-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the partial unique slot index against a real Postgres: two
// bookings on the same slot must collide, and cancelling the first must
// free the slot for a third.
func TestSlotConflictConstraint(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Lawyer{}, &model.Booking{}))

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        "slot-test-" + uuid.NewString() + "@example.com",
		FullName:     "Slot Tester",
		PasswordHash: "x",
		Role:         entity.UserRoleCustomer,
		IsVerified:   true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	defer db.Exec("DELETE FROM users WHERE id = ?", user.Id)

	lawyer := &entity.Lawyer{
		Id:         uuid.New(),
		UserID:     user.Id,
		LicenseNo:  "IT-" + uuid.NewString()[:8],
		IsApproved: true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, uow.LawyerRepository().Create(ctx, lawyer))
	defer db.Exec("DELETE FROM lawyers WHERE id = ?", lawyer.Id)

	newBooking := func() *entity.Booking {
		return &entity.Booking{
			ID:            entity.NewBookingID(),
			UserID:        user.Id,
			LawyerID:      lawyer.Id,
			Date:          "2031-01-15",
			TimeSlot:      entity.TimeSlot{Start: "09:00", End: "10:00"},
			Status:        entity.BookingStatusPending,
			PaymentStatus: entity.PaymentStatusUnpaid,
			Price:         100000,
			ActualPhone:   "0900000000",
			PayoutStatus:  entity.PayoutStatusNA,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
	}
	defer db.Exec("DELETE FROM bookings WHERE lawyer_id = ?", lawyer.Id)

	first := newBooking()
	require.NoError(t, uow.BookingRepository().Create(ctx, first))

	second := newBooking()
	err = uow.BookingRepository().Create(ctx, second)
	require.Error(t, err)
	assert.True(t, implementation.IsDuplicateKeyError(err), "expected duplicate key, got: %v", err)

	// A cancelled booking must not block the slot.
	first.Status = entity.BookingStatusCancelled
	require.NoError(t, uow.BookingRepository().Update(ctx, first))

	third := newBooking()
	assert.NoError(t, uow.BookingRepository().Create(ctx, third))
}
