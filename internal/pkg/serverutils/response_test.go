package serverutils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type createBookingInput struct {
	LawyerID    uuid.UUID `validate:"required"`
	Date        string    `validate:"required"`
	Price       float64   `validate:"omitempty,gte=0"`
	ActualPhone string    `validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	valid := createBookingInput{
		LawyerID:    uuid.New(),
		Date:        "2026-03-15",
		Price:       150000,
		ActualPhone: "0901234567",
	}
	assert.NoError(t, ValidateRequest(&valid))

	missingPhone := valid
	missingPhone.ActualPhone = ""
	assert.Error(t, ValidateRequest(&missingPhone))

	// Price is optional: pro-bono consultations book at zero.
	freeBooking := valid
	freeBooking.Price = 0
	assert.NoError(t, ValidateRequest(&freeBooking))
}

func TestResponseEnvelopes(t *testing.T) {
	ok := SuccessResponse("created", 42)
	assert.True(t, ok.Success)
	assert.Equal(t, "created", ok.Message)
	assert.Equal(t, 42, ok.Data)

	bad := ErrorResponse(409, "slot taken")
	assert.False(t, bad.Success)
	assert.Equal(t, 409, bad.Code)
	assert.Equal(t, "slot taken", bad.Message)
}
