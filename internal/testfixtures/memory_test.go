package testfixtures

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceStore_MirrorsRepositoryContract(t *testing.T) {
	ctx := context.Background()
	alice := NewEmployee("EMP001")
	roster := NewEmployeeStore(alice)
	store := NewAttendanceStore(roster)

	rec := CheckedIn(alice, At(8, 15, time.UTC))
	_, err := store.Create(ctx, rec)
	require.NoError(t, err)

	_, err = store.Create(ctx, rec)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	checkOut := At(17, 0, time.UTC)
	rec.CheckOutTime = &checkOut
	_, err = store.RecordCheckOut(ctx, rec)
	require.NoError(t, err)

	_, err = store.RecordCheckOut(ctx, rec)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	list, err := store.List(ctx, attendance.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "EMP001", *list[0].EmployeeCode)
}

func TestCheckedOut_ComputesHours(t *testing.T) {
	rec := CheckedOut(NewEmployee("EMP001"), At(9, 0, time.UTC), At(17, 30, time.UTC))
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, "8.50", rec.TotalHours.StringFixed(2))
}
