package timesheet

import (
	"testing"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLocation() Location {
	return Location{
		Latitude:   39.961,
		Longitude:  -82.991,
		Accuracy:   12.5,
		CapturedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestManualClockInRequest_Validate(t *testing.T) {
	valid := ManualClockInRequest{
		PatientID:  "p-1",
		EmployeeID: "e-1",
		Location:   validLocation(),
		Timestamp:  time.Date(2026, 3, 10, 9, 0, 5, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.PatientID = "  "
	err := missing.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "patient_id")

	badLat := valid
	badLat.Location.Latitude = 91
	err = badLat.Validate()
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "location.latitude")

	noTimestamp := valid
	noTimestamp.Timestamp = time.Time{}
	err = noTimestamp.Validate()
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "timestamp")
}

func TestManualClockOutRequest_Validate(t *testing.T) {
	valid := ManualClockOutRequest{
		TimesheetID: "ts-1",
		Location:    validLocation(),
		Timestamp:   time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.TimesheetID = ""
	err := missing.Validate()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "timesheet_id")

	badAccuracy := valid
	badAccuracy.Location.Accuracy = -1
	err = badAccuracy.Validate()
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "location.accuracy")
}

func TestTimesheetFilter_ValidateDefaults(t *testing.T) {
	f := TimesheetFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "clock_in_time", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)

	badStatus := "pending"
	f = TimesheetFilter{Status: &badStatus}
	assert.Error(t, f.Validate())
}
