package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/clock"
	"github.com/carebridge-health/evv-timeclock-go/internal/config"
)

// clockctl drives one clock event against a running API: clocks out when the
// caregiver has an open session, otherwise clocks in with the given patient
// and employee. The GPS fix comes from flags, mirroring a device capture.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	var (
		baseURL    = flag.String("base-url", cfg.Client.BaseURL, "API base URL")
		patientID  = flag.String("patient", "", "patient id (clock-in only)")
		employeeID = flag.String("employee", "", "employee id (clock-in only)")
		lat        = flag.Float64("lat", 0, "device latitude")
		lon        = flag.Float64("lon", 0, "device longitude")
		accuracy   = flag.Float64("accuracy", 10, "device accuracy in meters")
		radius     = flag.Float64("radius", cfg.Geofence.RadiusFeet, "allowed geofence radius in feet")
		confirm    = flag.Bool("confirm", false, "confirm submission even when outside the geofence")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	api := clock.NewClient(*baseURL)
	provider := &clock.StaticLocationProvider{
		Latitude:  *lat,
		Longitude: *lon,
		Accuracy:  *accuracy,
	}
	controller := clock.NewController(api, provider, *radius)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	state, err := controller.Start(ctx)
	if err != nil {
		logger.Error("Failed to query active session", "error", err)
		os.Exit(1)
	}

	if state.ClockType == clock.ClockIn {
		if err := selectForClockIn(ctx, controller, api, *patientID, *employeeID); err != nil {
			logger.Error("Clock-in selection failed", "error", err)
			os.Exit(1)
		}
		logger.Info("No open session, clocking in", "patient", *patientID, "employee", *employeeID)
	} else {
		logger.Info("Open session found, clocking out", "timesheet_id", state.TimesheetID)
	}

	state, err = controller.CaptureLocation(ctx)
	if err != nil {
		logger.Error("Location capture failed", "error", err)
		os.Exit(1)
	}

	v := state.Validation
	logger.Info("Geofence check",
		"valid", v.Valid,
		"distance_feet", fmt.Sprintf("%.1f", v.DistanceFeet),
		"allowed_radius_feet", v.AllowedRadiusFeet,
	)

	state, err = controller.Submit(ctx, *confirm)
	if err != nil {
		if errors.Is(err, clock.ErrGeofenceNotConfirmed) {
			logger.Error("Outside the allowed radius; re-run with -confirm to override")
		} else {
			logger.Error("Submission failed", "error", err)
		}
		os.Exit(1)
	}

	switch state.Phase {
	case clock.PhaseClosed:
		logger.Info("Clocked out", "timesheet_id", state.TimesheetID)
	default:
		logger.Info("Clocked in", "timesheet_id", state.TimesheetID)
	}
}

func selectForClockIn(ctx context.Context, controller *clock.Controller, api clock.API, patientID, employeeID string) error {
	if patientID == "" || employeeID == "" {
		return errors.New("-patient and -employee are required when no session is open")
	}

	patients, err := api.ListPatients(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list patients: %w", err)
	}
	employees, err := api.ListEmployees(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	patientFound := false
	for _, p := range patients {
		if p.ID == patientID {
			controller.SelectPatient(p)
			patientFound = true
			break
		}
	}
	if !patientFound {
		return fmt.Errorf("patient %s not found", patientID)
	}

	for _, e := range employees {
		if e.ID == employeeID {
			if _, err := controller.SelectEmployee(e); err != nil {
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("employee %s not found", employeeID)
}
