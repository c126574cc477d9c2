package main

import (
	"fmt"
	"net/http"

	"github.com/carebridge-health/evv-timeclock-go/internal/config"
	appHTTP "github.com/carebridge-health/evv-timeclock-go/internal/handler/http"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/cron"
	"github.com/carebridge-health/evv-timeclock-go/internal/pkg/database"
	"github.com/carebridge-health/evv-timeclock-go/internal/repository/postgresql"
	timesheetService "github.com/carebridge-health/evv-timeclock-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	patientRepo := postgresql.NewPatientRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)

	timesheetSvc := timesheetService.NewTimesheetService(
		db,
		timesheetRepo,
		patientRepo,
		employeeRepo,
		cfg.Geofence.RadiusFeet,
	)

	patientHandler := appHTTP.NewPatientHandler(patientRepo)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)

	router := appHTTP.NewRouter(
		cfg.App.FrontendURL,
		patientHandler,
		employeeHandler,
		timesheetHandler,
	)

	scheduler := cron.NewScheduler()
	timesheetJobs := cron.NewTimesheetJobs(timesheetRepo, cfg.Geofence.StaleOpenSessionAfter)
	timesheetJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
