package clock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/carebridge-health/evv-timeclock-go/internal/domain/employee"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/patient"
	"github.com/carebridge-health/evv-timeclock-go/internal/domain/timesheet"
)

// API is the remote timesheet surface the controller depends on.
type API interface {
	ListPatients(ctx context.Context, onlyComplete bool) ([]patient.PatientResponse, error)
	ListEmployees(ctx context.Context, onlyComplete bool) ([]employee.EmployeeResponse, error)
	ActiveTimesheet(ctx context.Context, employeeID string) (*timesheet.TimesheetResponse, error)
	ManualClockIn(ctx context.Context, req timesheet.ManualClockInRequest) (timesheet.TimesheetResponse, error)
	ManualClockOut(ctx context.Context, req timesheet.ManualClockOutRequest) (timesheet.TimesheetResponse, error)
}

// APIError carries the server-reported reason verbatim so the UI can surface
// it without rewording.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("timesheet API error [%d] %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

// Client is the HTTP implementation of API against the dashboard backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	reqBody := &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  "UNREADABLE_RESPONSE",
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  "UNKNOWN",
			Message:    http.StatusText(resp.StatusCode),
		}
		if env.Error != nil {
			apiErr.ErrorCode = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// ListPatients implements API. Returns an empty slice on failure so callers
// rendering reference lists can degrade gracefully.
func (c *Client) ListPatients(ctx context.Context, onlyComplete bool) ([]patient.PatientResponse, error) {
	path := "/api/v1/patients"
	if onlyComplete {
		path += "?is_complete=true"
	}

	var data patient.ListPatientsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return []patient.PatientResponse{}, err
	}
	return data.Patients, nil
}

// ListEmployees implements API.
func (c *Client) ListEmployees(ctx context.Context, onlyComplete bool) ([]employee.EmployeeResponse, error) {
	path := "/api/v1/employees"
	if onlyComplete {
		path += "?is_complete=true"
	}

	var data employee.ListEmployeesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return []employee.EmployeeResponse{}, err
	}
	return data.Employees, nil
}

// ActiveTimesheet implements API. A nil timesheet means no open session.
func (c *Client) ActiveTimesheet(ctx context.Context, employeeID string) (*timesheet.TimesheetResponse, error) {
	path := "/api/v1/timesheets/active"
	if employeeID != "" {
		path += "?employee_id=" + url.QueryEscape(employeeID)
	}

	var data timesheet.ActiveTimesheetResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Timesheet, nil
}

// ManualClockIn implements API.
func (c *Client) ManualClockIn(ctx context.Context, req timesheet.ManualClockInRequest) (timesheet.TimesheetResponse, error) {
	var data timesheet.TimesheetResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/timesheets/manual-clock-in", req, &data); err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return data, nil
}

// ManualClockOut implements API.
func (c *Client) ManualClockOut(ctx context.Context, req timesheet.ManualClockOutRequest) (timesheet.TimesheetResponse, error) {
	var data timesheet.TimesheetResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/timesheets/manual-clock-out", req, &data); err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return data, nil
}
