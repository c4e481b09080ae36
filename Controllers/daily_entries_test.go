package Controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))

	app := fiber.New()
	handler := NewDailyEntryHandler(db)
	app.Get("/api/daily-entries/reference", handler.GenerateReference)
	app.Get("/api/daily-entries", handler.GetAll)
	app.Post("/api/daily-entries", handler.Create)
	app.Get("/api/daily-entries/:id", handler.Get)

	return app, db
}

func seedEntryFixtures(t *testing.T, db *gorm.DB) (Models.Site, Models.Vehicle, Models.Employee) {
	t.Helper()

	site := Models.Site{Name: "Hospet Quarry"}
	require.NoError(t, db.Create(&site).Error)
	vehicle := Models.Vehicle{Name: "Lorry 1", PlateNo: "KA-35-0001", RPM: 100}
	require.NoError(t, db.Create(&vehicle).Error)
	employee := Models.Employee{Name: "Ravi", Role: "operator"}
	require.NoError(t, db.Create(&employee).Error)

	return site, vehicle, employee
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateDailyEntry(t *testing.T) {
	app, db := newTestApp(t)
	site, vehicle, employee := seedEntryFixtures(t, db)

	resp := postJSON(t, app, "/api/daily-entries", map[string]interface{}{
		"date":                "2026-06-10T00:00:00Z",
		"site_id":             site.ID,
		"vehicle_id":          vehicle.ID,
		"vehicle_opening_rpm": 100,
		"vehicle_closing_rpm": 140,
		"employee_id":         employee.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Entry Models.DailyEntry `json:"entry"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "DE-001-26", body.Entry.Code)
	assert.Equal(t, "system", body.Entry.CreatedBy)

	var reloaded Models.Vehicle
	require.NoError(t, db.First(&reloaded, vehicle.ID).Error)
	assert.Equal(t, 140.0, reloaded.RPM)
}

func TestCreateDailyEntryValidation(t *testing.T) {
	app, _ := newTestApp(t)

	// Missing the required references.
	resp := postJSON(t, app, "/api/daily-entries", map[string]interface{}{
		"date": "2026-06-10T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateDailyEntryUnknownVehicle(t *testing.T) {
	app, db := newTestApp(t)
	site, _, employee := seedEntryFixtures(t, db)

	resp := postJSON(t, app, "/api/daily-entries", map[string]interface{}{
		"date":        "2026-06-10T00:00:00Z",
		"site_id":     site.ID,
		"vehicle_id":  999,
		"employee_id": employee.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGenerateDailyEntryReference(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/daily-entries/reference", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, strings.HasPrefix(body["code"], "DE-001-"))
}

func TestGetDailyEntryNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/daily-entries/42", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
