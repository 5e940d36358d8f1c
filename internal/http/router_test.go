package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ridemarket/internal/auth"
	intconfig "ridemarket/internal/config"
	"ridemarket/internal/domain/models"
	h "ridemarket/internal/http/handlers"
	"ridemarket/internal/mq"
	"ridemarket/internal/services"
	"ridemarket/internal/store"
	"ridemarket/internal/ticket"
	"ridemarket/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "router-test-secret"

var testNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	time.Local = time.UTC
	utils.SetLogger(zap.NewNop().Sugar())
	os.Exit(m.Run())
}

func routerSeed() store.Seed {
	trip := func(id, from, to, driver string, capacity, seats int) models.Trip {
		return models.Trip{
			ID: id, DepartureID: from, DestinationID: to,
			DepartureTime: testNow.Add(24 * time.Hour), ArrivalTime: testNow.Add(27 * time.Hour),
			Capacity: capacity, SeatsAvailable: seats, PricePerSeat: decimal.NewFromInt(5000),
			AllowFullCar:   true,
			PaymentMethods: []models.PaymentMethod{models.PaymentCash, models.PaymentMobileMoney},
			DriverID:       driver,
		}
	}
	return store.Seed{
		Hotpoints: []models.Hotpoint{{ID: "hp_a", Name: "Akwa"}, {ID: "hp_b", Name: "Mvan"}},
		Users: []models.User{
			{ID: "r1", Name: "Rider One", Role: models.RoleRider},
			{ID: "r2", Name: "Rider Two", Role: models.RoleRider},
			{ID: "d1", Name: "Driver One", Role: models.RoleDriver},
			{ID: "ag1", Name: "Agency One", Role: models.RoleAgency},
		},
		Trips: []models.Trip{
			trip("t_a", "hp_a", "hp_b", "d1", 2, 2),
			trip("t_bus", "hp_b", "hp_a", "ag1", 10, 9),
			trip("t_c", "hp_a", "hp_b", "d1", 3, 2),
		},
		Bookings: []models.Booking{
			{ID: "b_s1", TripID: "t_bus", Passenger: models.PassengerRef{ID: "r1", Name: "Rider One"}, Seats: 1, CreatedAt: testNow},
			{ID: "b_s2", TripID: "t_c", Passenger: models.PassengerRef{ID: "r2", Name: "Rider Two"}, Seats: 1, CreatedAt: testNow},
		},
		Disputes: []models.Dispute{
			{ID: "dp_1", BookingID: "b_s1", ReporterID: "r1", Type: "overcharge", Description: "charged twice"},
			{ID: "dp_2", BookingID: "b_s2", ReporterID: "r2", Type: "delay", Description: "late"},
		},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	st := store.New()
	require.NoError(t, st.Load(routerSeed()))
	env := intconfig.Env{MetricsEnabled: true, JWTSecret: testSecret, CORSOrigins: []string{"http://app.example"}}
	return NewRouter(env, h.Handlers{
		Runtime: services.Runtime{
			Store:     st,
			Publisher: mq.NopPublisher{},
			Clock:     func() time.Time { return testNow },
		},
		Signer: ticket.ChecksumSigner{},
	})
}

func do(t *testing.T, r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func liveTrip(t *testing.T, r http.Handler, id string) map[string]any {
	t.Helper()
	w := do(t, r, http.MethodGet, "/api/trips/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	return decode(t, w)
}

func TestBookingScenarios(t *testing.T) {
	r := newTestRouter(t)

	// A
	w := do(t, r, http.MethodPost, "/api/bookings",
		`{"tripId":"t_a","passenger":"r1","seats":1,"paymentMethod":"cash","isFullCar":false}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := decode(t, w)
	assert.Equal(t, "upcoming", a["status"])
	assert.Equal(t, "cash_on_pickup", a["paymentStatus"])
	assert.Equal(t, "Akwa", a["trip"].(map[string]any)["departure"].(map[string]any)["name"])
	assert.EqualValues(t, 1, liveTrip(t, r, "t_a")["seatsAvailable"])
	bookingA := a["id"].(string)
	assert.True(t, strings.HasPrefix(a["ticketNumber"].(string), "IHT-B_"))

	// B, with a literal passenger object
	w = do(t, r, http.MethodPost, "/api/bookings",
		`{"tripId":"t_a","passenger":{"id":"walk_in","name":"Walk In"},"seats":1,"paymentMethod":"mobile_money"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode(t, w)
	assert.Equal(t, "paid", b["paymentStatus"])
	assert.Equal(t, "Walk In", b["passenger"].(map[string]any)["name"])
	live := liveTrip(t, r, "t_a")
	assert.EqualValues(t, 0, live["seatsAvailable"])
	assert.Equal(t, "full", live["status"])

	// C
	w = do(t, r, http.MethodPost, "/api/bookings",
		`{"tripId":"t_a","passenger":"r2","seats":1,"paymentMethod":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Trip is not available"}`, w.Body.String())

	// D
	w = do(t, r, http.MethodPost, "/api/bookings/"+bookingA+"/cancel", `{"passengerId":"r2"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, r, http.MethodPost, "/api/bookings/"+bookingA+"/cancel", `{"passengerId":"r1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", decode(t, w)["status"])
	live = liveTrip(t, r, "t_a")
	assert.EqualValues(t, 1, live["seatsAvailable"])
	assert.Equal(t, "active", live["status"])

	w = do(t, r, http.MethodPost, "/api/bookings/"+bookingA+"/cancel", `{"passengerId":"r1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Only upcoming bookings can be cancelled"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/bookings/b_nope/cancel", `{"passengerId":"r1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/bookings?passengerId=r1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestCreateBookingErrors(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/bookings", `{"tripId":"t_none","passenger":"r1","seats":1,"paymentMethod":"cash"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Trip not found"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/bookings", `{"tripId":"t_a","passenger":"r1","seats":1,"paymentMethod":"card"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Payment method not accepted for this trip"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/bookings", `{"tripId":"t_a","passenger":"r1","seats":0,"paymentMethod":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"seats must be a positive number"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/bookings", `{"tripId":"t_a","passenger":42,"seats":1,"paymentMethod":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/bookings", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w), "error")
}

func TestTicketScenarios(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/bookings/b_s2/ticket", "")
	require.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)["qrPayload"].(string)
	assert.True(t, strings.HasPrefix(payload, "IHTQR|tk_b_s2|b_s2|r2|d1|"))

	// E
	last := payload[len(payload)-1]
	tampered := payload[:len(payload)-1] + string("0123456789"[(int(last-'0')+1)%10])
	body, _ := json.Marshal(map[string]string{"payload": tampered})
	w = do(t, r, http.MethodPost, "/api/tickets/validate", string(body))
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.Equal(t, false, res["valid"])
	assert.Equal(t, "Invalid QR checksum", res["reason"])
	assert.NotEmpty(t, res["scannedAt"])

	body, _ = json.Marshal(map[string]string{"payload": payload, "validatorUserId": "d1"})
	w = do(t, r, http.MethodPost, "/api/tickets/validate", string(body))
	require.Equal(t, http.StatusOK, w.Code)
	res = decode(t, w)
	assert.Equal(t, true, res["valid"])
	assert.Equal(t, "b_s2", res["bookingId"])
	assert.Equal(t, "Rider Two", res["ticket"].(map[string]any)["passengerName"])

	body, _ = json.Marshal(map[string]string{"payload": payload, "validatorUserId": "ag1"})
	w = do(t, r, http.MethodPost, "/api/tickets/validate", string(body))
	assert.Equal(t, "Ticket belongs to another driver", decode(t, w)["reason"])

	w = do(t, r, http.MethodPost, "/api/tickets/validate", `not json`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Malformed QR payload", decode(t, w)["reason"])

	w = do(t, r, http.MethodGet, "/api/bookings/b_none/ticket", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestETicketPDF(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/bookings/b_s1/e-ticket", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ETICKET_IHT-B_S1-2026.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestDisputeScenarios(t *testing.T) {
	r := newTestRouter(t)

	// F
	w := do(t, r, http.MethodPatch, "/api/disputes/dp_1",
		`{"status":"resolved","resolution":"refunded","resolvedBy":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	d := decode(t, w)
	assert.Equal(t, "resolved", d["status"])
	assert.Equal(t, "admin", d["resolvedBy"])
	assert.NotEmpty(t, d["resolvedAt"])

	w = do(t, r, http.MethodPatch, "/api/disputes/dp_missing", `{"status":"open"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/disputes/dp_2/review", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_review", decode(t, w)["status"])

	w = do(t, r, http.MethodPost, "/api/disputes/dp_2/resolve", `{"resolution":"apologised"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/disputes",
		`{"bookingId":"b_s1","reporterId":"r2","type":"other","description":"not mine"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, "/api/disputes",
		`{"bookingId":"b_s1","reporterId":"ag1","type":"no_show","description":"rider absent"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDisputeAgencyScope(t *testing.T) {
	r := newTestRouter(t)
	tok, err := auth.CreateAccessToken([]byte(testSecret), "ag1", "agency", "ag1", time.Hour)
	require.NoError(t, err)
	bearer := "Bearer " + tok

	w := do(t, r, http.MethodGet, "/api/disputes", "", "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	var scoped []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scoped))
	require.Len(t, scoped, 1)
	assert.Equal(t, "dp_1", scoped[0]["id"])

	w = do(t, r, http.MethodGet, "/api/disputes/dp_2", "", "Authorization", bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/disputes", "")
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = do(t, r, http.MethodGet, "/api/disputes", "", "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	rider, err := auth.CreateAccessToken([]byte(testSecret), "r1", "rider", "", time.Hour)
	require.NoError(t, err)
	w = do(t, r, http.MethodPost, "/api/disputes/dp_1/review", "", "Authorization", "Bearer "+rider)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, "/api/disputes/dp_1/review", "", "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_review", decode(t, w)["status"])
}

func TestTripRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/trips?fromId=hp_a", "")
	require.Equal(t, http.StatusOK, w.Code)
	var trips []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trips))
	assert.Len(t, trips, 2)

	w = do(t, r, http.MethodGet, "/api/trips?date=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, "/api/trips/t_c/status", `{"driverId":"r1","status":"completed"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPatch, "/api/trips/t_c/status", `{"driverId":"d1","status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode(t, w)["status"])

	w = do(t, r, http.MethodPost, "/api/ratings", `{"bookingId":"b_s2","raterId":"r2","score":4}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/drivers/d1/ratings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, decode(t, w)["average"])
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(t, r, http.MethodGet, "/api/health", "", "X-Request-ID", "req-42")
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = do(t, r, http.MethodGet, "/api/routes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/tickets/validate")

	w = do(t, r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/notifications?userId=d1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterWithZeroEnv(t *testing.T) {
	st := store.New()
	require.NoError(t, st.Load(routerSeed()))

	var r *gin.Engine
	require.NotPanics(t, func() {
		r = NewRouter(intconfig.Env{}, h.Handlers{
			Runtime: services.Runtime{Store: st, Publisher: mq.NopPublisher{}},
			Signer:  ticket.ChecksumSigner{},
		})
	})

	w := do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodOptions, "/api/health", "",
		"Origin", "http://localhost:3000",
		"Access-Control-Request-Method", "GET")
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
