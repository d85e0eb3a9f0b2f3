package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"driveshare/pkg/api"
	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/pkg/token"
	"driveshare/service"
	"driveshare/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.New("test", "error")
	tokens := token.NewIssuer("test-secret", 30*time.Minute)
	svc := service.New(memory.New(), tokens, bcrypt.MinCost, log)
	ts := httptest.NewServer(api.NewServer(svc, tokens, log).Routes())
	t.Cleanup(ts.Close)
	return ts
}

// do sends a JSON request with an optional bearer token and decodes the
// response body into out when out is non-nil.
func do(t *testing.T, ts *httptest.Server, method, path, bearer string, body, out interface{}) int {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func registerAndLoginHost(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()

	reg := models.RegisterRequest{
		FullName:             "Test Host",
		Email:                email,
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
	}
	status := do(t, ts, http.MethodPost, "/host/auth/register", "", reg, nil)
	require.Equal(t, http.StatusCreated, status)

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	status = do(t, ts, http.MethodPost, "/host/auth/login", "", models.LoginRequest{
		Email:    email,
		Password: "secret-password",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "bearer", login.TokenType)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func registerAndLoginClient(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()

	reg := models.RegisterRequest{
		FullName:             "Test Client",
		Email:                email,
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
	}
	status := do(t, ts, http.MethodPost, "/client/auth/register", "", reg, nil)
	require.Equal(t, http.StatusCreated, status)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	status = do(t, ts, http.MethodPost, "/client/auth/login", "", models.LoginRequest{
		Email:    email,
		Password: "secret-password",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	return login.AccessToken
}

func TestHostListingWorkflow(t *testing.T) {
	ts := newTestServer(t)
	hostToken := registerAndLoginHost(t, ts, "host@example.com")

	var car models.Car
	status := do(t, ts, http.MethodPost, "/cars/basics", hostToken, models.CarBasics{
		Name:        "Civic",
		Model:       "EX",
		BodyType:    "Sedan",
		Year:        2020,
		Description: "Reliable commuter.",
	}, &car)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, models.StageBasics, car.Stage)

	specsPath := fmt.Sprintf("/cars/%d/specs", car.ID)
	status = do(t, ts, http.MethodPut, specsPath, hostToken, models.CarSpecs{
		Seats:        5,
		FuelType:     "Gasoline",
		Transmission: "Automatic",
		Color:        "Blue",
		Mileage:      42000,
		Features:     []string{"AC", "Bluetooth"},
	}, &car)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StageSpecs, car.Stage)

	// Repeating a completed step is a workflow-order conflict.
	status = do(t, ts, http.MethodPut, specsPath, hostToken, models.CarSpecs{
		Seats: 5, FuelType: "Gasoline", Transmission: "Automatic", Color: "Blue",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	status = do(t, ts, http.MethodPut, fmt.Sprintf("/cars/%d/pricing", car.ID), hostToken, models.CarPricing{
		DailyRate:     40,
		WeeklyRate:    250,
		MonthlyRate:   900,
		MinRentalDays: 2,
		MinAge:        21,
		Rules:         "No smoking.",
	}, &car)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StagePricing, car.Stage)

	name := "Austin"
	status = do(t, ts, http.MethodPut, fmt.Sprintf("/cars/%d/location", car.ID), hostToken, models.CarLocation{
		LocationName: &name,
	}, &car)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StageComplete, car.Stage)

	// The finished record carries every stage's fields merged.
	var fetched models.Car
	status = do(t, ts, http.MethodGet, fmt.Sprintf("/cars/%d", car.ID), "", nil, &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StageComplete, fetched.Stage)
	assert.Equal(t, "Civic", fetched.Name)
	require.NotNil(t, fetched.Seats)
	assert.Equal(t, 5, *fetched.Seats)
	require.NotNil(t, fetched.LocationName)
	assert.Equal(t, "Austin", *fetched.LocationName)
}

func TestPublicListExcludesDrafts(t *testing.T) {
	ts := newTestServer(t)
	hostToken := registerAndLoginHost(t, ts, "host@example.com")

	var draft models.Car
	status := do(t, ts, http.MethodPost, "/cars/basics", hostToken, models.CarBasics{
		Name: "Draft", Model: "X", BodyType: "SUV", Year: 2021, Description: "wip",
	}, &draft)
	require.Equal(t, http.StatusCreated, status)

	var public []models.Car
	status = do(t, ts, http.MethodGet, "/cars", "", nil, &public)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, public)

	var mine []models.Car
	status = do(t, ts, http.MethodGet, "/host/cars", hostToken, nil, &mine)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, mine, 1)
	assert.Equal(t, draft.ID, mine[0].ID)
}

func TestOwnershipAcrossHosts(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := registerAndLoginHost(t, ts, "owner@example.com")
	otherToken := registerAndLoginHost(t, ts, "other@example.com")

	var car models.Car
	status := do(t, ts, http.MethodPost, "/cars/basics", ownerToken, models.CarBasics{
		Name: "Mine", Model: "S", BodyType: "Coupe", Year: 2019, Description: "owner's car",
	}, &car)
	require.Equal(t, http.StatusCreated, status)

	status = do(t, ts, http.MethodPut, fmt.Sprintf("/cars/%d/specs", car.ID), otherToken, models.CarSpecs{
		Seats: 4, FuelType: "Gasoline", Transmission: "Manual", Color: "Red",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	status := do(t, ts, http.MethodPost, "/cars/basics", "", models.CarBasics{
		Name: "NoAuth", Model: "X", BodyType: "SUV", Year: 2021, Description: "d",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = do(t, ts, http.MethodGet, "/host/me", "garbage-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// A client token is not accepted on host endpoints.
	clientToken := registerAndLoginClient(t, ts, "client@example.com")
	status = do(t, ts, http.MethodPost, "/cars/basics", clientToken, models.CarBasics{
		Name: "Nope", Model: "X", BodyType: "SUV", Year: 2021, Description: "d",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDuplicateRegistration(t *testing.T) {
	ts := newTestServer(t)
	registerAndLoginHost(t, ts, "dup@example.com")

	status := do(t, ts, http.MethodPost, "/host/auth/register", "", models.RegisterRequest{
		FullName:             "Again",
		Email:                "dup@example.com",
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestClientProfileLifecycle(t *testing.T) {
	ts := newTestServer(t)
	clientToken := registerAndLoginClient(t, ts, "renter@example.com")

	var me models.Client
	status := do(t, ts, http.MethodGet, "/client/me", clientToken, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "renter@example.com", me.Email)

	bio := "Road trip enthusiast."
	mobile := "+254712345678"
	var updated models.Client
	status = do(t, ts, http.MethodPut, "/client/profile", clientToken, models.ClientProfilePatch{
		Bio:          &bio,
		MobileNumber: &mobile,
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)

	status = do(t, ts, http.MethodPost, "/client/auth/logout", clientToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestPaymentMethods(t *testing.T) {
	ts := newTestServer(t)
	hostToken := registerAndLoginHost(t, ts, "payee@example.com")

	var mpesa models.PaymentMethod
	status := do(t, ts, http.MethodPost, "/host/payment-methods/mpesa", hostToken, models.MpesaPaymentRequest{
		MpesaNumber: "254712345678",
		IsDefault:   true,
	}, &mpesa)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, mpesa.IsDefault)

	status = do(t, ts, http.MethodPost, "/host/payment-methods/card", hostToken, models.CardPaymentRequest{
		CardNumber:  "4111111111111111",
		CVC:         "123",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 1,
		CardType:    "visa",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var methods []models.PaymentMethod
	status = do(t, ts, http.MethodGet, "/host/payment-methods", hostToken, nil, &methods)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, methods, 2)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	status := do(t, ts, http.MethodGet, "/health", "", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}
