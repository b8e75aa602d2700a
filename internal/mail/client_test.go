package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/akinfotech/rma-backend/internal/models"
)

func testRMA() *models.RMA {
	return &models.RMA{
		ID:           uuid.New(),
		ContactName:  "Anna Smirnova",
		ContactEmail: "anna@example.com",
		Brand:        "Lenovo",
		ModelNumber:  "ThinkPad T14",
		SerialNumber: "SN-4412-0093",
	}
}

func TestClient_SendConfirmation(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "no-reply@example.com", "Service Desk")
	rma := testRMA()

	err := client.SendConfirmation(context.Background(), rma)

	assert.NoError(t, err)
	assert.Equal(t, "/smtp/email", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "no-reply@example.com", gotBody.Sender.Email)
	assert.Equal(t, "anna@example.com", gotBody.To[0].Email)
	assert.Equal(t, "[RMA] Your Return Request "+rma.ID.String()+" has been received", gotBody.Subject)
	assert.Contains(t, gotBody.HTMLContent, "Lenovo ThinkPad T14")
}

func TestClient_SendReady_IncludesOTP(t *testing.T) {
	var gotBody sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "no-reply@example.com", "Service Desk")
	rma := testRMA()

	err := client.SendReady(context.Background(), rma, "423817")

	assert.NoError(t, err)
	assert.Equal(t, "[RMA] Your Return "+rma.ID.String()+" is Ready", gotBody.Subject)
	assert.Contains(t, gotBody.HTMLContent, "423817")
}

func TestClient_SendDelivered(t *testing.T) {
	var gotBody sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "no-reply@example.com", "Service Desk")
	rma := testRMA()

	err := client.SendDelivered(context.Background(), rma)

	assert.NoError(t, err)
	assert.Equal(t, "[RMA] Your Return "+rma.ID.String()+" has been Delivered", gotBody.Subject)
}

func TestClient_Send_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Key not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", "no-reply@example.com", "Service Desk")

	err := client.SendConfirmation(context.Background(), testRMA())

	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "401"))
}
