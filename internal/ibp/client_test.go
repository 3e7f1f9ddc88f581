package ibp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datahealth_api/config"
	"datahealth_api/internal/masterdata/models"
)

func testConfig(url string) config.IBPConfig {
	return config.IBPConfig{
		URL:               url,
		Client:            "100",
		Username:          "monitor",
		Password:          "secret",
		RequestsPerMinute: 6000,
		Burst:             100,
	}
}

func TestFetchMasterData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok, "expected basic auth")
		assert.Equal(t, "monitor@100", user)
		assert.Equal(t, "/sap/opu/odata/IBP/PRODUCT_MASTER_SRV/Products", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"d":{"results":[
			{"ProductID":"P1","ProductName":"Premium Widget","ProductCategory":"FG",
			 "UnitOfMeasure":"EA","GrossWeight":"10.5","NetWeight":"9.0","Price":12.5,
			 "Active":true,"LastUpdated":"/Date(1700000000000)/"},
			{"ProductID":"P2","ProductName":"Standard Valve","ProductCategory":"RAW",
			 "UnitOfMeasure":"KG","Price":null,"Active":"false"}
		]}}`)
	}))
	defer server.Close()

	connector := NewConnector(testConfig(server.URL), io.Discard)
	ds, err := connector.FetchMasterData(context.Background(), models.Products)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.RecordCount())
	assert.Equal(t, "P1", ds.Cell(0, "product_id").Text())
	assert.InDelta(t, 10.5, ds.Cell(0, "gross_weight").Number(), 0.001)
	assert.False(t, ds.Cell(0, "last_updated").IsNull())
	assert.True(t, ds.Cell(1, "price").IsNull())
	assert.False(t, ds.Cell(1, "active").Bool())
	// Properties the feed never sent become nulls.
	assert.True(t, ds.Cell(1, "shelf_life").IsNull())
}

func TestFetchMasterDataErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	connector := NewConnector(testConfig(server.URL), io.Discard)
	_, err := connector.FetchMasterData(context.Background(), models.Products)
	assert.Error(t, err)
}

func TestSubmitCorrectionFetchesCSRFToken(t *testing.T) {
	var tokenFetches, patches int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == authPath && r.Header.Get("x-csrf-token") == "fetch":
			tokenFetches++
			w.Header().Set("x-csrf-token", "token-123")
			w.WriteHeader(http.StatusOK)

		case r.Method == http.MethodPatch:
			patches++
			assert.Equal(t, "token-123", r.Header.Get("x-csrf-token"))
			assert.Equal(t, "/sap/opu/odata/IBP/PRODUCT_MASTER_SRV/Products('P1')", r.URL.Path)

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "EA", payload["UnitOfMeasure"])
			w.WriteHeader(http.StatusNoContent)

		default:
			http.Error(w, "unexpected request", http.StatusBadRequest)
		}
	}))
	defer server.Close()

	connector := NewConnector(testConfig(server.URL), io.Discard)

	fields := map[string]interface{}{"unit_of_measure": "EA"}
	require.NoError(t, connector.SubmitCorrection(context.Background(), models.Products, "P1", fields))
	require.NoError(t, connector.SubmitCorrection(context.Background(), models.Products, "P1", fields))

	// The token is cached between corrections.
	assert.Equal(t, 1, tokenFetches)
	assert.Equal(t, 2, patches)
}

func TestTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, authPath, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	connector := NewConnector(testConfig(server.URL), io.Discard)
	assert.NoError(t, connector.TestConnection(context.Background()))

	bad := NewConnector(testConfig("http://127.0.0.1:1"), io.Discard)
	assert.Error(t, bad.TestConnection(context.Background()))
}

func TestSyncServicePartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sap/opu/odata/IBP/PRODUCT_MASTER_SRV/Products" {
			io.WriteString(w, `{"d":{"results":[{"ProductID":"P1"}]}}`)
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	connector := NewConnector(testConfig(server.URL), io.Discard)
	service := NewSyncService(connector, 2, io.Discard)

	datasets, err := service.Sync(context.Background(), []models.DataType{models.Products, models.Locations})
	require.NoError(t, err)
	require.Contains(t, datasets, models.Products)
	assert.NotContains(t, datasets, models.Locations)
	assert.Equal(t, 1, datasets[models.Products].RecordCount())
}

func TestSyncServiceAllFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	connector := NewConnector(testConfig(server.URL), io.Discard)
	service := NewSyncService(connector, 2, io.Discard)

	_, err := service.Sync(context.Background(), []models.DataType{models.Products})
	assert.Error(t, err)
}
