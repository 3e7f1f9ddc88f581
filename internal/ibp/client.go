package ibp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/time/rate"

	"datahealth_api/config"
	"datahealth_api/internal/masterdata/models"
	"datahealth_api/pkg/logger"
)

// OData service paths per master data type.
var endpoints = map[models.DataType]string{
	models.Products:     "/sap/opu/odata/IBP/PRODUCT_MASTER_SRV/Products",
	models.Locations:    "/sap/opu/odata/IBP/LOCATION_MASTER_SRV/Locations",
	models.Customers:    "/sap/opu/odata/IBP/CUSTOMER_MASTER_SRV/Customers",
	models.Suppliers:    "/sap/opu/odata/IBP/SUPPLIER_MASTER_SRV/Suppliers",
	models.TimeProfiles: "/sap/opu/odata/IBP/TIME_PROFILE_SRV/TimeProfiles",
	models.Resources:    "/sap/opu/odata/IBP/RESOURCE_MASTER_SRV/Resources",
}

// Connector reads master data from SAP IBP over OData and writes
// corrections back. Requests share one rate limiter so refreshes stay
// inside the tenant quota.
type Connector struct {
	cfg     config.IBPConfig
	log     logger.Logger
	client  *http.Client
	auth    AuthEngine
	limiter *rate.Limiter
}

func NewConnector(cfg config.IBPConfig, writer io.Writer) *Connector {
	jar, _ := cookiejar.New(nil)
	client := &http.Client{
		Timeout: 60 * time.Second,
		Jar:     jar,
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 50
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}

	return &Connector{
		cfg:     cfg,
		log:     logger.NewLogger(writer, "[IBPConnector]"),
		client:  client,
		auth:    NewCSRFAuth(cfg, client),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), burst),
	}
}

// TestConnection verifies credentials against the authentication
// service.
func (c *Connector) TestConnection(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+authPath, nil)
	if err != nil {
		return fmt.Errorf("building connection test request: %w", err)
	}
	if err := c.auth.Authorize(ctx, req, false); err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("connection test returned status %d", resp.StatusCode)
	}
	c.log.Log("Connection to %s verified", c.cfg.URL)
	return nil
}

// FetchMasterData downloads one master data table and shapes it into
// the standard column layout.
func (c *Connector) FetchMasterData(ctx context.Context, t models.DataType) (*models.Dataset, error) {
	endpoint, ok := endpoints[t]
	if !ok {
		return nil, fmt.Errorf("no odata endpoint for data type %q", t)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s%s?$format=json", c.cfg.URL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building fetch request for %s: %w", t, err)
	}
	req.Header.Set("Accept", "application/json")
	if err := c.auth.Authorize(ctx, req, false); err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", t, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s returned status %d", t, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", t, err)
	}

	records, err := parseEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", t, err)
	}

	ds := models.NewDataset(t, models.Schema(t))
	for _, record := range records {
		cells := make([]models.Value, len(ds.Columns))
		for i, col := range ds.Columns {
			cells[i] = cellValue(col.Kind, record[propertyName(col.Name)])
		}
		if err := ds.AppendRow(cells); err != nil {
			return nil, err
		}
	}

	c.log.Log("Fetched %d %s records", ds.RecordCount(), t)
	return ds, nil
}

// SubmitCorrection patches a single record identified by its key.
func (c *Connector) SubmitCorrection(ctx context.Context, t models.DataType, key string, fields map[string]interface{}) error {
	endpoint, ok := endpoints[t]
	if !ok {
		return fmt.Errorf("no odata endpoint for data type %q", t)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	payload := make(map[string]interface{}, len(fields))
	for column, value := range fields {
		payload[propertyName(column)] = value
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling correction for %s: %w", t, err)
	}

	url := fmt.Sprintf("%s%s('%s')", c.cfg.URL, endpoint, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building correction request for %s: %w", t, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.auth.Authorize(ctx, req, true); err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submitting correction for %s %s: %w", t, key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("correction for %s %s returned status %d", t, key, resp.StatusCode)
	}
	c.log.Log("Submitted correction for %s %s", t, key)
	return nil
}
