// Package amap is a small client for the AMap (Gaode) reverse-geocoding API.
package amap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bluele/gcache"
	"github.com/seafuel/service-voyage/internal/config"
	"github.com/seafuel/service-voyage/internal/domain/route"
	"github.com/seafuel/service-voyage/internal/platform/apperr"
	"go.uber.org/zap"
)

const (
	serviceName  = "amap"
	regeoPath    = "/v3/geocode/regeo"
	statusOK     = "1"
	defaultCache = 1024
)

// Location is the decoded reverse-geocoding answer for one coordinate.
type Location struct {
	Longitude        float64         `json:"longitude"`
	Latitude         float64         `json:"latitude"`
	FormattedAddress string          `json:"formatted_address"`
	Country          string          `json:"country,omitempty"`
	Province         string          `json:"province,omitempty"`
	City             string          `json:"city,omitempty"`
	District         string          `json:"district,omitempty"`
	Township         string          `json:"township,omitempty"`
	Regeocode        json.RawMessage `json:"regeocode"`
}

// Client calls the AMap web service API.
// It is safe for concurrent use.
type Client struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	timeout     time.Duration
	cache       gcache.Cache
	logger      *zap.Logger
	maxAttempts int
	backoff     time.Duration
}

// NewClient creates a client from the amap configuration section.
func NewClient(cfg config.AmapConfig, logger *zap.Logger) *Client {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCache
	}
	builder := gcache.New(size).LRU()
	if cfg.CacheTTL > 0 {
		builder = builder.Expiration(cfg.CacheTTL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		session:     &http.Client{},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		timeout:     timeout,
		cache:       builder.Build(),
		logger:      logger,
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
}

// CacheKey returns the coordinate string used both as cache key and as the
// AMap location parameter.
func CacheKey(p route.Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lng, p.Lat)
}

type regeoResponse struct {
	Status    string          `json:"status"`
	Info      string          `json:"info"`
	Infocode  string          `json:"infocode"`
	Regeocode json.RawMessage `json:"regeocode"`
}

type regeocode struct {
	FormattedAddress flexString `json:"formatted_address"`
	AddressComponent struct {
		Country  flexString `json:"country"`
		Province flexString `json:"province"`
		City     flexString `json:"city"`
		District flexString `json:"district"`
		Township flexString `json:"township"`
	} `json:"addressComponent"`
}

// ReverseGeocode resolves a coordinate to an address.
// The whole call, retries included, is bounded by the configured timeout.
func (c *Client) ReverseGeocode(ctx context.Context, p route.Point) (*Location, error) {
	key := CacheKey(p)
	if cached, err := c.cache.Get(key); err == nil {
		if loc, ok := cached.(*Location); ok {
			return loc, nil
		}
	}

	if c.apiKey == "" {
		return nil, apperr.NewUpstreamError(serviceName, "api key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRegeoRequest(ctx, key)
	})
	if err != nil {
		c.logger.Warn("reverse geocode failed",
			zap.String("location", key),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, classify(err)
	}
	defer resp.Body.Close()

	var decoded regeoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperr.NewUpstreamError(serviceName, "malformed response")
	}
	if decoded.Status != statusOK {
		info := decoded.Info
		if info == "" {
			info = "unknown error"
		}
		c.logger.Warn("reverse geocode rejected",
			zap.String("location", key),
			zap.String("info", info),
			zap.String("infocode", decoded.Infocode),
		)
		return nil, apperr.NewUpstreamError(serviceName, info)
	}

	loc := &Location{Longitude: p.Lng, Latitude: p.Lat, Regeocode: decoded.Regeocode}
	var body regeocode
	if len(decoded.Regeocode) > 0 && json.Unmarshal(decoded.Regeocode, &body) == nil {
		loc.FormattedAddress = string(body.FormattedAddress)
		loc.Country = string(body.AddressComponent.Country)
		loc.Province = string(body.AddressComponent.Province)
		loc.City = string(body.AddressComponent.City)
		loc.District = string(body.AddressComponent.District)
		loc.Township = string(body.AddressComponent.Township)
	}

	if err := c.cache.Set(key, loc); err != nil {
		c.logger.Debug("geocode cache write failed", zap.Error(err))
	}
	c.logger.Info("reverse geocode resolved",
		zap.String("location", key),
		zap.String("address", loc.FormattedAddress),
		zap.Duration("elapsed", time.Since(start)),
	)
	return loc, nil
}

func (c *Client) newRegeoRequest(ctx context.Context, location string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+regeoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("location", location)
	q.Set("key", c.apiKey)
	q.Set("output", "JSON")
	req.URL.RawQuery = q.Encode()
	return req, nil
}

// classify maps transport failures to the application error taxonomy.
func classify(err error) error {
	if isTimeout(err) {
		return apperr.NewTimeoutError(serviceName)
	}
	var he *httpStatusError
	if errors.As(err, &he) {
		return apperr.NewUpstreamError(serviceName, fmt.Sprintf("unexpected status %d", he.Code))
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperr.NewUpstreamError(serviceName, "request failed")
}

// flexString decodes AMap fields that are a string when set and an empty
// array when not.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) > 0 {
		*f = flexString(parts[0])
	} else {
		*f = ""
	}
	return nil
}
