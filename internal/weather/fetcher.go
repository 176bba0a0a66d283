package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/sony/gobreaker"
)

var errTrailingData = errors.New("invalid character after top-level value")

// DefaultBaseURL is the OpenWeatherMap current weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Fetcher requests current weather for one coordinate from OpenWeatherMap.
type Fetcher struct {
	name    string
	baseURL string
	coord   Coordinate
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewFetcher creates a Fetcher. An empty baseURL means DefaultBaseURL.
func NewFetcher(client *http.Client, baseURL string, coord Coordinate) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		name:    "openweathermap",
		baseURL: baseURL,
		coord:   coord,
		client:  client,
		circuit: newCircuitBreaker("openweathermap"),
	}
}

// RequestURL returns the URL Fetch will GET for the given credential. The
// parameters are not re-encoded: lat, lon and appid appear exactly as given.
func (f *Fetcher) RequestURL(credential string) string {
	return f.baseURL + "?lat=" + f.coord.Lat + "&lon=" + f.coord.Lon + "&appid=" + credential
}

// Fetch issues a single GET and decodes the body as JSON. The response status
// is never checked, so provider error bodies come back as ordinary payloads.
func (f *Fetcher) Fetch(ctx context.Context, credential string) (Payload, error) {
	req, err := http.NewRequest(http.MethodGet, f.RequestURL(credential), nil)
	if err != nil {
		return nil, &NetworkError{Op: "get", Err: err}
	}

	resp, err := doRequest(ctx, f.client, f.circuit, req)
	if err != nil {
		return nil, &NetworkError{Op: "get", Err: err}
	}
	defer resp.Body.Close()

	log.Printf("DEBUG: %s responded %d for %s,%s", f.name, resp.StatusCode, f.coord.Lat, f.coord.Lon)

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var payload Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, &NetworkError{Op: "decode", Err: err}
	}
	// The whole body must be one JSON value; anything after it but whitespace is rejected.
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			err = fmt.Errorf("%w: %w", errTrailingData, err)
		} else {
			err = errTrailingData
		}
		return nil, &NetworkError{Op: "decode", Err: err}
	}
	return payload, nil
}
