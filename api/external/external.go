/* external.go
 * Contains the logic used to fetch tournament data from the backend api and return the results to the higher
 * level functions
 */

package external

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "BracketViewer/1.0"

// DefaultClient is used when FetchTournamentData is called without a client
var DefaultClient = &http.Client{Timeout: 10 * time.Second}

// FetchTournamentData fetches the {contestants, matchups} payload from the backend.
// Preconditions: Receives a context and the api base url (e.g. http://localhost:3000/api)
// Postconditions: Returns the decoded tournament with non-nil contestants and matchups, or an error if the request,
// status code or decoding failed. No fallback data is substituted here
func FetchTournamentData(ctx context.Context, baseURL string) (Tournament, error) {
	return FetchTournamentDataWithClient(ctx, DefaultClient, baseURL)
}

// FetchTournamentDataWithClient is FetchTournamentData with an explicit http client
func FetchTournamentDataWithClient(ctx context.Context, client *http.Client, baseURL string) (Tournament, error) {
	if client == nil {
		client = DefaultClient
	}
	url := strings.TrimRight(baseURL, "/") + "/tournament"

	body, err := getBody(ctx, client, url)
	if err != nil {
		return Tournament{}, fmt.Errorf("error fetching tournament data: %w", err)
	}

	var tournament Tournament
	if err := json.Unmarshal(body, &tournament); err != nil {
		return Tournament{}, fmt.Errorf("error decoding tournament data: %w", err)
	}
	tournament.Normalize()

	return tournament, nil
}

// getBody performs a GET request and returns the response body, transparently handling gzip encoded responses
// Preconditions: Receives a context, http client and url
// Postconditions: Returns the body bytes, or an error for transport failures and non 200 responses
func getBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Headers to apply with API requirements
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Encoding", "gzip")

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", response.StatusCode)
	}

	var reader io.Reader = response.Body
	if response.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
