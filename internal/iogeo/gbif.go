package iogeo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/boldcurate/eyebold/pkg/geo"
)

// gbifDownloader implements geo.Downloader against GBIF's asynchronous
// occurrence download API: a predicate-download request restricted to a
// set of accepted taxon keys.
type gbifDownloader struct {
	baseURL  string
	user     string
	password string
	cacheDir string
	client   *http.Client
}

// NewGBIFDownloader returns a geo.Downloader backed by GBIF's occurrence
// download service. user/password are the GBIF account credentials
// required to submit a download request.
func NewGBIFDownloader(baseURL, user, password, cacheDir string, client *http.Client) geo.Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &gbifDownloader{
		baseURL:  strings.TrimRight(baseURL, "/"),
		user:     user,
		password: password,
		cacheDir: cacheDir,
		client:   client,
	}
}

type downloadRequest struct {
	CreatorUser string       `json:"creator"`
	Notification []string    `json:"notificationAddresses"`
	Format      string       `json:"format"`
	Predicate   gbifPredicate `json:"predicate"`
}

type gbifPredicate struct {
	Type      string          `json:"type"`
	Key       string          `json:"key,omitempty"`
	Values    []string        `json:"values,omitempty"`
	Predicates []gbifPredicate `json:"predicates,omitempty"`
}

func (g *gbifDownloader) Submit(ctx context.Context, taxonKeys []int64) (string, error) {
	values := make([]string, len(taxonKeys))
	for i, k := range taxonKeys {
		values[i] = strconv.FormatInt(k, 10)
	}

	payload := downloadRequest{
		CreatorUser: g.user,
		Format:      "SIMPLE_CSV",
		Predicate: gbifPredicate{
			Type:   "IN",
			Key:    "TAXON_KEY",
			Values: values,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", DownloadRequestError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/occurrence/download/request", bytes.NewReader(body))
	if err != nil {
		return "", DownloadRequestError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.user, g.password)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", DownloadRequestError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", DownloadRequestError(fmt.Errorf("status %d: %s", resp.StatusCode, respBody))
	}
	requestID, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", DownloadRequestError(err)
	}
	return strings.TrimSpace(string(requestID)), nil
}

type gbifStatusResponse struct {
	Status string `json:"status"`
}

func (g *gbifDownloader) Poll(ctx context.Context, requestID string) (geo.DownloadStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/occurrence/download/"+requestID, nil)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gbif download status request for %s returned %d", requestID, resp.StatusCode)
	}

	var body gbifStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	switch body.Status {
	case "SUCCEEDED":
		return geo.StatusSucceeded, nil
	case "KILLED", "CANCELLED", "FAILED":
		return geo.StatusKilled, nil
	default:
		return geo.StatusRunning, nil
	}
}

func (g *gbifDownloader) Fetch(ctx context.Context, requestID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/occurrence/download/request/"+requestID, nil)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gbif download fetch for %s returned %d", requestID, resp.StatusCode)
	}

	if err := os.MkdirAll(g.cacheDir, 0o755); err != nil {
		return "", err
	}
	zipPath := filepath.Join(g.cacheDir, requestID+".zip")
	out, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", err
	}
	return zipPath, nil
}
