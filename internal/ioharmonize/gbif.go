package ioharmonize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/boldcurate/eyebold/pkg/harmonize"
)

// gbifMatchResponse mirrors the subset of GBIF's /species/match response
// this resolver cares about.
type gbifMatchResponse struct {
	UsageKey   int64  `json:"usageKey"`
	MatchType  string `json:"matchType"`
	Status     string `json:"status"`
	Rank       string `json:"rank"`
	Confidence int    `json:"confidence"`

	Kingdom    string `json:"kingdom"`
	Phylum     string `json:"phylum"`
	Class      string `json:"class"`
	Order      string `json:"order"`
	Family     string `json:"family"`
	Subfamily  string `json:"subfamily"`
	Tribe      string `json:"tribe"`
	Genus      string `json:"genus"`
	Species    string `json:"species"`
	Subspecies string `json:"subspecies"`
}

// gbifResolver implements harmonize.NameResolver against GBIF's name
// backbone matching service.
type gbifResolver struct {
	baseURL string
	client  *http.Client
}

// NewGBIFResolver returns a harmonize.NameResolver backed by the GBIF name
// backbone at baseURL (e.g. "https://api.gbif.org/v1").
func NewGBIFResolver(baseURL string, client *http.Client) harmonize.NameResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &gbifResolver{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (g *gbifResolver) Resolve(ctx context.Context, q harmonize.Query) (harmonize.Response, error) {
	params := url.Values{}
	params.Set("name", q.QueryString)
	params.Set("rank", strings.ToUpper(q.Rank.String()))
	params.Set("verbose", "false")
	for rank, value := range q.AncestorHints {
		params.Set(rank.String(), value)
	}

	reqURL := fmt.Sprintf("%s/species/match?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return harmonize.Response{}, RequestError(q.QueryString, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return harmonize.Response{}, RequestError(q.QueryString, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return harmonize.Response{}, ResponseError(q.QueryString, resp.StatusCode)
	}

	var body gbifMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return harmonize.Response{}, ResponseError(q.QueryString, resp.StatusCode)
	}

	lineage := map[string]string{}
	for rank, value := range map[string]string{
		"kingdom": body.Kingdom, "phylum": body.Phylum, "class": body.Class,
		"order": body.Order, "family": body.Family, "subfamily": body.Subfamily,
		"tribe": body.Tribe, "genus": body.Genus, "species": body.Species,
		"subspecies": body.Subspecies,
	} {
		if value != "" {
			lineage[rank] = value
		}
	}

	return harmonize.Response{
		MatchType:      harmonize.MatchType(body.MatchType),
		Status:         body.Status,
		MatchRank:      body.Rank,
		Confidence:     body.Confidence,
		Lineage:        lineage,
		UsageKey:       body.UsageKey,
		HasUsageKey:    body.UsageKey != 0,
		ProcessingInfo: rawProcessingInfo(body),
	}, nil
}

func rawProcessingInfo(body gbifMatchResponse) string {
	b, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	return string(b)
}
