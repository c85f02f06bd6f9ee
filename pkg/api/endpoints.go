package api

import (
	"context"
	"fmt"

	"github.com/hazyhaar/americana/pkg/demo"
	"github.com/hazyhaar/americana/pkg/kit"
	"github.com/hazyhaar/americana/pkg/store"
)

// Shared request/response types used by both HTTP and MCP transports.

type profileReq struct {
	// Year 0 means "latest covered year".
	Year   int
	Gender *demo.Gender
}

type profileResponse struct {
	Profile demo.Profile `json:"profile"`
	Text    string       `json:"text"`
}

type tableReq struct {
	// From/To bound the year range; 0 means unbounded on that side.
	From int
	To   int
}

type tableResponse struct {
	Rows []demo.Row `json:"rows"`
}

type yearsResponse struct {
	Years []int `json:"years"`
}

type datasetsResponse struct {
	Datasets []store.DatasetInfo `json:"datasets"`
}

// Each endpoint closes over the store and serves both transports.

func profileEndpoint(s *store.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*profileReq)
		year := req.Year
		if year == 0 {
			year = s.LatestYear()
		}
		rec, err := s.Record(year)
		if err != nil {
			return nil, err
		}
		p := demo.Compose(rec, year, s.Names(), req.Gender)
		return profileResponse{Profile: p, Text: p.Text()}, nil
	}
}

func tableEndpoint(s *store.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*tableReq)
		years := filterYears(s.Years(), req.From, req.To)
		if len(years) == 0 {
			return nil, fmt.Errorf("no covered years in range %d-%d", req.From, req.To)
		}
		rows, err := demo.BuildTable(years, s.Records(), s.Names())
		if err != nil {
			return nil, err
		}
		return tableResponse{Rows: rows}, nil
	}
}

func yearsEndpoint(s *store.Store) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return yearsResponse{Years: s.Years()}, nil
	}
}

func datasetsEndpoint(s *store.Store) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return datasetsResponse{Datasets: s.Info()}, nil
	}
}

func filterYears(years []int, from, to int) []int {
	out := years[:0:0]
	for _, y := range years {
		if from != 0 && y < from {
			continue
		}
		if to != 0 && y > to {
			continue
		}
		out = append(out, y)
	}
	return out
}
