package api

import (
	"context"
	"fmt"

	"github.com/opencoc/pitpipe/pkg/kit"
	"github.com/opencoc/pitpipe/pkg/region"
	"github.com/opencoc/pitpipe/pkg/runstore"
)

// Shared request/response types used by both HTTP and MCP transports.

type detectReq struct {
	Header []string
}

type detectResponse struct {
	Region     string  `json:"region"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Fallback   bool    `json:"fallback"`
}

type regionInfo struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Timezone               string `json:"timezone"`
	MaxAdults              int    `json:"max_adults"`
	MaxChildren            int    `json:"max_children"`
	ChildChronicConditions bool   `json:"child_chronic_conditions"`
}

type regionsResponse struct {
	Regions []regionInfo `json:"regions"`
}

type runsReq struct {
	Limit int
}

type runsResponse struct {
	Runs []runstore.Run `json:"runs"`
}

type runReq struct {
	ID string
}

func detectEndpoint(reg *region.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*detectReq)
		if len(req.Header) == 0 {
			return nil, fmt.Errorf("header array is empty")
		}
		det := reg.Detect(req.Header)
		return detectResponse{
			Region:     det.Region.ID,
			Name:       det.Region.Name,
			Confidence: det.Confidence,
			Fallback:   det.Fallback,
		}, nil
	}
}

func listRegionsEndpoint(reg *region.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		regions := reg.Regions()
		infos := make([]regionInfo, 0, len(regions)+1)
		for _, r := range append(regions, region.Universal) {
			infos = append(infos, regionInfo{
				ID:                     r.ID,
				Name:                   r.Name,
				Timezone:               r.Timezone,
				MaxAdults:              r.MaxAdults,
				MaxChildren:            r.MaxChildren,
				ChildChronicConditions: r.ChildChronicConditions,
			})
		}
		return regionsResponse{Regions: infos}, nil
	}
}

func listRunsEndpoint(store *runstore.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*runsReq)
		runs, err := store.List(req.Limit)
		if err != nil {
			return nil, err
		}
		return runsResponse{Runs: runs}, nil
	}
}

func getRunEndpoint(store *runstore.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*runReq)
		run, err := store.Get(req.ID)
		if err != nil {
			return nil, err
		}
		return run, nil
	}
}
