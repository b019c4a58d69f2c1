package api

import (
	"context"
	"testing"

	"github.com/opencoc/pitpipe/pkg/region"
)

func TestListRegionsIncludesChildConditionFlag(t *testing.T) {
	reg := region.NewRegistry("")
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	resp, err := listRegionsEndpoint(reg)(context.Background(), nil)
	if err != nil {
		t.Fatalf("listRegionsEndpoint: %v", err)
	}
	infos := resp.(regionsResponse).Regions

	byID := make(map[string]regionInfo, len(infos))
	for _, info := range infos {
		byID[info.ID] = info
	}
	for id, want := range map[string]bool{
		"new-england": true,
		"great-lakes": false,
	} {
		info, ok := byID[id]
		if !ok {
			t.Fatalf("region %q missing from listing", id)
		}
		if info.ChildChronicConditions != want {
			t.Errorf("%s child_chronic_conditions = %v, want %v", id, info.ChildChronicConditions, want)
		}
	}
	if _, ok := byID["universal"]; !ok {
		t.Error("universal fallback missing from listing")
	}
}

func TestDetectEndpointRejectsEmptyHeader(t *testing.T) {
	reg := region.NewRegistry("")
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := detectEndpoint(reg)(context.Background(), &detectReq{}); err == nil {
		t.Error("empty header accepted")
	}
}
