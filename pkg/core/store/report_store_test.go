package store

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"realty_feasibility/pkg/core/feasibility"
)

func TestReportStore_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore(nil, t.TempDir())

	rep, err := feasibility.Evaluate(feasibility.DefaultParams(), feasibility.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	saved, err := s.Save(ctx, "default scenario", rep)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == uuid.Nil {
		t.Fatal("expected a generated ID")
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "default scenario" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Report.Summary.IRRPct == nil || math.Abs(*got.Report.Summary.IRRPct-*rep.Summary.IRRPct) > 1e-12 {
		t.Errorf("IRR not preserved: %v", got.Report.Summary.IRRPct)
	}
	if len(got.Report.CashFlows) != len(rep.CashFlows) {
		t.Errorf("cash flows: got %d, want %d", len(got.Report.CashFlows), len(rep.CashFlows))
	}
}

func TestReportStore_GetMissing(t *testing.T) {
	s := NewReportStore(nil, t.TempDir())
	_, err := s.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReportStore_List(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore(nil, t.TempDir())

	rep, err := feasibility.Evaluate(feasibility.DefaultParams(), feasibility.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a", "b", "c"} {
		if _, err := s.Save(ctx, name, rep); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("reports not sorted newest first")
		}
	}

	two, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(two) != 2 {
		t.Errorf("limit not applied: got %d", len(two))
	}
}

func TestReportStore_Backend(t *testing.T) {
	dir := t.TempDir()
	if got := NewReportStore(nil, dir).Backend(); got != "file:"+dir {
		t.Errorf("backend: got %q", got)
	}
}
