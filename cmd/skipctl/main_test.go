package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/infrastructures/fallback"
	"go.uber.org/zap"
)

type failingSource struct{}

func (failingSource) FetchSkips(ctx context.Context) ([]models.Skip, error) {
	return nil, fmt.Errorf("%w: connection refused", derr.ErrDataFetchFailure)
}

func init() {
	color.NoColor = true
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-search", " 6 ", "-road", "-max-price", "600", "-json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.FilterCriteria{SearchText: " 6 ", RoadAllowedOnly: true, MaxPrice: 600}
	if opts.criteria != want || !opts.asJSON {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts, err = parseFlags(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.criteria != models.DefaultFilterCriteria() {
		t.Fatalf("unexpected default criteria: %+v", opts.criteria)
	}

	if _, err := parseFlags([]string{"-max-price", "-1"}); err == nil {
		t.Fatal("expected error for negative max-price")
	}
}

func TestRunLocal_TableFallsBackSilently(t *testing.T) {
	var out bytes.Buffer
	source := fallback.NewSource(zap.NewNop(), failingSource{})

	err := runLocal(context.Background(), source, options{criteria: models.DefaultFilterCriteria()}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "4 Yard Skip") || !strings.Contains(text, "£334") {
		t.Fatalf("unexpected table:\n%s", text)
	}
	if !strings.Contains(text, "9 skips, 4-40 yards, from £334 inc. VAT") {
		t.Fatalf("missing summary line:\n%s", text)
	}
	if !strings.Contains(text, "Most popular: 6 Yard Skip") {
		t.Fatalf("missing recommendations:\n%s", text)
	}
}

func TestRunLocal_EmptyResult(t *testing.T) {
	var out bytes.Buffer
	opts := options{criteria: models.FilterCriteria{MaxPrice: 300}}

	if err := runLocal(context.Background(), fallback.NewSource(zap.NewNop(), failingSource{}), opts, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No skips match") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestRunLocal_JSON(t *testing.T) {
	var out bytes.Buffer
	opts := options{
		criteria: models.FilterCriteria{SearchText: "6", MaxPrice: 1500},
		asJSON:   true,
	}

	if err := runLocal(context.Background(), fallback.NewSource(zap.NewNop(), failingSource{}), opts, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		Skips []skipRow           `json:"skips"`
		Stats models.ListingStats `json:"stats"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got.Skips) != 2 || got.Skips[0].Size != 6 || got.Skips[1].Size != 16 {
		t.Fatalf("unexpected skips: %+v", got.Skips)
	}
	if got.Skips[0].FinalPrice != 366 || !got.Skips[0].Badges.Popular {
		t.Fatalf("unexpected first row: %+v", got.Skips[0])
	}
}
