package fueldeliveries

import (
	"errors"
	"math"
	"testing"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
)

func TestItemCost(t *testing.T) {
	cases := []struct {
		name      string
		grade     enums.FuelGrade
		price     int64
		quantity  int64
		wantCost  int64
		wantTotal int64
	}{
		{"diesel", enums.FuelGradeDiesel, 250, 100, 316, 31600},
		{"regular", enums.FuelGradeRegular, 250, 100, 312, 31200},
		{"premium uses gasoline margin", enums.FuelGradePremium, 300, 2, 362, 724},
		{"plus rounds up", enums.FuelGradePlus, 0, 1, 62, 62},
		{"zero quantity", enums.FuelGradeDiesel, 250, 0, 316, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cost, total, err := ItemCost(tc.grade, tc.price, tc.quantity)
			if err != nil {
				t.Fatalf("ItemCost: %v", err)
			}
			if cost != tc.wantCost || total != tc.wantTotal {
				t.Fatalf("ItemCost(%s, %d, %d) = %d, %d; want %d, %d", tc.grade, tc.price, tc.quantity, cost, total, tc.wantCost, tc.wantTotal)
			}
		})
	}
}

func TestItemCostAtCeilings(t *testing.T) {
	cost, total, err := ItemCost(enums.FuelGradeDiesel, MaxItemPricePerGallon, MaxItemQuantity)
	if err != nil {
		t.Fatalf("ItemCost at ceilings: %v", err)
	}
	if cost != 100066 || total != 100066*MaxItemQuantity {
		t.Fatalf("got %d, %d", cost, total)
	}
}

func TestItemCostRejectsOverflow(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		quantity int64
	}{
		{"huge quantity", 250, 30_000_000_000_000_000},
		{"huge price", math.MaxInt64 - 10, 2},
		{"negative quantity", 250, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, total, err := ItemCost(enums.FuelGradeRegular, tc.price, tc.quantity)
			if !errors.Is(err, ErrCostOutOfRange) {
				t.Fatalf("expected ErrCostOutOfRange, got total=%d err=%v", total, err)
			}
		})
	}
}
