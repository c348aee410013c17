package shiftreports

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/shifts"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// ReportDTO mirrors a closing report. Amounts are cents.
type ReportDTO struct {
	ID              uuid.UUID          `json:"id"`
	ShiftID         uuid.UUID          `json:"shiftId"`
	StationNumber   *string            `json:"stationNumber"`
	TotalSales      int64              `json:"totalSales"`
	TotalTax        int64              `json:"totalTax"`
	CashAmount      int64              `json:"cashAmount"`
	CreditAmount    int64              `json:"creditAmount"`
	DebitAmount     int64              `json:"debitAmount"`
	MobileAmount    int64              `json:"mobileAmount"`
	OverShortAmount int64              `json:"overShortAmount"`
	FuelSales       int64              `json:"fuelSales"`
	GrocerySales    int64              `json:"grocerySales"`
	Notes           *string            `json:"notes"`
	Status          enums.ReportStatus `json:"status"`
	ReviewedBy      *uuid.UUID         `json:"reviewedBy"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type ReportWithShiftDTO struct {
	Report ReportDTO       `json:"report"`
	Shift  shifts.ShiftDTO `json:"shift"`
}

// CreateReportInput records a shift close. OverShortAmount may be negative.
type CreateReportInput struct {
	ShiftID         uuid.UUID `json:"shiftId" validate:"required"`
	StationNumber   *string   `json:"stationNumber" validate:"omitempty,max=50"`
	TotalSales      int64     `json:"totalSales" validate:"min=0"`
	TotalTax        int64     `json:"totalTax" validate:"min=0"`
	CashAmount      int64     `json:"cashAmount" validate:"min=0"`
	CreditAmount    int64     `json:"creditAmount" validate:"min=0"`
	DebitAmount     int64     `json:"debitAmount" validate:"min=0"`
	MobileAmount    int64     `json:"mobileAmount" validate:"min=0"`
	OverShortAmount int64     `json:"overShortAmount"`
	FuelSales       int64     `json:"fuelSales" validate:"min=0"`
	GrocerySales    int64     `json:"grocerySales" validate:"min=0"`
	Notes           *string   `json:"notes"`
}

type ByShiftInput struct {
	ShiftID uuid.UUID `json:"shiftId" validate:"required"`
}

type UpdateStatusInput struct {
	ReportID uuid.UUID          `json:"reportId" validate:"required"`
	Status   enums.ReportStatus `json:"status" validate:"required"`
}

func FromModel(r *models.ShiftReport) ReportDTO {
	return ReportDTO{
		ID:              r.ID,
		ShiftID:         r.ShiftID,
		StationNumber:   r.StationNumber,
		TotalSales:      r.TotalSales,
		TotalTax:        r.TotalTax,
		CashAmount:      r.CashAmount,
		CreditAmount:    r.CreditAmount,
		DebitAmount:     r.DebitAmount,
		MobileAmount:    r.MobileAmount,
		OverShortAmount: r.OverShortAmount,
		FuelSales:       r.FuelSales,
		GrocerySales:    r.GrocerySales,
		Notes:           r.Notes,
		Status:          r.Status,
		ReviewedBy:      r.ReviewedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
