package http

import (
	"time"

	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/services"
)

// Request and response bodies of the REST API. Money travels as decimal
// strings; the JSON schemas live in openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

type Created struct {
	ID string `json:"id"`
}

type ItemLine struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type NewShop struct {
	Name         string `json:"name"`
	ShippingFees string `json:"shippingFees"`
	Approved     bool   `json:"approved"`
}

type Settlement struct {
	Amount string `json:"amount"`
}

type Adjustment struct {
	Amount    string `json:"amount"`
	Reason    string `json:"reason"`
	Direction string `json:"direction"`
}

type Reconcile struct {
	Repair bool `json:"repair"`
}

type NewDriver struct {
	Name        string `json:"name"`
	WorkingArea string `json:"workingArea"`
}

type Availability struct {
	Available bool `json:"available"`
}

type Exchange struct {
	Take          []ItemLine `json:"take"`
	Give          []ItemLine `json:"give"`
	CashDelta     string     `json:"cashDelta"`
	CashDirection string     `json:"cashDirection"`
}

type NewParcel struct {
	TrackingNumber string     `json:"trackingNumber"`
	ShopID         string     `json:"shopId"`
	CODAmount      string     `json:"codAmount"`
	DeliveryCost   string     `json:"deliveryCost"`
	InStorage      bool       `json:"inStorage"`
	Items          []ItemLine `json:"items"`
	Exchange       *Exchange  `json:"exchange,omitempty"`
}

type Advance struct {
	ExpectedStatus string `json:"expectedStatus"`
}

type Reject struct {
	AmountPaid    string `json:"amountPaid"`
	PaymentMethod string `json:"paymentMethod"`
}

type DeliveredLine struct {
	LineIndex int `json:"lineIndex"`
	Quantity  int `json:"quantity"`
}

type PartialDelivery struct {
	Lines           []DeliveredLine `json:"lines"`
	CollectedAmount string          `json:"collectedAmount"`
}

type Note struct {
	Text string `json:"text"`
}

type Assign struct {
	DriverID string `json:"driverId"`
}

type BulkAssign struct {
	ParcelIDs []string `json:"parcelIds"`
	DriverID  string   `json:"driverId"`
}

type BulkAssignResult struct {
	ParcelID string `json:"parcelId"`
	OK       bool   `json:"ok"`
	Error    *Error `json:"error,omitempty"`
}

type NewPickup struct {
	ShopID        string    `json:"shopId"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Address       string    `json:"address"`
	ParcelIDs     []string  `json:"parcelIds"`
}

type ShopBalance struct {
	ShopID         string `json:"shopId"`
	Name           string `json:"name"`
	Approved       bool   `json:"approved"`
	ShippingFees   string `json:"shippingFees"`
	ToCollect      string `json:"toCollect"`
	TotalCollected string `json:"totalCollected"`
	Settled        string `json:"settled"`
	Revenue        string `json:"revenue"`
}

type MoneyTransaction struct {
	ID          string    `json:"id"`
	DriverID    string    `json:"driverId,omitempty"`
	Attribute   string    `json:"attribute"`
	ChangeType  string    `json:"changeType"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Discrepancy struct {
	Attribute  string `json:"attribute"`
	Projected  string `json:"projected"`
	Recomputed string `json:"recomputed"`
}

type ReconciliationReport struct {
	ShopID        string        `json:"shopId"`
	Consistent    bool          `json:"consistent"`
	Repaired      bool          `json:"repaired"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

type DriverWorkload struct {
	DriverID          string `json:"driverId"`
	Name              string `json:"name"`
	WorkingArea       string `json:"workingArea"`
	Approved          bool   `json:"approved"`
	Available         bool   `json:"available"`
	AssignedToday     int    `json:"assignedToday"`
	TotalAssigned     int    `json:"totalAssigned"`
	ActiveAssignCount int    `json:"activeAssignCount"`
}

type ParcelItem struct {
	Kind              string `json:"kind"`
	Description       string `json:"description"`
	Quantity          int    `json:"quantity"`
	DeliveredQuantity *int   `json:"deliveredQuantity,omitempty"`
}

type ParcelNote struct {
	Text       string    `json:"text"`
	AuthorRole string    `json:"authorRole"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Parcel struct {
	ID                     string       `json:"id"`
	TrackingNumber         string       `json:"trackingNumber"`
	ShopID                 string       `json:"shopId"`
	Flow                   string       `json:"flow"`
	Status                 string       `json:"status"`
	DriverID               string       `json:"driverId,omitempty"`
	PickupID               string       `json:"pickupId,omitempty"`
	CODAmount              string       `json:"codAmount"`
	DeliveryCost           string       `json:"deliveryCost"`
	IsPaid                 bool         `json:"isPaid"`
	CollectedAmount        string       `json:"collectedAmount"`
	RejectionShippingPaid  string       `json:"rejectionShippingPaid"`
	RejectionPaymentMethod string       `json:"rejectionPaymentMethod,omitempty"`
	IsExchange             bool         `json:"isExchange"`
	CreatedAt              time.Time    `json:"createdAt"`
	ActualPickupTime       *time.Time   `json:"actualPickupTime,omitempty"`
	ActualDeliveryTime     *time.Time   `json:"actualDeliveryTime,omitempty"`
	Version                int64        `json:"version"`
	Items                  []ParcelItem `json:"items"`
	Notes                  []ParcelNote `json:"notes"`
}

func toParcel(v queries.ParcelView) Parcel {
	p := Parcel{
		ID:                     v.ID.String(),
		TrackingNumber:         v.TrackingNumber,
		ShopID:                 v.ShopID.String(),
		Flow:                   v.Flow,
		Status:                 v.Status,
		DriverID:               optionalID(v.DriverID),
		PickupID:               optionalID(v.PickupID),
		CODAmount:              v.CODAmount.String(),
		DeliveryCost:           v.DeliveryCost.String(),
		IsPaid:                 v.IsPaid,
		CollectedAmount:        v.CollectedAmount.String(),
		RejectionShippingPaid:  v.RejectionPaid.String(),
		RejectionPaymentMethod: v.RejectionMethod,
		IsExchange:             v.IsExchange,
		CreatedAt:              v.CreatedAt,
		ActualPickupTime:       v.ActualPickupTime,
		ActualDeliveryTime:     v.ActualDeliveryTime,
		Version:                v.Version,
		Items:                  make([]ParcelItem, len(v.Items)),
		Notes:                  make([]ParcelNote, len(v.Notes)),
	}
	for i, item := range v.Items {
		p.Items[i] = ParcelItem{
			Kind:              item.Kind,
			Description:       item.Description,
			Quantity:          item.Quantity,
			DeliveredQuantity: item.DeliveredQuantity,
		}
	}
	for i, note := range v.Notes {
		p.Notes[i] = ParcelNote{Text: note.Text, AuthorRole: note.AuthorRole, CreatedAt: note.CreatedAt}
	}
	return p
}

func toShopBalance(v queries.ShopBalanceView) ShopBalance {
	return ShopBalance{
		ShopID:         v.ShopID.String(),
		Name:           v.Name,
		Approved:       v.IsApproved,
		ShippingFees:   v.ShippingFees.String(),
		ToCollect:      v.ToCollect.String(),
		TotalCollected: v.TotalCollected.String(),
		Settled:        v.Settled.String(),
		Revenue:        v.Revenue.String(),
	}
}

func toMoneyTransactions(views []queries.MoneyTransactionView) []MoneyTransaction {
	rows := make([]MoneyTransaction, len(views))
	for i, v := range views {
		rows[i] = MoneyTransaction{
			ID:          v.ID.String(),
			DriverID:    optionalID(v.DriverID),
			Attribute:   v.Attribute,
			ChangeType:  v.ChangeType,
			Amount:      v.Amount.String(),
			Description: v.Description,
			CreatedAt:   v.CreatedAt,
		}
	}
	return rows
}

func toDriverWorkload(v queries.DriverWorkloadView) DriverWorkload {
	return DriverWorkload{
		DriverID:          v.DriverID.String(),
		Name:              v.Name,
		WorkingArea:       v.WorkingArea,
		Approved:          v.IsApproved,
		Available:         v.IsAvailable,
		AssignedToday:     v.AssignedToday,
		TotalAssigned:     v.TotalAssigned,
		ActiveAssignCount: v.ActiveAssignCount,
	}
}

func toReconciliationReport(r services.ReconciliationReport) ReconciliationReport {
	report := ReconciliationReport{
		ShopID:        r.ShopID.String(),
		Consistent:    r.IsConsistent(),
		Repaired:      r.Repaired,
		Discrepancies: make([]Discrepancy, len(r.Discrepancies)),
	}
	for i, d := range r.Discrepancies {
		report.Discrepancies[i] = Discrepancy{
			Attribute:  d.Attribute.String(),
			Projected:  d.Projected.String(),
			Recomputed: d.Recomputed.String(),
		}
	}
	return report
}

func optionalID(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
