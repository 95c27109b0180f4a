package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"invex/internal/domain"
	"invex/internal/port"
)

type invoiceRow struct {
	ID            uuid.UUID           `db:"id"`
	RunID         uuid.UUID           `db:"run_id"`
	FileName      string              `db:"file_name"`
	Issuer        domain.IssuerKind   `db:"issuer"`
	VendorName    string              `db:"vendor_name"`
	VendorGSTIN   string              `db:"vendor_gstin"`
	BuyerName     string              `db:"buyer_name"`
	BuyerGSTIN    string              `db:"buyer_gstin"`
	InvoiceNumber string              `db:"invoice_number"`
	InvoiceDate   string              `db:"invoice_date"`
	PlaceOfSupply string              `db:"place_of_supply"`
	SiteName      string              `db:"site_name"`
	ServiceType   string              `db:"service_type"`
	TaxableAmount decimal.Decimal     `db:"taxable_amount"`
	IGST          decimal.Decimal     `db:"igst"`
	CGST          decimal.Decimal     `db:"cgst"`
	SGST          decimal.Decimal     `db:"sgst"`
	Total         decimal.Decimal     `db:"total"`
	StatedTotal   decimal.NullDecimal `db:"stated_total"`
	Gaps          []byte              `db:"gaps"`
	Flags         []byte              `db:"flags"`
}

type lineItemRow struct {
	InvoiceID     uuid.UUID           `db:"invoice_id"`
	Position      int                 `db:"position"`
	Description   string              `db:"description"`
	HSN           string              `db:"hsn"`
	Quantity      decimal.NullDecimal `db:"quantity"`
	Unit          string              `db:"unit"`
	UnitPrice     decimal.NullDecimal `db:"unit_price"`
	Rate          decimal.NullDecimal `db:"rate"`
	Per           string              `db:"per"`
	TaxableAmount decimal.NullDecimal `db:"taxable_amount"`
	IGSTRate      decimal.NullDecimal `db:"igst_rate"`
	IGSTAmount    decimal.NullDecimal `db:"igst_amount"`
	CGSTRate      decimal.NullDecimal `db:"cgst_rate"`
	CGSTAmount    decimal.NullDecimal `db:"cgst_amount"`
	SGSTRate      decimal.NullDecimal `db:"sgst_rate"`
	SGSTAmount    decimal.NullDecimal `db:"sgst_amount"`
	Total         decimal.NullDecimal `db:"total"`
	Derived       []byte              `db:"derived"`
	Flags         []byte              `db:"flags"`
}

type failureRow struct {
	RunID    uuid.UUID          `db:"run_id"`
	FileName string             `db:"file_name"`
	Issuer   domain.IssuerKind  `db:"issuer"`
	Kind     domain.FailureKind `db:"kind"`
	Reason   string             `db:"reason"`
}

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) SaveRun(ctx context.Context, summary *domain.RunSummary) error {
	query := `
		INSERT INTO runs (id, started_at, finished_at, files, succeeded, flagged, unrecognized, failed)
		VALUES (:id, :started_at, :finished_at, :files, :succeeded, :flagged, :unrecognized, :failed)
		ON CONFLICT (id) DO UPDATE SET
			finished_at = EXCLUDED.finished_at,
			files = EXCLUDED.files,
			succeeded = EXCLUDED.succeeded,
			flagged = EXCLUDED.flagged,
			unrecognized = EXCLUDED.unrecognized,
			failed = EXCLUDED.failed`

	if _, err := r.db.NamedExecContext(ctx, query, summary); err != nil {
		return fmt.Errorf("invoiceRepo.SaveRun: %w", err)
	}
	return nil
}

// SaveRecord stores the record and its line items in one transaction.
func (r *invoiceRepo) SaveRecord(ctx context.Context, runID uuid.UUID, rec *domain.InvoiceRecord) error {
	inv, err := toInvoiceRow(runID, rec)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SaveRecord: %w", err)
	}
	items, err := toLineItemRows(inv.ID, rec.LineItems)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SaveRecord: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SaveRecord begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO invoice_records (
			id, run_id, file_name, issuer, vendor_name, vendor_gstin, buyer_name, buyer_gstin,
			invoice_number, invoice_date, place_of_supply, site_name, service_type,
			taxable_amount, igst, cgst, sgst, total, stated_total, gaps, flags
		) VALUES (
			:id, :run_id, :file_name, :issuer, :vendor_name, :vendor_gstin, :buyer_name, :buyer_gstin,
			:invoice_number, :invoice_date, :place_of_supply, :site_name, :service_type,
			:taxable_amount, :igst, :cgst, :sgst, :total, :stated_total, :gaps, :flags
		)`, inv)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SaveRecord insert record: %w", err)
	}

	if len(items) > 0 {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO line_items (
				invoice_id, position, description, hsn, quantity, unit, unit_price, rate, per,
				taxable_amount, igst_rate, igst_amount, cgst_rate, cgst_amount, sgst_rate, sgst_amount,
				total, derived, flags
			) VALUES (
				:invoice_id, :position, :description, :hsn, :quantity, :unit, :unit_price, :rate, :per,
				:taxable_amount, :igst_rate, :igst_amount, :cgst_rate, :cgst_amount, :sgst_rate, :sgst_amount,
				:total, :derived, :flags
			)`, items)
		if err != nil {
			return fmt.Errorf("invoiceRepo.SaveRecord insert line items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.SaveRecord commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) SaveFailure(ctx context.Context, runID uuid.UUID, failure *domain.Failure) error {
	row := failureRow{
		RunID:    runID,
		FileName: failure.FileName,
		Issuer:   failure.Issuer,
		Kind:     failure.Kind,
		Reason:   failure.Reason,
	}
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO failures (run_id, file_name, issuer, kind, reason)
		 VALUES (:run_id, :file_name, :issuer, :kind, :reason)`, row)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SaveFailure: %w", err)
	}
	return nil
}

func toInvoiceRow(runID uuid.UUID, rec *domain.InvoiceRecord) (*invoiceRow, error) {
	gaps, err := jsonList(rec.Gaps)
	if err != nil {
		return nil, err
	}
	flags, err := jsonList(rec.Flags)
	if err != nil {
		return nil, err
	}
	h := rec.Header
	s := rec.Summary
	return &invoiceRow{
		ID:            uuid.New(),
		RunID:         runID,
		FileName:      rec.FileName,
		Issuer:        rec.Issuer,
		VendorName:    h.VendorName,
		VendorGSTIN:   h.VendorGSTIN,
		BuyerName:     h.BuyerName,
		BuyerGSTIN:    h.BuyerGSTIN,
		InvoiceNumber: h.InvoiceNumber,
		InvoiceDate:   h.InvoiceDate,
		PlaceOfSupply: h.PlaceOfSupply,
		SiteName:      h.SiteName,
		ServiceType:   h.ServiceType,
		TaxableAmount: s.TaxableAmount,
		IGST:          s.IGST,
		CGST:          s.CGST,
		SGST:          s.SGST,
		Total:         s.Total,
		StatedTotal:   s.StatedTotal,
		Gaps:          gaps,
		Flags:         flags,
	}, nil
}

func toLineItemRows(invoiceID uuid.UUID, items []domain.LineItem) ([]lineItemRow, error) {
	rows := make([]lineItemRow, 0, len(items))
	for i := range items {
		item := &items[i]
		derived, err := jsonList(item.Derived)
		if err != nil {
			return nil, err
		}
		flags, err := jsonList(item.Flags)
		if err != nil {
			return nil, err
		}
		rows = append(rows, lineItemRow{
			InvoiceID:     invoiceID,
			Position:      i + 1,
			Description:   item.Description,
			HSN:           item.HSN,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			UnitPrice:     item.UnitPrice,
			Rate:          item.Rate,
			Per:           item.Per,
			TaxableAmount: item.TaxableAmount,
			IGSTRate:      item.Tax.IGSTRate,
			IGSTAmount:    item.Tax.IGSTAmount,
			CGSTRate:      item.Tax.CGSTRate,
			CGSTAmount:    item.Tax.CGSTAmount,
			SGSTRate:      item.Tax.SGSTRate,
			SGSTAmount:    item.Tax.SGSTAmount,
			Total:         item.Total,
			Derived:       derived,
			Flags:         flags,
		})
	}
	return rows, nil
}

// jsonList encodes a string list for a JSONB column. A nil list is stored as [].
func jsonList(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encoding list: %w", err)
	}
	return b, nil
}
