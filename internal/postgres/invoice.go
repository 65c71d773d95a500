package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vikasavn/dukaan/internal/domain"
)

const invoiceColumns = `id, invoice_number, company_id, store_id, customer_id, created_by,
	invoice_date, due_date, status, place_of_supply, is_inter_state,
	billing_address, billing_city, billing_state, billing_pincode,
	transport_mode, vehicle_number, lr_number, eway_bill_number, po_number, delivery_date,
	subtotal, total_tax, cgst_amount, sgst_amount, igst_amount, cess_amount, tcs_amount,
	round_off, total_amount, amount_in_words, notes, terms, created_at, updated_at`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var invoiceDate, dueDate, deliveryDate pgtype.Date
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CompanyID, &inv.StoreID, &inv.CustomerID, &inv.CreatedBy,
		&invoiceDate, &dueDate, &inv.Status, &inv.PlaceOfSupply, &inv.IsInterState,
		&inv.BillingAddress, &inv.BillingCity, &inv.BillingState, &inv.BillingPincode,
		&inv.TransportMode, &inv.VehicleNumber, &inv.LRNumber, &inv.EwayBillNumber,
		&inv.PONumber, &deliveryDate,
		&inv.Subtotal, &inv.TotalTax, &inv.CGSTAmount, &inv.SGSTAmount, &inv.IGSTAmount,
		&inv.CessAmount, &inv.TCSAmount, &inv.RoundOff, &inv.TotalAmount, &inv.AmountInWords,
		&inv.Notes, &inv.Terms, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.InvoiceDate = invoiceDate.Time
	inv.DueDate = timePtrFromDate(dueDate)
	inv.DeliveryDate = timePtrFromDate(deliveryDate)
	return &inv, nil
}

// InsertInvoice persists a fully computed invoice.
func (q *Queries) InsertInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO invoices (invoice_number, company_id, store_id, customer_id, created_by,
			invoice_date, due_date, status, place_of_supply, is_inter_state,
			billing_address, billing_city, billing_state, billing_pincode,
			transport_mode, vehicle_number, lr_number, eway_bill_number, po_number, delivery_date,
			subtotal, total_tax, cgst_amount, sgst_amount, igst_amount, cess_amount, tcs_amount,
			round_off, total_amount, amount_in_words, notes, terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)
		RETURNING `+invoiceColumns,
		inv.InvoiceNumber, inv.CompanyID, inv.StoreID, inv.CustomerID, inv.CreatedBy,
		pgtype.Date{Time: inv.InvoiceDate, Valid: true}, pgDateFromPtr(inv.DueDate),
		inv.Status, inv.PlaceOfSupply, inv.IsInterState,
		inv.BillingAddress, inv.BillingCity, inv.BillingState, inv.BillingPincode,
		inv.TransportMode, inv.VehicleNumber, inv.LRNumber, inv.EwayBillNumber,
		inv.PONumber, pgDateFromPtr(inv.DeliveryDate),
		inv.Subtotal, inv.TotalTax, inv.CGSTAmount, inv.SGSTAmount, inv.IGSTAmount,
		inv.CessAmount, inv.TCSAmount, inv.RoundOff, inv.TotalAmount, inv.AmountInWords,
		inv.Notes, inv.Terms,
	)
	return scanInvoice(row)
}

const invoiceItemColumns = `id, invoice_id, item_id, company_id, quantity, unit_price, subtotal,
	tax_rate, cgst_rate, sgst_rate, igst_rate, cgst_amount, sgst_amount, igst_amount,
	cess_rate, cess_amount, tax_amount, total_amount`

// InsertInvoiceItem persists one computed invoice line.
func (q *Queries) InsertInvoiceItem(ctx context.Context, item *domain.InvoiceItem) (*domain.InvoiceItem, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO invoice_items (invoice_id, item_id, company_id, quantity, unit_price, subtotal,
			tax_rate, cgst_rate, sgst_rate, igst_rate, cgst_amount, sgst_amount, igst_amount,
			cess_rate, cess_amount, tax_amount, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+invoiceItemColumns,
		item.InvoiceID, item.ItemID, item.CompanyID, item.Quantity, item.UnitPrice, item.Subtotal,
		item.TaxRate, item.CGSTRate, item.SGSTRate, item.IGSTRate,
		item.CGSTAmount, item.SGSTAmount, item.IGSTAmount,
		item.CessRate, item.CessAmount, item.TaxAmount, item.TotalAmount,
	)

	var out domain.InvoiceItem
	err := row.Scan(
		&out.ID, &out.InvoiceID, &out.ItemID, &out.CompanyID, &out.Quantity, &out.UnitPrice,
		&out.Subtotal, &out.TaxRate, &out.CGSTRate, &out.SGSTRate, &out.IGSTRate,
		&out.CGSTAmount, &out.SGSTAmount, &out.IGSTAmount,
		&out.CessRate, &out.CessAmount, &out.TaxAmount, &out.TotalAmount,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvoice fetches one invoice row by ID.
func (q *Queries) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	row := q.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	return scanInvoice(row)
}

// GetInvoiceByNumber fetches one invoice row by its unique number.
func (q *Queries) GetInvoiceByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	row := q.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number = $1`, number)
	return scanInvoice(row)
}

// ListInvoiceItems fetches all lines of an invoice in creation order.
func (q *Queries) ListInvoiceItems(ctx context.Context, invoiceID int64) ([]domain.InvoiceItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+invoiceItemColumns+`
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InvoiceItem
	for rows.Next() {
		var it domain.InvoiceItem
		err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.ItemID, &it.CompanyID, &it.Quantity, &it.UnitPrice,
			&it.Subtotal, &it.TaxRate, &it.CGSTRate, &it.SGSTRate, &it.IGSTRate,
			&it.CGSTAmount, &it.SGSTAmount, &it.IGSTAmount,
			&it.CessRate, &it.CessAmount, &it.TaxAmount, &it.TotalAmount,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListInvoices fetches invoice summaries for a company, newest first.
func (q *Queries) ListInvoices(ctx context.Context, companyID int64, limit, offset int32) ([]domain.InvoiceSummary, error) {
	rows, err := q.db.Query(ctx, `
		SELECT inv.id, inv.invoice_number, c.name, inv.store_id, inv.status,
			inv.invoice_date, inv.total_amount, inv.created_at
		FROM invoices inv
		JOIN customers c ON c.id = inv.customer_id
		WHERE inv.company_id = $1
		ORDER BY inv.created_at DESC, inv.id DESC
		LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.InvoiceSummary
	for rows.Next() {
		var s domain.InvoiceSummary
		var invoiceDate pgtype.Date
		err := rows.Scan(&s.ID, &s.InvoiceNumber, &s.CustomerName, &s.StoreID, &s.Status,
			&invoiceDate, &s.TotalAmount, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		s.InvoiceDate = invoiceDate.Time
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// SetInvoiceStatus updates an invoice's lifecycle status.
func (q *Queries) SetInvoiceStatus(ctx context.Context, id int64, status string) (bool, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RecentInvoiceNumbers returns up to limit invoice numbers for a store,
// newest first, restricted to the [from, to] invoice-date window when both
// bounds are non-zero. Implements numbering.Source.
func (q *Queries) RecentInvoiceNumbers(ctx context.Context, storeID int64, from, to time.Time, limit int32) ([]string, error) {
	sql := `
		SELECT invoice_number FROM invoices
		WHERE store_id = $1`
	args := []any{storeID}

	if !from.IsZero() && !to.IsZero() {
		sql += ` AND invoice_date BETWEEN $2 AND $3`
		args = append(args,
			pgtype.Date{Time: from, Valid: true},
			pgtype.Date{Time: to, Valid: true})
		sql += ` ORDER BY id DESC LIMIT $4`
	} else {
		sql += ` ORDER BY id DESC LIMIT $2`
	}
	args = append(args, limit)

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// InvoiceNumberExists reports whether the exact number is already issued.
// Implements numbering.Source.
func (q *Queries) InvoiceNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_number = $1)`, number).Scan(&exists)
	return exists, err
}
