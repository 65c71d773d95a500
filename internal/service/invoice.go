package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/vikasavn/dukaan/internal/domain"
	"github.com/vikasavn/dukaan/internal/gst"
	"github.com/vikasavn/dukaan/internal/jobs"
	"github.com/vikasavn/dukaan/internal/numbering"
	"github.com/vikasavn/dukaan/internal/telemetry"
)

// InvoiceService implements domain.InvoiceService.
type InvoiceService struct {
	db        txBeginner
	store     Store
	generator *numbering.Generator
	logger    *slog.Logger
	now       func() time.Time
}

// Compile-time check that InvoiceService implements domain.InvoiceService.
var _ domain.InvoiceService = (*InvoiceService)(nil)

// NewInvoiceService creates the invoicing service.
func NewInvoiceService(db txBeginner, store Store, generator *numbering.Generator, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{
		db:        db,
		store:     store,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateInvoice resolves the customer, reserves the next invoice number,
// computes GST per line, deducts stock, and persists the invoice with its
// lines. The whole operation is one transaction; an insufficient-stock line
// rolls everything back.
func (s *InvoiceService) CreateInvoice(ctx context.Context, params domain.CreateInvoiceParams) (*domain.InvoiceDetail, error) {
	if len(params.Items) == 0 {
		return nil, domain.ErrNoInvoiceItems
	}

	company, err := s.store.GetCompany(ctx, params.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, domain.Internal(err, "invoice.create", "failed to load company")
	}

	storeRec, err := s.store.GetStore(ctx, params.StoreID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, domain.Internal(err, "invoice.create", "failed to load store")
	}
	if storeRec.CompanyID != company.ID {
		return nil, domain.Invalid("invoice.create", "store does not belong to this company")
	}

	creator, err := s.store.GetUser(ctx, params.CreatedBy)
	if err != nil {
		return nil, err
	}

	invoiceDate := s.now()
	if params.InvoiceDate != nil {
		invoiceDate = *params.InvoiceDate
	}
	dueDate := params.DueDate
	if dueDate == nil && creator.DefaultPaymentTerms > 0 {
		d := invoiceDate.AddDate(0, 0, creator.DefaultPaymentTerms)
		dueDate = &d
	}

	terms := params.Terms
	if terms == "" {
		terms = creator.TermsAndConditions
	}
	if terms == "" {
		terms = domain.DefaultTerms
	}

	customer := resolveCustomer(params, company)

	placeOfSupply := params.PlaceOfSupply
	if placeOfSupply == "" {
		placeOfSupply = company.State
	}
	interState := gst.InterState(company.State, customer.State)

	var detail *domain.InvoiceDetail
	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		q := s.store.WithTx(tx)

		// Lock the store row first. Number reservation scans committed
		// invoices only, so concurrent creations for the same store must
		// serialize on this lock or they would reserve the same number.
		if _, err := q.GetStoreForUpdate(ctx, params.StoreID); err != nil {
			return err
		}

		cust, err := s.getOrCreateCustomer(ctx, q, customer)
		if err != nil {
			return err
		}

		number, err := s.generator.Next(ctx, q, creator.Numbering, params.StoreID, invoiceDate)
		if err != nil {
			return err
		}

		lines := make([]domain.InvoiceItem, 0, len(params.Items))
		lineTaxes := make([]gst.LineTax, 0, len(params.Items))
		for _, lineParams := range params.Items {
			line, lt, err := s.buildLine(ctx, q, lineParams, params.CompanyID, params.StoreID, number, interState)
			if err != nil {
				return err
			}
			lines = append(lines, *line)
			lineTaxes = append(lineTaxes, *lt)
		}

		totals := gst.CalculateTotals(lineTaxes, params.CessAmount, params.TCSAmount)

		inv := &domain.Invoice{
			InvoiceNumber: number,
			CompanyID:     params.CompanyID,
			StoreID:       params.StoreID,
			CustomerID:    cust.ID,
			CreatedBy:     params.CreatedBy,

			InvoiceDate:   invoiceDate,
			DueDate:       dueDate,
			Status:        domain.InvoiceStatusDraft,
			PlaceOfSupply: placeOfSupply,
			IsInterState:  interState,

			BillingAddress: customer.Address,
			BillingCity:    customer.City,
			BillingState:   customer.State,
			BillingPincode: customer.Pincode,

			TransportMode:  params.TransportMode,
			VehicleNumber:  params.VehicleNumber,
			LRNumber:       params.LRNumber,
			EwayBillNumber: params.EwayBillNumber,
			PONumber:       params.PONumber,
			DeliveryDate:   params.DeliveryDate,

			Subtotal:      totals.Subtotal,
			TotalTax:      totals.TotalTax,
			CGSTAmount:    totals.CGSTAmount,
			SGSTAmount:    totals.SGSTAmount,
			IGSTAmount:    totals.IGSTAmount,
			CessAmount:    params.CessAmount,
			TCSAmount:     params.TCSAmount,
			RoundOff:      totals.RoundOff,
			TotalAmount:   totals.TotalAmount,
			AmountInWords: totals.AmountInWords,

			Notes: params.Notes,
			Terms: terms,
		}

		saved, err := q.InsertInvoice(ctx, inv)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domain.ErrDuplicateInvoiceNumber
			}
			return err
		}

		for i := range lines {
			lines[i].InvoiceID = saved.ID
			item, err := q.InsertInvoiceItem(ctx, &lines[i])
			if err != nil {
				return err
			}
			lines[i] = *item
		}

		if jobErr := jobs.EnqueueInvoiceEmail(ctx, q, jobs.InvoiceEmailPayload{
			InvoiceID:     saved.ID,
			InvoiceNumber: saved.InvoiceNumber,
			CustomerEmail: cust.Email,
			CustomerName:  cust.Name,
			TotalDisplay:  gst.FormatIndianCurrency(saved.TotalAmount),
		}); jobErr != nil {
			return jobErr
		}

		detail = &domain.InvoiceDetail{Invoice: *saved, Items: lines}
		return nil
	})
	if err != nil {
		if domain.IsInsufficientStock(err) {
			if m := telemetry.Business; m != nil {
				m.InsufficientStock.WithLabelValues(
					strconv.FormatInt(params.CompanyID, 10),
					strconv.FormatInt(params.StoreID, 10),
				).Inc()
			}
			return nil, err
		}
		if domain.ErrorCode(err) != domain.EINTERNAL {
			return nil, err
		}
		return nil, domain.Internal(err, "invoice.create", "failed to create invoice")
	}

	if m := telemetry.Business; m != nil {
		m.InvoicesCreated.WithLabelValues(
			strconv.FormatInt(params.CompanyID, 10),
			strconv.FormatInt(params.StoreID, 10),
			strconv.FormatBool(interState),
		).Inc()
		amount, _ := detail.Invoice.TotalAmount.Float64()
		m.InvoiceValue.WithLabelValues(strconv.FormatInt(params.CompanyID, 10)).Observe(amount)
		m.InvoiceLines.WithLabelValues(strconv.FormatInt(params.CompanyID, 10)).Observe(float64(len(detail.Items)))
		m.JobsEnqueued.WithLabelValues(jobs.JobTypeInvoiceEmail).Inc()
	}

	s.logger.Info("invoice created",
		"invoice_id", detail.Invoice.ID,
		"invoice_number", detail.Invoice.InvoiceNumber,
		"company_id", params.CompanyID,
		"store_id", params.StoreID,
		"total_amount", detail.Invoice.TotalAmount.String(),
		"inter_state", interState,
	)
	return detail, nil
}

// buildLine computes one invoice line and deducts its stock.
func (s *InvoiceService) buildLine(ctx context.Context, q Store, lineParams domain.CreateInvoiceItemParams, invoiceCompanyID, storeID int64, invoiceNumber string, interState bool) (*domain.InvoiceItem, *gst.LineTax, error) {
	if !lineParams.Quantity.IsPositive() {
		return nil, nil, domain.Invalid("invoice.create", "line quantity must be positive")
	}

	companyID := lineParams.CompanyID
	if companyID == 0 {
		companyID = invoiceCompanyID
	}

	item, err := q.GetItem(ctx, lineParams.ItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrItemNotFound
		}
		return nil, nil, err
	}
	if !item.BelongsTo(companyID) {
		return nil, nil, domain.ErrItemNotInCompany
	}

	// Price can be overridden per line; the tax rate always comes from the
	// catalog.
	unitPrice := item.Price
	if lineParams.UnitPrice != nil && lineParams.UnitPrice.IsPositive() {
		unitPrice = *lineParams.UnitPrice
	}

	lt := gst.CalculateLine(lineParams.Quantity, unitPrice, item.TaxRate, lineParams.CessRate, interState)

	if err := s.deductStock(ctx, q, item, storeID, companyID, lineParams.Quantity, invoiceNumber); err != nil {
		return nil, nil, err
	}

	line := &domain.InvoiceItem{
		ItemID:    item.ID,
		CompanyID: companyID,

		Quantity:  lineParams.Quantity,
		UnitPrice: unitPrice,
		Subtotal:  lt.Subtotal,

		TaxRate:    item.TaxRate,
		CGSTRate:   lt.CGSTRate,
		SGSTRate:   lt.SGSTRate,
		IGSTRate:   lt.IGSTRate,
		CGSTAmount: lt.CGSTAmount,
		SGSTAmount: lt.SGSTAmount,
		IGSTAmount: lt.IGSTAmount,
		CessRate:   lineParams.CessRate,
		CessAmount: lt.CessAmount,

		TaxAmount:   lt.TaxAmount,
		TotalAmount: lt.TotalAmount,
	}
	return line, &lt, nil
}

// deductStock removes sold quantity from the store under a row lock and
// records the sale in the ledger. Stock that falls to or below its minimum
// level triggers a low-stock alert job.
func (s *InvoiceService) deductStock(ctx context.Context, q Store, item *domain.Item, storeID, companyID int64, quantity decimal.Decimal, invoiceNumber string) error {
	inv, err := q.GetInventoryForUpdate(ctx, item.ID, storeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.StockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Requested: quantity,
			}
		}
		return err
	}
	if inv.Quantity.LessThan(quantity) {
		return &domain.StockError{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Available: inv.Quantity,
			Requested: quantity,
		}
	}

	newQuantity := inv.Quantity.Sub(quantity)
	if err := q.SetInventoryQuantity(ctx, inv.ID, newQuantity); err != nil {
		return err
	}
	notes := fmt.Sprintf("Sale via Invoice #%s", invoiceNumber)
	if err := q.InsertTransaction(ctx, inv.ID, domain.TxTypeSale, quantity.Neg(), notes); err != nil {
		return err
	}

	if newQuantity.LessThanOrEqual(inv.MinStockLevel) {
		return jobs.EnqueueLowStockAlert(ctx, q, jobs.LowStockAlertPayload{
			InventoryID: inv.ID,
			ItemID:      item.ID,
			StoreID:     storeID,
			CompanyID:   companyID,
			Quantity:    newQuantity,
			MinLevel:    inv.MinStockLevel,
		})
	}
	return nil
}

// resolveCustomer applies walk-in defaults to absent customer fields. The
// customer state falls back to the company's own state, which makes an
// anonymous sale intra-state.
func resolveCustomer(params domain.CreateInvoiceParams, company *domain.Company) domain.Customer {
	c := domain.Customer{
		CompanyID:    params.CompanyID,
		Name:         params.CustomerName,
		Email:        params.CustomerEmail,
		Phone:        params.CustomerPhone,
		Address:      params.CustomerAddress,
		City:         params.CustomerCity,
		State:        params.CustomerState,
		Pincode:      params.CustomerPincode,
		GSTIN:        params.CustomerGSTIN,
		CustomerType: domain.CustomerTypeRetail,
	}
	if c.Name == "" {
		c.Name = domain.WalkInCustomerName
	}
	if c.Phone == "" {
		c.Phone = domain.WalkInPhone
	}
	if c.Address == "" {
		c.Address = domain.WalkInAddress
	}
	if c.City == "" {
		c.City = domain.WalkInCity
	}
	if c.Pincode == "" {
		c.Pincode = domain.WalkInPincode
	}
	if c.State == "" {
		c.State = company.State
	}
	return c
}

// getOrCreateCustomer reuses the customer with the same name under the
// company, creating it on first sight. The create path is an upsert so a
// concurrent first invoice for the same name resolves to one row instead of
// dying on the unique index.
func (s *InvoiceService) getOrCreateCustomer(ctx context.Context, q Store, customer domain.Customer) (*domain.Customer, error) {
	existing, err := q.GetCustomerByName(ctx, customer.CompanyID, customer.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return q.UpsertCustomer(ctx, customer)
}

// GetInvoice returns an invoice with its lines.
func (s *InvoiceService) GetInvoice(ctx context.Context, id int64) (*domain.InvoiceDetail, error) {
	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, domain.Internal(err, "invoice.get", "failed to get invoice")
	}
	return s.attachItems(ctx, inv)
}

// GetInvoiceByNumber returns an invoice with its lines by invoice number.
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.InvoiceDetail, error) {
	inv, err := s.store.GetInvoiceByNumber(ctx, invoiceNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, domain.Internal(err, "invoice.get_by_number", "failed to get invoice")
	}
	return s.attachItems(ctx, inv)
}

func (s *InvoiceService) attachItems(ctx context.Context, inv *domain.Invoice) (*domain.InvoiceDetail, error) {
	items, err := s.store.ListInvoiceItems(ctx, inv.ID)
	if err != nil {
		return nil, domain.Internal(err, "invoice.get", "failed to list invoice items")
	}
	return &domain.InvoiceDetail{Invoice: *inv, Items: items}, nil
}

// ListInvoices returns invoice summaries for a company, newest first.
func (s *InvoiceService) ListInvoices(ctx context.Context, companyID int64, limit, offset int32) ([]domain.InvoiceSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	summaries, err := s.store.ListInvoices(ctx, companyID, limit, offset)
	if err != nil {
		return nil, domain.Internal(err, "invoice.list", "failed to list invoices")
	}
	return summaries, nil
}

// UpdateInvoiceStatus moves an invoice through its lifecycle.
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case domain.InvoiceStatusDraft, domain.InvoiceStatusSent,
		domain.InvoiceStatusPaid, domain.InvoiceStatusCancelled:
	default:
		return domain.ErrInvalidInvoiceStatus
	}

	found, err := s.store.SetInvoiceStatus(ctx, id, status)
	if err != nil {
		return domain.Internal(err, "invoice.update_status", "failed to update status")
	}
	if !found {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
