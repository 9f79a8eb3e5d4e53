package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vyasarsoft/invoices_backend/config"
	"github.com/vyasarsoft/invoices_backend/utils"
	"gorm.io/gorm"
)

type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	UserId        int             `gorm:"index;not null" json:"user_id"`
	PublicId      string          `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	IsPublic      *bool           `gorm:"not null;default:false" json:"is_public"`
	InvoiceNumber string          `gorm:"size:255;not null" json:"invoice_number" binding:"required"`
	Date          time.Time       `gorm:"not null" json:"date" binding:"required"`
	FromName      string          `gorm:"size:255" json:"from_name"`
	FromEmail     string          `gorm:"size:255" json:"from_email"`
	ToName        string          `gorm:"size:255" json:"to_name"`
	ToEmail       string          `gorm:"size:255" json:"to_email"`
	ToAddress     string          `gorm:"type:text" json:"to_address"`
	Status        InvoiceStatus   `gorm:"type:enum('paid', 'unpaid', 'partial', 'overdue');default:unpaid" json:"status"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_rate"`
	Discount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceId" json:"items"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type InvoiceItem struct {
	ID          int             `gorm:"primary_key" json:"-"`
	InvoiceId   int             `gorm:"index;not null" json:"-"`
	ItemId      string          `gorm:"size:36;not null" json:"id"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	Description string          `gorm:"size:255" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoice struct {
	InvoiceNumber string           `json:"invoice_number" binding:"required"`
	Date          time.Time        `json:"date" binding:"required"`
	FromName      string           `json:"from_name"`
	FromEmail     string           `json:"from_email"`
	ToName        string           `json:"to_name"`
	ToEmail       string           `json:"to_email"`
	ToAddress     string           `json:"to_address"`
	Status        InvoiceStatus    `json:"status"`
	TaxRate       decimal.Decimal  `json:"tax_rate"`
	Discount      decimal.Decimal  `json:"discount"`
	IsPublic      *bool            `json:"is_public"`
	Items         []NewInvoiceItem `json:"items"`
}

type NewInvoiceItem struct {
	ItemId      string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

/*
caches:
	PublicInvoice:$publicId
*/

func (inv Invoice) RemoveInstanceRedis() error {
	if err := config.RemoveRedisKey("PublicInvoice:" + inv.PublicId); err != nil {
		return err
	}
	return nil
}

// Recompute rebuilds every derived field from quantities, rates, tax rate
// and discount. Carried subtotal/tax/total values are never trusted.
func (inv *Invoice) Recompute() {
	amounts := make([]decimal.Decimal, 0, len(inv.Items))
	for i := range inv.Items {
		inv.Items[i].Amount = utils.CalculateItemAmount(inv.Items[i].Quantity, inv.Items[i].Rate)
		amounts = append(amounts, inv.Items[i].Amount)
	}
	totals := utils.CalculateInvoiceTotals(amounts, inv.TaxRate, inv.Discount)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
}

// DefaultInvoice returns a fresh editing draft: timestamp based number,
// 10% tax and a single blank line item.
func DefaultInvoice(userId int) *Invoice {
	inv := Invoice{
		UserId:        userId,
		PublicId:      uuid.New().String(),
		IsPublic:      utils.NewFalse(),
		InvoiceNumber: fmt.Sprintf("INV-%d", time.Now().UnixMilli()),
		Date:          time.Now(),
		Status:        InvoiceStatusUnpaid,
		TaxRate:       decimal.NewFromInt(10),
		Items: []InvoiceItem{
			{
				ItemId:   uuid.New().String(),
				Position: 0,
				Quantity: decimal.NewFromInt(1),
			},
		},
	}
	inv.Recompute()
	return &inv
}

func (input NewInvoice) validate() error {
	if input.Status != "" && !input.Status.IsValid() {
		return fmt.Errorf("%s is not a valid InvoiceStatus", input.Status)
	}
	if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("tax_rate must be between 0 and 100")
	}
	if input.Discount.IsNegative() {
		return errors.New("discount cannot be negative")
	}
	return nil
}

// BuildInvoiceItems converts input lines to stored items, assigning
// stable ids and positions.
func BuildInvoiceItems(input []NewInvoiceItem) []InvoiceItem {
	items := make([]InvoiceItem, 0, len(input))
	for i, item := range input {
		itemId := item.ItemId
		if itemId == "" {
			itemId = uuid.New().String()
		}
		items = append(items, InvoiceItem{
			ItemId:      itemId,
			Position:    i,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		})
	}
	return items
}

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	db := config.GetDB()

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	if err := utils.ValidateUnique[Invoice](ctx, userId, "invoice_number", input.InvoiceNumber, 0); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = InvoiceStatusUnpaid
	}
	isPublic := input.IsPublic
	if isPublic == nil {
		isPublic = utils.NewFalse()
	}

	invoice := Invoice{
		UserId:        userId,
		PublicId:      uuid.New().String(),
		IsPublic:      isPublic,
		InvoiceNumber: input.InvoiceNumber,
		Date:          input.Date,
		FromName:      input.FromName,
		FromEmail:     input.FromEmail,
		ToName:        input.ToName,
		ToEmail:       input.ToEmail,
		ToAddress:     input.ToAddress,
		Status:        status,
		TaxRate:       input.TaxRate,
		Discount:      input.Discount,
		Items:         BuildInvoiceItems(input.Items),
	}
	invoice.Recompute()

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &invoice, nil
}

// SaveInvoice persists an invoice whose items were edited in memory.
// Items are replaced wholesale to keep positions authoritative.
func SaveInvoice(ctx context.Context, invoice *Invoice) (*Invoice, error) {
	invoice.Recompute()
	return saveInvoice(ctx, invoice)
}

func saveInvoice(ctx context.Context, invoice *Invoice) (*Invoice, error) {
	db := config.GetDB()

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Where("invoice_id = ?", invoice.ID).Delete(&InvoiceItem{}).Error; err != nil {
		return nil, err
	}
	for i := range invoice.Items {
		invoice.Items[i].ID = 0
		invoice.Items[i].InvoiceId = invoice.ID
		invoice.Items[i].Position = i
	}

	if err := tx.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := invoice.RemoveInstanceRedis(); err != nil {
		return nil, err
	}

	return invoice, nil
}

// DeleteInvoice removes an invoice with its items. Callers confirm the
// delete before this runs; there is no soft-delete or undo.
func DeleteInvoice(ctx context.Context, id int) (*Invoice, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	result, err := utils.FetchModel[Invoice](ctx, userId, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&result).Association("Items").Unscoped().Clear(); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := result.RemoveInstanceRedis(); err != nil {
		return nil, err
	}

	return result, nil
}

func UpdateInvoiceStatus(ctx context.Context, id int, status string) (*Invoice, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	parsed, err := ParseInvoiceStatus(status)
	if err != nil {
		return nil, err
	}

	invoice, err := utils.FetchModel[Invoice](ctx, userId, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&invoice).Updates(map[string]interface{}{
		"Status": parsed,
	}).Error; err != nil {
		return nil, err
	}
	invoice.Status = parsed

	if err := invoice.RemoveInstanceRedis(); err != nil {
		return nil, err
	}

	return invoice, nil
}

// MarkInvoicePublic enables the read-only share link. Sending the invoice
// by email implies sharing, so the mail flow calls this first.
func MarkInvoicePublic(ctx context.Context, id int) (*Invoice, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	invoice, err := utils.FetchModel[Invoice](ctx, userId, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&invoice).Updates(map[string]interface{}{
		"IsPublic": utils.NewTrue(),
	}).Error; err != nil {
		return nil, err
	}
	invoice.IsPublic = utils.NewTrue()

	if err := invoice.RemoveInstanceRedis(); err != nil {
		return nil, err
	}

	return invoice, nil
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	var result Invoice
	err := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userId).
		First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	return &result, nil
}

// ForPublicView blanks owner-only fields when the request arrived through
// the unauthenticated share route.
func (inv *Invoice) ForPublicView(ctx context.Context) *Invoice {
	if public, ok := utils.GetPublicViewFromContext(ctx); ok && public {
		inv.UserId = 0
	}
	return inv
}

// GetPublicInvoice serves the shared read-only page. The lookup needs both
// the public id and the is_public flag so revoking a share takes effect
// immediately.
func GetPublicInvoice(ctx context.Context, publicId string) (*Invoice, error) {
	var result Invoice

	exists, err := config.GetRedisObject("PublicInvoice:"+publicId, &result)
	if err != nil {
		return nil, err
	}
	if exists {
		return result.ForPublicView(ctx), nil
	}

	db := config.GetDB()
	err = db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("public_id = ? AND is_public = ?", publicId, true).
		First(&result).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := config.SetRedisObject("PublicInvoice:"+publicId, &result, time.Hour); err != nil {
		return nil, err
	}

	return result.ForPublicView(ctx), nil
}

type InvoiceFilter struct {
	Search    string     `form:"search"`
	Status    string     `form:"status"`
	DateRange string     `form:"date_range"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

func (filter InvoiceFilter) apply(dbCtx *gorm.DB) (*gorm.DB, error) {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("invoice_number LIKE ? OR to_name LIKE ?", like, like)
	}
	if filter.Status != "" && filter.Status != "all" {
		status, err := ParseInvoiceStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		dbCtx = dbCtx.Where("status = ?", status)
	}

	switch filter.DateRange {
	case "", "all":
	case "today":
		start, end := utils.GetTodayRange()
		dbCtx = dbCtx.Where("date BETWEEN ? AND ?", start, end)
	case "this_week":
		start, end := utils.GetThisWeekRange()
		dbCtx = dbCtx.Where("date BETWEEN ? AND ?", start, end)
	case "this_month":
		start, end := utils.GetThisMonthRange()
		dbCtx = dbCtx.Where("date BETWEEN ? AND ?", start, end)
	case "custom":
		if filter.From == nil || filter.To == nil {
			return nil, errors.New("custom date_range requires from and to")
		}
		end := filter.To.Add(time.Hour*23 + time.Minute*59 + time.Second*59)
		dbCtx = dbCtx.Where("date BETWEEN ? AND ?", *filter.From, end)
	default:
		return nil, fmt.Errorf("%s is not a valid date_range", filter.DateRange)
	}

	return dbCtx, nil
}

func ListInvoices(ctx context.Context, filter InvoiceFilter) ([]*Invoice, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userId)

	dbCtx, err := filter.apply(dbCtx)
	if err != nil {
		return nil, err
	}

	var results []*Invoice
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
