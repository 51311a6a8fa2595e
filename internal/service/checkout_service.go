package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/pos"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/internal/ws"
)

// Error definitions
var (
	ErrNoSeller          = errors.New("a seller must be selected before finalizing")
	ErrEmptyCart         = errors.New("cannot finalize an empty cart")
	ErrPaymentNotOpen    = errors.New("no payment session is open")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrSaleNotCompleted  = errors.New("only a completed sale can be cancelled")
)

// CheckoutService turns a finalized cart plus its payment breakdown into a
// persisted sale and a consistent stock state, and reverses that transition on
// cancellation or deletion. Every path runs inside one database transaction
// with the touched variant rows locked, so no concurrent register can
// interleave between the ledger write and the stock adjustment.
type CheckoutService interface {
	CommitSale(sess *pos.Session, operatorID string) (*model.Sale, error)
	CancelSale(id int64, operatorID string) (*model.Sale, error)
	DeleteSale(id int64) error
}

type checkoutService struct {
	db          *gorm.DB
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
	log         *logrus.Entry
}

func NewCheckoutService(db *gorm.DB, saleRepo repository.SaleRepository, productRepo repository.ProductRepository, hub *ws.Hub, log *logrus.Entry) CheckoutService {
	return &checkoutService{
		db:          db,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		wsHub:       hub,
		log:         log,
	}
}

// CommitSale persists the sale and decrements stock atomically. Live stock is
// re-validated under lock at commit time: the cart's snapshot bound can be
// stale once several registers sell from the same inventory, and a decrement
// below zero must never be committed. A SKU deleted since it was carted is
// skipped rather than failing the sale; its inventory record is already gone.
func (s *checkoutService) CommitSale(sess *pos.Session, operatorID string) (*model.Sale, error) {
	snapshot := sess.Cart().Snapshot()

	// Preconditions
	if snapshot.Seller == nil {
		return nil, ErrNoSeller
	}
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}
	payment := sess.Payment()
	if payment == nil {
		return nil, ErrPaymentNotOpen
	}
	result, err := payment.Finalize()
	if err != nil {
		return nil, err
	}

	var sale *model.Sale
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Sequential sale number under counter-row lock
		number, err := s.saleRepo.NextNumber(tx)
		if err != nil {
			return err
		}

		// 2-3. Build and persist the sale record
		sale = buildSale(number, snapshot, result, time.Now(), operatorID)
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		// 4. Decrement stock per line, after the ledger write
		for _, item := range snapshot.Items {
			variant, err := s.productRepo.LockVariantBySKU(tx, item.SKU)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					s.log.WithField("sku", item.SKU).Warn("sold SKU no longer exists, stock left untouched")
					continue
				}
				return err
			}
			if variant.Stock < item.Quantity {
				return fmt.Errorf("%w: %s has %d units left", ErrInsufficientStock, item.SKU, variant.Stock)
			}
			if err := s.productRepo.UpdateVariantStock(tx, variant.ID, variant.Stock-item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess.SetLastSale(sale)
	sess.VoidPayment()

	s.log.WithFields(logrus.Fields{
		"sale":  sale.DisplayID,
		"total": sale.FinalAmount.StringFixed(2),
		"items": len(sale.Items),
	}).Info("sale committed")

	go s.wsHub.BroadcastEvent(ws.Event{
		Type:    "sale",
		Action:  "committed",
		Payload: fiberSalePayload(sale),
		Message: fmt.Sprintf("Sale %s committed", sale.DisplayID),
	})

	return sale, nil
}

// CancelSale restocks every line of a completed sale and flips its status to
// cancelled. The record and its lines are kept for audit.
func (s *checkoutService) CancelSale(id int64, operatorID string) (*model.Sale, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.LockByID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}
		if sale.Status != model.SaleCompleted {
			return ErrSaleNotCompleted
		}

		if err := s.restock(tx, sale.Items); err != nil {
			return err
		}
		return s.saleRepo.UpdateStatus(tx, id, model.SaleCancelled, operatorID)
	})
	if err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.log.WithField("sale", sale.DisplayID).Info("sale cancelled, stock restored")

	go s.wsHub.BroadcastEvent(ws.Event{
		Type:    "sale",
		Action:  "cancelled",
		Payload: fiberSalePayload(sale),
		Message: fmt.Sprintf("Sale %s cancelled", sale.DisplayID),
	})

	return sale, nil
}

// DeleteSale removes the sale from the ledger entirely, restocking first when
// the sale was still completed. Cancelled or exchange sales have no pending
// stock effect to reverse.
func (s *checkoutService) DeleteSale(id int64) error {
	var displayID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.LockByID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}
		displayID = sale.DisplayID

		if sale.Status == model.SaleCompleted {
			if err := s.restock(tx, sale.Items); err != nil {
				return err
			}
		}
		return s.saleRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	s.log.WithField("sale", displayID).Info("sale deleted")

	go s.wsHub.BroadcastEvent(ws.Event{
		Type:    "sale",
		Action:  "deleted",
		Message: fmt.Sprintf("Sale %s deleted", displayID),
	})

	return nil
}

// restock returns every line's quantity to its variant. A SKU that no longer
// exists is skipped with a warning; its inventory record was removed upstream.
func (s *checkoutService) restock(tx *gorm.DB, items []model.SaleItem) error {
	for _, item := range items {
		variant, err := s.productRepo.LockVariantBySKU(tx, item.SKU)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.WithField("sku", item.SKU).Warn("restock skipped, SKU no longer exists")
				continue
			}
			return err
		}
		if err := s.productRepo.UpdateVariantStock(tx, variant.ID, variant.Stock+item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// buildSale assembles the sale record from the cart snapshot and the
// reconciled payment breakdown. Prices are the cart's unit prices at sale
// time, not live product prices.
func buildSale(number int64, snap pos.Snapshot, payment pos.FinalizeResult, at time.Time, operatorID string) *model.Sale {
	sale := &model.Sale{
		ID:          number,
		DisplayID:   model.FormatDisplayID(number),
		TotalAmount: snap.Subtotal,
		Discount:    decimal.Zero,
		DeliveryFee: decimal.Zero,
		FinalAmount: snap.Total,
		AmountPaid:  payment.AmountPaid,
		ChangeDue:   payment.ChangeDue,
		Timestamp:   at,
		Status:      model.SaleCompleted,
		CreatedBy:   operatorID,
		UpdatedBy:   operatorID,
	}

	if snap.Customer != nil {
		id := snap.Customer.ID
		sale.CustomerID = &id
		sale.CustomerName = snap.Customer.Name
	}
	if snap.Seller != nil {
		id := snap.Seller.ID
		sale.SellerID = &id
		sale.SellerName = snap.Seller.Name
	}
	if snap.Delivery != nil {
		sale.DeliveryFee = snap.Delivery.Fee
		sale.DeliveryAddress = snap.Delivery.Address
		sale.DeliveryNotes = snap.Delivery.Notes
	}

	for _, item := range snap.Items {
		sale.Items = append(sale.Items, model.SaleItem{
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}
	for i, tender := range payment.Payments {
		sale.Payments = append(sale.Payments, model.Payment{
			Position: i,
			Method:   tender.Method,
			Amount:   tender.Amount,
		})
	}
	return sale
}

// fiberSalePayload is the slim event body pushed over the websocket hub.
func fiberSalePayload(sale *model.Sale) map[string]interface{} {
	return map[string]interface{}{
		"id":           sale.ID,
		"display_id":   sale.DisplayID,
		"status":       sale.Status,
		"final_amount": sale.FinalAmount,
	}
}
