package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mt "StorefrontAPI/external/midtrans"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/repository"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PaymentService struct {
	PaymentRepo *repository.PaymentRepository
	OrderRepo   *repository.OrderRepository
	Snap        *snap.Client
}

func NewPaymentService(pr *repository.PaymentRepository, or *repository.OrderRepository, snap *snap.Client) *PaymentService {
	return &PaymentService{
		PaymentRepo: pr,
		OrderRepo:   or,
		Snap:        snap,
	}
}

// grossAmount converts the decimal order total to minor units (cents).
// The gross amount on the wire is an integer; truncating to whole
// units would silently drop the cents of every total.
func grossAmount(total decimal.Decimal) int64 {
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateSnapPayment creates a midtrans Snap transaction for a pending
// credit-card order and returns the redirect URL. Cash-on-delivery
// orders never come through here.
func (s *PaymentService) CreateSnapPayment(ctx context.Context, orderID int64) (string, error) {
	order, err := s.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return "", errors.New("order not found")
	}

	if order.PaymentMethod != model.PaymentCreditCard {
		return "", errors.New("order is not payable online")
	}
	if order.Status != model.OrderStatusPending {
		return "", errors.New("order cannot be paid")
	}

	existing, err := s.PaymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.PaymentStatus == "Pending" {
		return "", errors.New("payment already exists")
	}

	externalRef := fmt.Sprintf("ORDER-%d-%s", orderID, uuid.NewString())
	amount := grossAmount(order.Total)

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  externalRef,
			GrossAmt: amount,
		},
	}

	resp, snapErr := s.Snap.CreateTransaction(req)
	if snapErr != nil {
		return "", snapErr
	}

	payload, _ := json.Marshal(resp)

	_, err = s.PaymentRepo.CreatePending(
		ctx,
		orderID,
		amount,
		"midtrans",
		externalRef,
		payload,
	)
	if err != nil {
		return "", err
	}

	return resp.RedirectURL, nil
}

// HandleNotification processes a midtrans webhook. Settled payments
// move the order pending -> processing; repeated notifications for an
// already-processed order are ignored.
func (s *PaymentService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	orderIDStr, ok := payload["order_id"].(string)
	if !ok {
		return errors.New("missing order_id")
	}

	// Extract internal order ID from ORDER-{id}-UUID
	var orderID int64
	if _, err := fmt.Sscanf(orderIDStr, "ORDER-%d-", &orderID); err != nil {
		return errors.New("invalid order reference")
	}

	order, err := s.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != model.OrderStatusPending {
		// already processed or cancelled, safely ignore
		return nil
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmt, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if !mt.VerifySignature(
		orderIDStr,
		statusCode,
		grossAmt,
		signature,
		mt.ServerKey(),
	) {
		return errors.New("invalid signature")
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	switch transactionStatus {
	case "settlement":
		return s.markPaymentPaid(ctx, orderID, orderIDStr, payload)
	case "capture":
		if fraudStatus == "accept" {
			return s.markPaymentPaid(ctx, orderID, orderIDStr, payload)
		}
	case "expire", "cancel", "deny":
		return s.markPaymentFailed(ctx, orderID, payload)
	}

	return nil
}

// markPaymentPaid flips the payment row and the order status in one
// transaction so neither can be observed without the other.
func (s *PaymentService) markPaymentPaid(ctx context.Context, orderID int64, providerRef string, payload map[string]interface{}) error {
	data, _ := json.Marshal(payload)

	tx, err := s.PaymentRepo.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.PaymentRepo.MarkPaidTx(ctx, tx, orderID, providerRef, data); err != nil {
		return err
	}
	if err := s.OrderRepo.SetStatusTx(ctx, tx, orderID, model.OrderStatusProcessing); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.WithField("orderid", orderID).Info("payment settled")
	return nil
}

func (s *PaymentService) markPaymentFailed(ctx context.Context, orderID int64, payload map[string]interface{}) error {
	data, _ := json.Marshal(payload)
	if err := s.PaymentRepo.MarkFailed(ctx, orderID, data); err != nil {
		return err
	}
	log.WithField("orderid", orderID).Info("payment failed or expired")
	return nil
}
