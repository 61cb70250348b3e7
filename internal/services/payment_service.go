package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gymtrack_backend/internal/email"
	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/mpesa"
	"gymtrack_backend/internal/reference"
	"gymtrack_backend/internal/repositories"
	"gymtrack_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// PaymentMethod is a closed set of method variants. MobileMoney carries the
// fields that only make sense for a push payment, so a cash payment can never
// smuggle in a phone number.
type PaymentMethod interface {
	model() models.PaymentMethod
}

type Cash struct{}

type MobileMoney struct {
	PhoneNumber string
	Description string
}

func (Cash) model() models.PaymentMethod        { return models.PaymentMethodCash }
func (MobileMoney) model() models.PaymentMethod { return models.PaymentMethodMpesa }

// MpesaGateway is the slice of the Daraja client the orchestrator needs.
type MpesaGateway interface {
	STKPush(ctx context.Context, req mpesa.STKPushRequest) (*mpesa.STKPushResponse, error)
}

// PaymentStatus pairs a payment with its mobile-money leg, when one exists.
type PaymentStatus struct {
	Payment     *models.Payment          `json:"payment"`
	Transaction *models.MpesaTransaction `json:"transaction,omitempty"`
}

// InitiatePaymentResult is what the initiation endpoint returns. Ack carries
// the provider's acknowledgement and is nil for cash.
type InitiatePaymentResult struct {
	Payment *models.Payment        `json:"payment"`
	Ack     *mpesa.STKPushResponse `json:"gateway_ack,omitempty"`
}

type PaymentService interface {
	// InitiatePayment records a payment for a member, acting as actorID.
	// Cash settles synchronously; mobile money only starts the flow and the
	// subscription is created later by ProcessCallback.
	InitiatePayment(ctx context.Context, actorID, memberID, planID string, method PaymentMethod) (*InitiatePaymentResult, error)

	// ProcessCallback reconciles an asynchronous provider callback. The
	// returned transaction is always the current row, including on replays.
	ProcessCallback(ctx context.Context, envelope *mpesa.CallbackEnvelope) (*models.MpesaTransaction, error)

	GetPaymentStatus(paymentID string) (*PaymentStatus, error)
	ListPayments() ([]models.Payment, error)
	ListMemberPayments(memberID string) ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo      repositories.PaymentRepository
	subscriptionRepo repositories.SubscriptionRepository
	planRepo         repositories.PlanRepository
	userRepo         repositories.UserRepository
	gateway          MpesaGateway
	mailer           email.Sender

	retainFailedPayments bool
	now                  func() time.Time
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	planRepo repositories.PlanRepository,
	userRepo repositories.UserRepository,
	gateway MpesaGateway,
	mailer email.Sender,
	retainFailedPayments bool,
) PaymentService {
	return &paymentService{
		paymentRepo:          paymentRepo,
		subscriptionRepo:     subscriptionRepo,
		planRepo:             planRepo,
		userRepo:             userRepo,
		gateway:              gateway,
		mailer:               mailer,
		retainFailedPayments: retainFailedPayments,
		now:                  time.Now,
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, actorID, memberID, planID string, method PaymentMethod) (*InitiatePaymentResult, error) {
	member, err := s.userRepo.FindByID(memberID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	plan, err := s.planRepo.FindByID(planID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if !plan.IsActive {
		return nil, apperrors.ErrPlanInactive
	}

	switch m := method.(type) {
	case Cash:
		return s.initiateCash(ctx, actorID, member, plan)
	case MobileMoney:
		return s.initiateMobileMoney(ctx, actorID, member, plan, m)
	default:
		return nil, apperrors.ErrInvalidPaymentMethod
	}
}

// initiateCash settles immediately: the staff member handing over the receipt
// is both recorder and confirmer, and the subscription starts now.
func (s *paymentService) initiateCash(ctx context.Context, actorID string, member *models.User, plan *models.Plan) (*InitiatePaymentResult, error) {
	ref := reference.Generate(models.PaymentMethodCash)

	payment := &models.Payment{
		MemberID:    member.ID,
		Amount:      plan.Price,
		Method:      models.PaymentMethodCash,
		Reference:   ref,
		PlanID:      plan.ID,
		RecordedBy:  actorID,
		ConfirmedBy: &actorID,
		Status:      models.PaymentStatusCompleted,
	}
	if err := s.paymentRepo.CreatePayment(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	sub, err := s.createSubscription(payment, plan)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "cash payment completed",
		"reference", ref,
		"member_id", member.ID,
		"plan_id", plan.ID,
		"subscription_id", sub.SubscriptionID,
	)

	s.sendReceipt(member, payment, plan, sub)
	return &InitiatePaymentResult{Payment: payment}, nil
}

// initiateMobileMoney pushes the payment to the provider. Nothing is persisted
// unless the provider acknowledges the push, so a rejected push leaves no
// orphan rows behind.
func (s *paymentService) initiateMobileMoney(ctx context.Context, actorID string, member *models.User, plan *models.Plan, m MobileMoney) (*InitiatePaymentResult, error) {
	ref := reference.Generate(models.PaymentMethodMpesa)

	desc := m.Description
	if desc == "" {
		desc = fmt.Sprintf("%s membership", plan.Name)
	}

	ack, err := s.gateway.STKPush(ctx, mpesa.STKPushRequest{
		PhoneNumber: m.PhoneNumber,
		Amount:      plan.Price,
		Reference:   ref,
		Description: desc,
	})
	if err != nil {
		return nil, err
	}
	if !ack.Accepted() {
		return nil, apperrors.ErrGatewayRequest(
			fmt.Errorf("stk push rejected with code %s", ack.ResponseCode),
			ack.ResponseDescription,
		)
	}

	txn := &models.MpesaTransaction{
		MerchantRequestID: ack.MerchantRequestID,
		CheckoutRequestID: ack.CheckoutRequestID,
		Reference:         ref,
		Amount:            plan.Price,
		PhoneNumber:       m.PhoneNumber,
		Description:       desc,
		Status:            models.TransactionStatusPending,
	}
	if err := s.paymentRepo.CreateTransaction(txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	payment := &models.Payment{
		MemberID:   member.ID,
		Amount:     plan.Price,
		Method:     models.PaymentMethodMpesa,
		Reference:  ref,
		PlanID:     plan.ID,
		RecordedBy: actorID,
		Status:     models.PaymentStatusPending,
	}
	if err := s.paymentRepo.CreatePayment(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "stk push accepted",
		"reference", ref,
		"checkout_request_id", ack.CheckoutRequestID,
		"member_id", member.ID,
	)

	return &InitiatePaymentResult{Payment: payment, Ack: ack}, nil
}

func (s *paymentService) ProcessCallback(ctx context.Context, envelope *mpesa.CallbackEnvelope) (*models.MpesaTransaction, error) {
	cb := envelope.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		return nil, apperrors.ErrInvalidCallback
	}

	txn, err := s.paymentRepo.FindTransactionByCheckoutID(cb.CheckoutRequestID)
	if err != nil {
		logger.CtxWarn(ctx, "callback for unknown transaction",
			"checkout_request_id", cb.CheckoutRequestID,
		)
		return nil, apperrors.ErrTransactionNotFound
	}

	// Duplicate delivery: the transaction is already terminal, answer with it
	// and touch nothing.
	if txn.Status != models.TransactionStatusPending {
		logger.CtxInfo(ctx, "callback replay ignored",
			"checkout_request_id", cb.CheckoutRequestID,
			"status", string(txn.Status),
		)
		return txn, nil
	}

	payment, err := s.paymentRepo.FindPaymentByReference(txn.Reference)
	if err != nil {
		logger.CtxError(ctx, "transaction has no matching payment",
			"checkout_request_id", cb.CheckoutRequestID,
			"reference", txn.Reference,
		)
		return nil, apperrors.ErrReconciliationInconsistent(cb.CheckoutRequestID)
	}

	target := models.TransactionStatusFailed
	if cb.Success() {
		target = models.TransactionStatusCompleted
	}

	// Single winner out of Pending. Losing the race means a concurrent
	// delivery finalized first; treat it exactly like a replay.
	won, err := s.paymentRepo.TransitionTransactionStatus(cb.CheckoutRequestID, models.TransactionStatusPending, target)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !won {
		current, err := s.paymentRepo.FindTransactionByCheckoutID(cb.CheckoutRequestID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return current, nil
	}

	txn.Status = target
	txn.ResultCode = &cb.ResultCode
	txn.ResultDesc = cb.ResultDesc
	if raw, err := json.Marshal(envelope); err == nil {
		txn.RawCallback = datatypes.JSON(raw)
	}

	if cb.Success() {
		return s.completePayment(ctx, txn, payment, &cb)
	}
	return s.failPayment(ctx, txn, payment, &cb)
}

func (s *paymentService) completePayment(ctx context.Context, txn *models.MpesaTransaction, payment *models.Payment, cb *mpesa.StkCallback) (*models.MpesaTransaction, error) {
	meta := cb.Metadata()
	if !meta.Amount.IsZero() {
		txn.Amount = meta.Amount
	}
	txn.MpesaReceiptNumber = meta.ReceiptNumber
	txn.TransactionDate = meta.TransactionDate
	if meta.PhoneNumber != "" {
		txn.PhoneNumber = meta.PhoneNumber
	}
	if err := s.paymentRepo.UpdateTransaction(txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	payment.Status = models.PaymentStatusCompleted
	if err := s.paymentRepo.UpdatePayment(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	plan, err := s.planRepo.FindByID(payment.PlanID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	sub, err := s.createSubscription(payment, plan)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "mpesa payment completed",
		"checkout_request_id", txn.CheckoutRequestID,
		"reference", txn.Reference,
		"receipt", txn.MpesaReceiptNumber,
		"subscription_id", sub.SubscriptionID,
	)

	if member, err := s.userRepo.FindByID(payment.MemberID); err == nil {
		s.sendReceipt(member, payment, plan, sub)
	}

	return txn, nil
}

func (s *paymentService) failPayment(ctx context.Context, txn *models.MpesaTransaction, payment *models.Payment, cb *mpesa.StkCallback) (*models.MpesaTransaction, error) {
	if err := s.paymentRepo.UpdateTransaction(txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.retainFailedPayments {
		payment.Status = models.PaymentStatusFailed
		if err := s.paymentRepo.UpdatePayment(payment); err != nil {
			return nil, apperrors.InternalError(err)
		}
	} else {
		if err := s.paymentRepo.DeletePayment(payment.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "mpesa payment failed",
		"checkout_request_id", txn.CheckoutRequestID,
		"reference", txn.Reference,
		"result_code", cb.ResultCode,
		"result_desc", cb.ResultDesc,
	)

	return txn, apperrors.ErrPaymentFailed(cb.ResultDesc)
}

// createSubscription grants access for the plan's duration starting now.
// AmountPaid snapshots the price actually paid so later plan edits do not
// rewrite subscription history.
func (s *paymentService) createSubscription(payment *models.Payment, plan *models.Plan) (*models.Subscription, error) {
	start := s.now()
	sub := &models.Subscription{
		SubscriptionID:   reference.SubscriptionID(payment.Reference, payment.MemberID, start),
		MemberID:         payment.MemberID,
		PlanID:           plan.ID,
		AmountPaid:       payment.Amount,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, plan.DurationDays),
		Status:           models.SubscriptionStatusActive,
		PaymentReference: payment.Reference,
	}
	if err := s.subscriptionRepo.Create(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

// sendReceipt mails asynchronously; delivery problems are logged and dropped.
func (s *paymentService) sendReceipt(member *models.User, payment *models.Payment, plan *models.Plan, sub *models.Subscription) {
	if s.mailer == nil {
		return
	}
	go func() {
		err := s.mailer.SendPaymentReceipt(member.Email, email.ReceiptData{
			Name:      member.Name,
			Reference: payment.Reference,
			Amount:    payment.Amount.StringFixed(2),
			Method:    string(payment.Method),
			PlanName:  plan.Name,
			EndDate:   sub.EndDate.Format("2006-01-02"),
		})
		if err != nil {
			logger.Warn("payment receipt email failed", "reference", payment.Reference, "error", err)
		}
	}()
}

func (s *paymentService) GetPaymentStatus(paymentID string) (*PaymentStatus, error) {
	payment, err := s.paymentRepo.FindPaymentByID(paymentID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	status := &PaymentStatus{Payment: payment}
	if payment.Method == models.PaymentMethodMpesa {
		// Best effort: a pending push may not have reported back yet and the
		// reference still resolves the transaction row.
		if txn, err := s.paymentRepo.FindTransactionByReference(payment.Reference); err == nil {
			status.Transaction = txn
		}
	}
	return status, nil
}

func (s *paymentService) ListPayments() ([]models.Payment, error) {
	payments, err := s.paymentRepo.FindAllPayments()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}

func (s *paymentService) ListMemberPayments(memberID string) ([]models.Payment, error) {
	payments, err := s.paymentRepo.FindPaymentsByMember(memberID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}
