package repositories

import (
	"errors"

	"gymtrack_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrTransactionNotFound = errors.New("mpesa transaction not found")
)

type PaymentRepository interface {
	// Payment rows
	CreatePayment(payment *models.Payment) error
	FindPaymentByID(id string) (*models.Payment, error)
	FindPaymentByReference(reference string) (*models.Payment, error)
	FindPaymentsByMember(memberID string) ([]models.Payment, error)
	FindAllPayments() ([]models.Payment, error)
	UpdatePayment(payment *models.Payment) error
	DeletePayment(id string) error

	// Mobile-money transaction rows
	CreateTransaction(txn *models.MpesaTransaction) error
	FindTransactionByCheckoutID(checkoutRequestID string) (*models.MpesaTransaction, error)
	FindTransactionByReference(reference string) (*models.MpesaTransaction, error)
	UpdateTransaction(txn *models.MpesaTransaction) error
	// TransitionTransactionStatus flips the transaction out of Pending with a
	// status-guarded update. It returns false when another delivery already
	// won the transition, which is how duplicate callbacks are detected.
	TransitionTransactionStatus(checkoutRequestID string, from, to models.TransactionStatus) (bool, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindPaymentByID(id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindPaymentByReference(reference string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindPaymentsByMember(memberID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("member_id = ?", memberID).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepositoryImpl) FindAllPayments() ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepositoryImpl) UpdatePayment(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

func (r *PaymentRepositoryImpl) DeletePayment(id string) error {
	return r.db.Delete(&models.Payment{}, "id = ?", id).Error
}

func (r *PaymentRepositoryImpl) CreateTransaction(txn *models.MpesaTransaction) error {
	return r.db.Create(txn).Error
}

func (r *PaymentRepositoryImpl) FindTransactionByCheckoutID(checkoutRequestID string) (*models.MpesaTransaction, error) {
	var txn models.MpesaTransaction
	if err := r.db.First(&txn, "checkout_request_id = ?", checkoutRequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *PaymentRepositoryImpl) FindTransactionByReference(reference string) (*models.MpesaTransaction, error) {
	var txn models.MpesaTransaction
	if err := r.db.First(&txn, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *PaymentRepositoryImpl) UpdateTransaction(txn *models.MpesaTransaction) error {
	return r.db.Save(txn).Error
}

func (r *PaymentRepositoryImpl) TransitionTransactionStatus(checkoutRequestID string, from, to models.TransactionStatus) (bool, error) {
	result := r.db.Model(&models.MpesaTransaction{}).
		Where("checkout_request_id = ? AND status = ?", checkoutRequestID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
