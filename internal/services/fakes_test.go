package services

import (
	"context"
	"sync"
	"time"

	"gymtrack_backend/internal/email"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/mpesa"
	"gymtrack_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. They keep the same not-found sentinels as the
// gorm implementations so services cannot tell them apart.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(role *models.UserRole) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if role != nil && u.Role != *role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeTokenRepo) Create(token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *fakeTokenRepo) FindByToken(token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *fakeTokenRepo) DeleteExpired() error { return nil }

type fakePlanRepo struct {
	mu         sync.Mutex
	plans      map[string]*models.Plan
	referenced map[string]bool
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		plans:      make(map[string]*models.Plan),
		referenced: make(map[string]bool),
	}
}

func (r *fakePlanRepo) Create(plan *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	cp := *plan
	r.plans[plan.ID] = &cp
	return nil
}

func (r *fakePlanRepo) FindByID(id string) (*models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, repositories.ErrPlanNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlanRepo) FindByName(name string) (*models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPlanNotFound
}

func (r *fakePlanRepo) FindAll(activeOnly bool) ([]models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Plan
	for _, p := range r.plans {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlanRepo) Update(plan *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[plan.ID]; !ok {
		return repositories.ErrPlanNotFound
	}
	cp := *plan
	r.plans[plan.ID] = &cp
	return nil
}

func (r *fakePlanRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return repositories.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) IsReferenced(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.referenced[id], nil
}

type fakePaymentRepo struct {
	mu           sync.Mutex
	payments     map[string]*models.Payment
	transactions map[string]*models.MpesaTransaction
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments:     make(map[string]*models.Payment),
		transactions: make(map[string]*models.MpesaTransaction),
	}
}

func (r *fakePaymentRepo) CreatePayment(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) FindPaymentByID(id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) FindPaymentByReference(reference string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.Reference == reference {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *fakePaymentRepo) FindPaymentsByMember(memberID string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if p.MemberID == memberID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindAllPayments() ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdatePayment(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.ID]; !ok {
		return repositories.ErrPaymentNotFound
	}
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) DeletePayment(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) CreateTransaction(txn *models.MpesaTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	cp := *txn
	r.transactions[txn.CheckoutRequestID] = &cp
	return nil
}

func (r *fakePaymentRepo) FindTransactionByCheckoutID(checkoutRequestID string) (*models.MpesaTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[checkoutRequestID]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakePaymentRepo) FindTransactionByReference(reference string) (*models.MpesaTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.Reference == reference {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (r *fakePaymentRepo) UpdateTransaction(txn *models.MpesaTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.transactions[txn.CheckoutRequestID]
	if !ok {
		return repositories.ErrTransactionNotFound
	}
	status := stored.Status
	cp := *txn
	// The status column is owned by TransitionTransactionStatus.
	cp.Status = status
	r.transactions[txn.CheckoutRequestID] = &cp
	return nil
}

func (r *fakePaymentRepo) TransitionTransactionStatus(checkoutRequestID string, from, to models.TransactionStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[checkoutRequestID]
	if !ok || t.Status != from {
		return false, nil
	}
	t.Status = to
	return true, nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]*models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*models.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) FindByID(id string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, repositories.ErrSubscriptionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSubscriptionRepo) FindBySubscriptionID(subscriptionID string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.SubscriptionID == subscriptionID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) FindByMember(memberID string) ([]models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Subscription
	for _, s := range r.subs {
		if s.MemberID == memberID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) FindActiveByMember(memberID string, now time.Time) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.MemberID == memberID && s.Status == models.SubscriptionStatusActive && s.EndDate.After(now) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) FindAll() ([]models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Subscription
	for _, s := range r.subs {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Update(sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub.ID]; !ok {
		return repositories.ErrSubscriptionNotFound
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) Cancel(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok {
		return repositories.ErrSubscriptionNotFound
	}
	s.Status = models.SubscriptionStatusCancelled
	return nil
}

func (r *fakeSubscriptionRepo) MarkExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, s := range r.subs {
		if s.Status == models.SubscriptionStatusActive && !s.EndDate.After(now) {
			s.Status = models.SubscriptionStatusExpired
			count++
		}
	}
	return count, nil
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records []*models.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{}
}

func (r *fakeAttendanceRepo) Create(record *models.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeAttendanceRepo) ExistsForDate(memberID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.MemberID == memberID && rec.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) FindByMember(memberID string) ([]models.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Attendance
	for _, rec := range r.records {
		if rec.MemberID == memberID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) FindAll(date *time.Time) ([]models.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Attendance
	for _, rec := range r.records {
		if date != nil && !rec.Date.Equal(*date) {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

// fakeGateway scripts the provider acknowledgement.
type fakeGateway struct {
	response *mpesa.STKPushResponse
	err      error
	calls    []mpesa.STKPushRequest
}

func (g *fakeGateway) STKPush(_ context.Context, req mpesa.STKPushRequest) (*mpesa.STKPushResponse, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.response, nil
}

// recordingMailer captures outgoing mail instead of sending it.
type recordingMailer struct {
	mu       sync.Mutex
	welcomes []string
	receipts []email.ReceiptData
}

func (m *recordingMailer) SendWelcome(to, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, to)
	return nil
}

func (m *recordingMailer) SendPaymentReceipt(to string, data email.ReceiptData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts = append(m.receipts, data)
	return nil
}
