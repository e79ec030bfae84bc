package usecase

import (
	"context"
	"time"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

// In-memory repository fakes. They cover exactly what the use cases touch;
// list filtering stays with the real Postgres implementations.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter port.UserFilter) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeResetTokenRepo struct {
	tokens map[string]*port.ResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]*port.ResetToken)}
}

func (r *fakeResetTokenRepo) Create(ctx context.Context, token *port.ResetToken) error {
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeResetTokenRepo) FindValid(ctx context.Context, tokenHash string, now time.Time) (*port.ResetToken, error) {
	t, ok := r.tokens[tokenHash]
	if !ok || now.After(t.ExpiresAt) {
		return nil, nil
	}
	return t, nil
}

func (r *fakeResetTokenRepo) Consume(ctx context.Context, tokenHash string) error {
	delete(r.tokens, tokenHash)
	return nil
}

type fakePropertyRepo struct {
	properties map[uuid.UUID]*domain.Property

	lastListFilter port.PropertyFilter
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[uuid.UUID]*domain.Property)}
}

func (r *fakePropertyRepo) Create(ctx context.Context, property *domain.Property) error {
	r.properties[property.ID] = property
	return nil
}

func (r *fakePropertyRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	return r.properties[id], nil
}

func (r *fakePropertyRepo) List(ctx context.Context, filter port.PropertyFilter) ([]*domain.Property, error) {
	r.lastListFilter = filter
	out := make([]*domain.Property, 0, len(r.properties))
	for _, p := range r.properties {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePropertyRepo) Update(ctx context.Context, property *domain.Property) error {
	r.properties[property.ID] = property
	return nil
}

func (r *fakePropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.properties, id)
	return nil
}

func (r *fakePropertyRepo) AppendImages(ctx context.Context, id uuid.UUID, urls []string) error {
	p := r.properties[id]
	if p != nil {
		p.Images = append(p.Images, urls...)
	}
	return nil
}

type fakeContractRepo struct {
	contracts map[uuid.UUID]*domain.Contract
	sessions  map[uuid.UUID]*domain.SignatureSession

	signedCheques    []*domain.ChequePayment
	signedCommission *domain.Commission
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{
		contracts: make(map[uuid.UUID]*domain.Contract),
		sessions:  make(map[uuid.UUID]*domain.SignatureSession),
	}
}

func (r *fakeContractRepo) Create(ctx context.Context, contract *domain.Contract) error {
	r.contracts[contract.ID] = contract
	return nil
}

func (r *fakeContractRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	return r.contracts[id], nil
}

func (r *fakeContractRepo) List(ctx context.Context, filter port.ContractFilter) ([]*domain.Contract, error) {
	out := make([]*domain.Contract, 0, len(r.contracts))
	for _, c := range r.contracts {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeContractRepo) Update(ctx context.Context, contract *domain.Contract) error {
	r.contracts[contract.ID] = contract
	return nil
}

func (r *fakeContractRepo) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) (*domain.Contract, error) {
	for _, c := range r.contracts {
		if c.PropertyID == propertyID && !c.Status.Terminal() {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeContractRepo) ReplaceSignatureSession(ctx context.Context, session *domain.SignatureSession) error {
	r.sessions[session.ContractID] = session
	return nil
}

func (r *fakeContractRepo) FindSignatureSession(ctx context.Context, contractID uuid.UUID) (*domain.SignatureSession, error) {
	return r.sessions[contractID], nil
}

func (r *fakeContractRepo) UpdateSignatureSession(ctx context.Context, session *domain.SignatureSession) error {
	r.sessions[session.ContractID] = session
	return nil
}

func (r *fakeContractRepo) DeleteSignatureSession(ctx context.Context, contractID uuid.UUID) error {
	delete(r.sessions, contractID)
	return nil
}

func (r *fakeContractRepo) Sign(ctx context.Context, contract *domain.Contract, property *domain.Property,
	cheques []*domain.ChequePayment, commission *domain.Commission) error {
	r.contracts[contract.ID] = contract
	r.signedCheques = cheques
	r.signedCommission = commission
	return nil
}

type fakeApplicationRepo struct {
	applications map[uuid.UUID]*domain.Application

	approvedContract *domain.Contract
	approvedProperty *domain.Property
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[uuid.UUID]*domain.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, application *domain.Application) error {
	r.applications[application.ID] = application
	return nil
}

func (r *fakeApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	return r.applications[id], nil
}

func (r *fakeApplicationRepo) List(ctx context.Context, filter port.ApplicationFilter) ([]*domain.Application, error) {
	out := make([]*domain.Application, 0, len(r.applications))
	for _, a := range r.applications {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeApplicationRepo) Update(ctx context.Context, application *domain.Application) error {
	r.applications[application.ID] = application
	return nil
}

func (r *fakeApplicationRepo) Approve(ctx context.Context, application *domain.Application,
	contract *domain.Contract, property *domain.Property) error {
	r.applications[application.ID] = application
	r.approvedContract = contract
	r.approvedProperty = property
	return nil
}

type fakeSavedPropertyRepo struct {
	saved map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeSavedPropertyRepo() *fakeSavedPropertyRepo {
	return &fakeSavedPropertyRepo{saved: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (r *fakeSavedPropertyRepo) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	if r.saved[userID] == nil {
		r.saved[userID] = make(map[uuid.UUID]bool)
	}
	r.saved[userID][propertyID] = true
	return nil
}

func (r *fakeSavedPropertyRepo) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	delete(r.saved[userID], propertyID)
	return nil
}

func (r *fakeSavedPropertyRepo) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.saved[userID]))
	for id := range r.saved[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeSavedPropertyRepo) ListProperties(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Property, error) {
	return nil, nil
}

type fakePaymentRepo struct {
	cheques map[uuid.UUID]*domain.ChequePayment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{cheques: make(map[uuid.UUID]*domain.ChequePayment)}
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChequePayment, error) {
	return r.cheques[id], nil
}

func (r *fakePaymentRepo) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.ChequePayment, error) {
	out := make([]*domain.ChequePayment, 0, len(r.cheques))
	for _, c := range r.cheques {
		if c.ContractID == contractID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, cheque *domain.ChequePayment) error {
	r.cheques[cheque.ID] = cheque
	return nil
}

// fakePublisher records every published event.
type fakePublisher struct {
	events []port.DomainEvent
}

func (p *fakePublisher) Publish(ctx context.Context, event port.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}
