package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/application/editor"
	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/internal/domain/repository"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
)

// SessionService owns the in-memory editing sessions. A session holds a
// catalogue snapshot and one editor; every mutation runs under the service
// lock because editors themselves are not safe for concurrent use. Sessions
// live until submitted or discarded and do not survive a restart.
type SessionService struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*editor.Session

	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	salesSvc     *SalesOrderService
	purchaseSvc  *PurchaseOrderService
}

// NewSessionService creates a new session service
func NewSessionService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	salesSvc *SalesOrderService,
	purchaseSvc *PurchaseOrderService,
) *SessionService {
	return &SessionService{
		sessions:     make(map[uuid.UUID]*editor.Session),
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		salesSvc:     salesSvc,
		purchaseSvc:  purchaseSvc,
	}
}

// CreateSession opens an editing session of the given kind over a fresh
// catalogue snapshot. The editor starts with one empty line.
func (s *SessionService) CreateSession(ctx context.Context, kind editor.OrderKind) (*editor.Session, error) {
	catalogue, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	session := editor.NewSession(kind, catalogue, categories)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// GetSession retrieves an open session
func (s *SessionService) GetSession(id uuid.UUID) (*editor.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked(id)
}

// CloseSession discards a session without submitting it
func (s *SessionService) CloseSession(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// AddLine appends a new empty line to the session's editor
func (s *SessionService) AddLine(sessionID uuid.UUID) (*editor.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Editor.AddLine(), nil
}

// RemoveLine removes a line from the session's editor. The last remaining
// line is protected.
func (s *SessionService) RemoveLine(sessionID uuid.UUID, lineID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return err
	}
	return session.Editor.RemoveLine(lineID)
}

// SelectProduct sets a line's product; nil clears the selection
func (s *SessionService) SelectProduct(sessionID uuid.UUID, lineID int, productID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return err
	}
	return session.Editor.SelectProduct(lineID, productID)
}

// SetQuantity commits a raw quantity input on a line
func (s *SessionService) SetQuantity(sessionID uuid.UUID, lineID int, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return err
	}
	return session.Editor.SetQuantity(lineID, raw)
}

// SetUnitPrice commits a raw unit price input on a line
func (s *SessionService) SetUnitPrice(sessionID uuid.UUID, lineID int, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return err
	}
	return session.Editor.SetUnitPrice(lineID, raw)
}

// SetLineDiscount commits a raw discount input on a sales line
func (s *SessionService) SetLineDiscount(sessionID uuid.UUID, lineID int, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return err
	}
	return session.Editor.SetLineDiscount(lineID, raw)
}

// SetTaxRate commits a tax rate selection on a purchase line
func (s *SessionService) SetTaxRate(sessionID uuid.UUID, lineID int, rate enum.TaxRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return err
	}
	return session.Editor.SetTaxRate(lineID, rate)
}

// ApplyCategoryFilter narrows a line's selectable products and resets the
// line to its defaults.
func (s *SessionService) ApplyCategoryFilter(sessionID uuid.UUID, lineID int, category *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return err
	}
	return session.Editor.ApplyCategoryFilter(lineID, category)
}

// Validate runs the aggregate submission gate on a session's lines
func (s *SessionService) Validate(sessionID uuid.UUID) (bool, []apperror.FieldError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.locked(sessionID)
	if err != nil {
		return false, nil, err
	}
	ok, errs := session.Editor.Validate()
	return ok, errs, nil
}

// SubmitSalesInput carries the order header for a sales submission
type SubmitSalesInput struct {
	CustomerName string
	OrderDate    time.Time
	PaymentType  string
	Notes        *string
}

// SubmitSales validates the session and persists it as a sales order. The
// session is discarded only after the order is created.
func (s *SessionService) SubmitSales(ctx context.Context, sessionID uuid.UUID, input *SubmitSalesInput) (*entity.SalesOrder, error) {
	records, err := s.takeRecords(sessionID, editor.KindSales)
	if err != nil {
		return nil, err
	}

	order, err := s.salesSvc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerName: input.CustomerName,
		OrderDate:    input.OrderDate,
		PaymentType:  input.PaymentType,
		Notes:        input.Notes,
		Lines:        records,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return order, nil
}

// SubmitPurchaseInput carries the order header for a purchase submission
type SubmitPurchaseInput struct {
	SupplierName       string
	OrderDate          time.Time
	ExpectedDeliveryAt *time.Time
	Notes              *string
}

// SubmitPurchase validates the session and persists it as a purchase order
func (s *SessionService) SubmitPurchase(ctx context.Context, sessionID uuid.UUID, input *SubmitPurchaseInput) (*entity.PurchaseOrder, error) {
	records, err := s.takeRecords(sessionID, editor.KindPurchase)
	if err != nil {
		return nil, err
	}

	order, err := s.purchaseSvc.CreatePurchaseOrder(ctx, &CreatePurchaseOrderInput{
		SupplierName:       input.SupplierName,
		OrderDate:          input.OrderDate,
		ExpectedDeliveryAt: input.ExpectedDeliveryAt,
		Notes:              input.Notes,
		Lines:              records,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return order, nil
}

// takeRecords gates a submission: the session must exist, be of the right
// kind and pass validation. The session itself stays open on failure so the
// caller can fix the flagged fields and retry.
func (s *SessionService) takeRecords(sessionID uuid.UUID, kind editor.OrderKind) ([]editor.LineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.locked(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Kind != kind {
		return nil, apperror.NewBadRequestError("Session kind does not match the submission")
	}

	ok, fieldErrs := session.Editor.Validate()
	if !ok {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	return session.Editor.Records(), nil
}

// locked fetches a session; the caller must hold s.mu.
func (s *SessionService) locked(id uuid.UUID) (*editor.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}
	return session, nil
}
