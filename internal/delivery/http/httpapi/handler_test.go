package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type stubTransactionUsecase struct {
	transaction *domain.Transaction
	err         error

	gotTarget domain.TransactionStatus
	gotActor  domain.Actor
}

func (s *stubTransactionUsecase) CreateTransaction(input *domain.CreateTransactionInput) (*domain.Transaction, error) {
	return s.transaction, s.err
}

func (s *stubTransactionUsecase) Transition(transactionID string, target domain.TransactionStatus, actor domain.Actor) (*domain.Transaction, error) {
	s.gotTarget = target
	s.gotActor = actor
	return s.transaction, s.err
}

func (s *stubTransactionUsecase) ResolveTransaction(transactionID, disputeID string, resolution domain.ResolutionType, notes string, actor domain.Actor) (*domain.Transaction, error) {
	return s.transaction, s.err
}

func (s *stubTransactionUsecase) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	return s.transaction, s.err
}

func (s *stubTransactionUsecase) GetTransactionByCode(code string) (*domain.Transaction, error) {
	return s.transaction, s.err
}

func (s *stubTransactionUsecase) RunReminderSweep(now time.Time) (*domain.SweepReport, error) {
	return &domain.SweepReport{Scanned: 2, RemindersSent: 1}, s.err
}

type stubDisputeUsecase struct {
	dispute *domain.Dispute
	err     error
}

func (s *stubDisputeUsecase) OpenDispute(input *domain.OpenDisputeInput) (*domain.Dispute, error) {
	return s.dispute, s.err
}

func (s *stubDisputeUsecase) ResolveDispute(disputeID string, resolution domain.ResolutionType, notes string, actor domain.Actor) (*domain.Dispute, error) {
	return s.dispute, s.err
}

func (s *stubDisputeUsecase) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	return s.dispute, s.err
}

func (s *stubDisputeUsecase) GetDisputeByTransactionID(transactionID string) (*domain.Dispute, error) {
	return s.dispute, s.err
}

func (s *stubDisputeUsecase) GetDisputes(page, limit int64, status string) ([]*domain.Dispute, int64, error) {
	return nil, 0, s.err
}

type stubDeletionUsecase struct {
	report *domain.DeletionReport
	err    error
}

func (s *stubDeletionUsecase) ProcessScheduledDeletions(ctx context.Context, now time.Time) (*domain.DeletionReport, error) {
	return s.report, s.err
}

func serveRequest(t *testing.T, handler *EscrowHandler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.Router().ServeHTTP(recorder, req)
	return recorder
}

var adminHeaders = map[string]string{
	"X-Actor-ID":   "admin-1",
	"X-Actor-Role": "admin",
}

func TestGetTransaction(t *testing.T) {
	transactions := &stubTransactionUsecase{transaction: &domain.Transaction{
		ID:              "tx-1",
		TransactionCode: "SP-TXN-2026-ABC123",
		Status:          domain.StatusPending,
	}}
	handler := NewEscrowHandler(transactions, &stubDisputeUsecase{}, &stubDeletionUsecase{})

	recorder := serveRequest(t, handler, http.MethodGet, "/transactions/tx-1", "", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	var body transactionResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if body.TransactionCode != "SP-TXN-2026-ABC123" {
		t.Errorf("transaction_code = %s", body.TransactionCode)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	transactions := &stubTransactionUsecase{err: domain.ErrTransactionNotFound}
	handler := NewEscrowHandler(transactions, &stubDisputeUsecase{}, &stubDeletionUsecase{})

	recorder := serveRequest(t, handler, http.MethodGet, "/transactions/missing", "", nil)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

func TestTransitionPassesActorFromHeaders(t *testing.T) {
	transactions := &stubTransactionUsecase{transaction: &domain.Transaction{ID: "tx-1", Status: domain.StatusContractGenerated}}
	handler := NewEscrowHandler(transactions, &stubDisputeUsecase{}, &stubDeletionUsecase{})

	recorder := serveRequest(t, handler, http.MethodPost, "/transactions/tx-1/transition",
		`{"target":"contract_generated"}`, adminHeaders)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}
	if transactions.gotTarget != domain.StatusContractGenerated {
		t.Errorf("target = %s, want contract_generated", transactions.gotTarget)
	}
	if transactions.gotActor.ID != "admin-1" || transactions.gotActor.Role != domain.RoleAdmin {
		t.Errorf("actor = %+v, want admin-1/admin", transactions.gotActor)
	}
}

func TestTransitionUnknownTarget(t *testing.T) {
	handler := NewEscrowHandler(&stubTransactionUsecase{}, &stubDisputeUsecase{}, &stubDeletionUsecase{})

	recorder := serveRequest(t, handler, http.MethodPost, "/transactions/tx-1/transition",
		`{"target":"archived"}`, adminHeaders)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestTransitionConflict(t *testing.T) {
	transactions := &stubTransactionUsecase{err: &domain.InvalidTransitionError{
		From: domain.StatusPending,
		To:   domain.StatusCompleted,
	}}
	handler := NewEscrowHandler(transactions, &stubDisputeUsecase{}, &stubDeletionUsecase{})

	recorder := serveRequest(t, handler, http.MethodPost, "/transactions/tx-1/transition",
		`{"target":"completed"}`, adminHeaders)

	if recorder.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", recorder.Code)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	handler := NewEscrowHandler(&stubTransactionUsecase{}, &stubDisputeUsecase{}, &stubDeletionUsecase{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing buyer", `{"seller_id":"s","vehicle_id":"v","amount":100}`},
		{"zero amount", `{"buyer_id":"b","seller_id":"s","vehicle_id":"v","amount":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serveRequest(t, handler, http.MethodPost, "/transactions", tt.body, adminHeaders)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", recorder.Code)
			}
		})
	}
}

func TestResolveDisputeForbidden(t *testing.T) {
	disputes := &stubDisputeUsecase{err: &domain.AuthorizationError{ActorID: "buyer-1", Action: "resolve dispute"}}
	handler := NewEscrowHandler(&stubTransactionUsecase{}, disputes, &stubDeletionUsecase{})

	recorder := serveRequest(t, handler, http.MethodPost, "/disputes/dis-1/resolve",
		`{"resolution":"refund_buyer"}`, map[string]string{"X-Actor-ID": "buyer-1", "X-Actor-Role": "buyer"})

	if recorder.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", recorder.Code)
	}
}

func TestSweepEndpointsRequireAdmin(t *testing.T) {
	handler := NewEscrowHandler(
		&stubTransactionUsecase{},
		&stubDisputeUsecase{},
		&stubDeletionUsecase{report: &domain.DeletionReport{}},
	)

	for _, path := range []string{"/admin/sweeps/reminders", "/admin/sweeps/deletions"} {
		recorder := serveRequest(t, handler, http.MethodPost, path, "", map[string]string{
			"X-Actor-ID":   "buyer-1",
			"X-Actor-Role": "buyer",
		})
		if recorder.Code != http.StatusForbidden {
			t.Errorf("%s status = %d, want 403", path, recorder.Code)
		}

		recorder = serveRequest(t, handler, http.MethodPost, path, "", adminHeaders)
		if recorder.Code != http.StatusOK {
			t.Errorf("%s admin status = %d, want 200", path, recorder.Code)
		}
	}
}

func TestDeletionSweepWithFailuresReportsDegraded(t *testing.T) {
	handler := NewEscrowHandler(
		&stubTransactionUsecase{},
		&stubDisputeUsecase{},
		&stubDeletionUsecase{report: &domain.DeletionReport{
			Scanned: 2,
			Deleted: 1,
			Failed:  1,
			Errors: []domain.DeletionError{
				{UserID: "user-2", Step: "delete_vehicles", Err: errors.New("constraint violation")},
			},
		}},
	)

	recorder := serveRequest(t, handler, http.MethodPost, "/admin/sweeps/deletions", "", adminHeaders)

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", recorder.Code)
	}
	var response deletionSweepResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Deleted != 1 || response.Failed != 1 {
		t.Errorf("report = %+v, want deleted 1, failed 1", response)
	}
}
