package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

func testTransaction(status domain.TransactionStatus) *domain.Transaction {
	return &domain.Transaction{
		ID:              "tx-1",
		TransactionCode: "SP-TXN-2026-ABC123",
		BuyerID:         "buyer-1",
		SellerID:        "seller-1",
		BuyerName:       "Anna K",
		SellerName:      "Bertram L",
		Amount:          10000,
		ServiceFee:      250,
		Currency:        "EUR",
		Status:          status,
		CreatedAt:       time.Now(),
	}
}

var adminActor = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
var buyerActor = domain.Actor{ID: "buyer-1", Role: domain.RoleBuyer}

func TestTransitionHappyPath(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusPending))

	updated, err := f.uc.Transition("tx-1", domain.StatusContractGenerated, adminActor)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.Status != domain.StatusContractGenerated {
		t.Errorf("status = %s, want %s", updated.Status, domain.StatusContractGenerated)
	}
	if updated.ContractGeneratedAt == nil {
		t.Error("ContractGeneratedAt was not stamped")
	}

	if len(f.audit.transitions) != 1 {
		t.Fatalf("audit log entries = %d, want 1", len(f.audit.transitions))
	}
	entry := f.audit.transitions[0]
	if entry.FromStatus != "pending" || entry.ToStatus != "contract_generated" {
		t.Errorf("audit entry %s -> %s, want pending -> contract_generated", entry.FromStatus, entry.ToStatus)
	}
	if entry.ActorID != "admin-1" {
		t.Errorf("audit actor = %s, want admin-1", entry.ActorID)
	}
}

func TestTransitionRejectsIllegalEdge(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusPending))

	_, err := f.uc.Transition("tx-1", domain.StatusCompleted, adminActor)

	var invalid *domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidTransitionError", err)
	}
	if invalid.From != domain.StatusPending || invalid.To != domain.StatusCompleted {
		t.Errorf("error reports %s -> %s, want pending -> completed", invalid.From, invalid.To)
	}

	stored, _ := f.repo.GetTransactionByID("tx-1")
	if stored.Status != domain.StatusPending {
		t.Errorf("rejected transition mutated status to %s", stored.Status)
	}
	if len(f.audit.transitions) != 0 {
		t.Error("rejected transition was audit-logged")
	}
}

func TestTransitionUnknownTarget(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusPending))

	_, err := f.uc.Transition("tx-1", domain.TransactionStatus("archived"), adminActor)

	var invalid *domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidTransitionError", err)
	}
}

func TestTransitionNotFound(t *testing.T) {
	f := newTransactionFixture()

	_, err := f.uc.Transition("missing", domain.StatusPending, adminActor)
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("error = %v, want ErrTransactionNotFound", err)
	}
}

func TestPaymentVerificationRequiresAdmin(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusPaymentSubmitted))

	_, err := f.uc.Transition("tx-1", domain.StatusPaymentVerified, buyerActor)

	var unauthorized *domain.AuthorizationError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("error = %v, want AuthorizationError", err)
	}

	updated, err := f.uc.Transition("tx-1", domain.StatusPaymentVerified, adminActor)
	if err != nil {
		t.Fatalf("admin verification failed: %v", err)
	}
	if updated.PaymentVerifiedAt == nil {
		t.Error("PaymentVerifiedAt was not stamped")
	}
	if updated.PaymentSubmitted {
		t.Error("PaymentSubmitted flag was not cleared on verification")
	}
}

func TestEnteringInspectionSetsDeadline(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusPaymentVerified))

	before := time.Now()
	updated, err := f.uc.Transition("tx-1", domain.StatusInspectionPeriod, adminActor)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.InspectionDeadline == nil {
		t.Fatal("InspectionDeadline was not set")
	}

	want := before.Add(72 * time.Hour)
	diff := updated.InspectionDeadline.Sub(want)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("InspectionDeadline = %v, want about %v", updated.InspectionDeadline, want)
	}
}

func TestEnteringAwaitingTransferSetsPolicyDeadline(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusContractSigned))
	f.uc.Policy.PaymentWindow = 96 * time.Hour

	updated, err := f.uc.Transition("tx-1", domain.StatusAwaitingBankTransfer, adminActor)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.PaymentDeadline == nil {
		t.Fatal("PaymentDeadline was not set")
	}

	want := time.Now().Add(96 * time.Hour)
	if diff := updated.PaymentDeadline.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("PaymentDeadline = %v, want about %v", updated.PaymentDeadline, want)
	}
}

func TestTransitionOutOfDisputedRequiresResolution(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusDisputed))

	for _, target := range []domain.TransactionStatus{domain.StatusCompleted, domain.StatusCancelled} {
		_, err := f.uc.Transition("tx-1", target, adminActor)
		var invalid *domain.InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("Transition to %s: error = %v, want InvalidTransitionError", target, err)
		}
	}

	stored, _ := f.repo.GetTransactionByID("tx-1")
	if stored.Status != domain.StatusDisputed {
		t.Errorf("status = %s, want disputed", stored.Status)
	}
	if len(f.handler.releases) != 0 || len(f.handler.refunds) != 0 {
		t.Error("no money may move while the dispute is open")
	}
}

func TestLeavingInspectionClearsDeadline(t *testing.T) {
	transaction := testTransaction(domain.StatusInspectionPeriod)
	deadline := time.Now().Add(24 * time.Hour)
	transaction.InspectionDeadline = &deadline
	f := newTransactionFixture(transaction)

	updated, err := f.uc.Transition("tx-1", domain.StatusDisputed, buyerActor)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.InspectionDeadline != nil {
		t.Error("InspectionDeadline survived leaving inspection_period")
	}
	if updated.DisputeOpenedAt == nil {
		t.Error("DisputeOpenedAt was not stamped")
	}
}

func TestCompletionReleasesEscrow(t *testing.T) {
	transaction := testTransaction(domain.StatusInspectionPeriod)
	deadline := time.Now().Add(24 * time.Hour)
	transaction.InspectionDeadline = &deadline
	transaction.DealerID = "dealer-1"
	transaction.DealerCommission = 300
	f := newTransactionFixture(transaction)

	updated, err := f.uc.Transition("tx-1", domain.StatusCompleted, buyerActor)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Error("CompletedAt was not stamped")
	}

	if len(f.handler.releases) != 1 {
		t.Fatalf("releases = %d, want 1", len(f.handler.releases))
	}
	release := f.handler.releases[0]
	wantSeller := 10000.0 - 250 - 300
	if release.Amount != wantSeller {
		t.Errorf("released %v, want %v", release.Amount, wantSeller)
	}
	if release.Party != "seller-1" {
		t.Errorf("released to %s, want seller-1", release.Party)
	}

	if got := len(f.payments.byType(domain.PaymentRelease)); got != 1 {
		t.Errorf("release ledger rows = %d, want 1", got)
	}
	if got := len(f.payments.byType(domain.PaymentServiceFee)); got != 1 {
		t.Errorf("service fee ledger rows = %d, want 1", got)
	}
	if got := len(f.payments.byType(domain.PaymentCommission)); got != 1 {
		t.Errorf("commission ledger rows = %d, want 1", got)
	}
}

func TestCancellationAfterVerificationRefundsBuyer(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusPaymentVerified))

	updated, err := f.uc.Transition("tx-1", domain.StatusCancelled, adminActor)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.CancelledAt == nil {
		t.Error("CancelledAt was not stamped")
	}

	if len(f.handler.refunds) != 1 {
		t.Fatalf("refunds = %d, want 1", len(f.handler.refunds))
	}
	refund := f.handler.refunds[0]
	if refund.Amount != 10000 {
		t.Errorf("refunded %v, want full amount 10000", refund.Amount)
	}
	if refund.Party != "buyer-1" {
		t.Errorf("refunded to %s, want buyer-1", refund.Party)
	}
}

func TestCancellationBeforePaymentMovesNoMoney(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusContractSigned))

	if _, err := f.uc.Transition("tx-1", domain.StatusCancelled, adminActor); err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}

	if len(f.handler.refunds) != 0 || len(f.handler.releases) != 0 {
		t.Error("pre-payment cancellation moved money")
	}
}

func TestDuplicateCompletionIsIdempotent(t *testing.T) {
	transaction := testTransaction(domain.StatusInspectionPeriod)
	f := newTransactionFixture(transaction)

	if _, err := f.uc.Transition("tx-1", domain.StatusCompleted, buyerActor); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	if _, err := f.uc.Transition("tx-1", domain.StatusCompleted, buyerActor); err != nil {
		t.Fatalf("duplicate completion errored: %v", err)
	}

	if len(f.handler.releases) != 1 {
		t.Errorf("releases after duplicate completion = %d, want 1", len(f.handler.releases))
	}
	if len(f.audit.transitions) != 1 {
		t.Errorf("audit entries after duplicate completion = %d, want 1", len(f.audit.transitions))
	}
}

func TestTransitionNotifiesBothParties(t *testing.T) {
	f := newTransactionFixture(testTransaction(domain.StatusPending))

	if _, err := f.uc.Transition("tx-1", domain.StatusContractGenerated, adminActor); err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}

	sent := f.notifier.byKind(domain.TemplateStatusChanged)
	if len(sent) != 2 {
		t.Fatalf("status notifications = %d, want 2", len(sent))
	}
	recipients := map[string]bool{sent[0].RecipientID: true, sent[1].RecipientID: true}
	if !recipients["buyer-1"] || !recipients["seller-1"] {
		t.Errorf("notified %v, want buyer-1 and seller-1", recipients)
	}
}
