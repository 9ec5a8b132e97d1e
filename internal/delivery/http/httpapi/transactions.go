package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type createTransactionRequest struct {
	BuyerID      string  `json:"buyer_id"`
	SellerID     string  `json:"seller_id"`
	DealerID     string  `json:"dealer_id,omitempty"`
	VehicleID    string  `json:"vehicle_id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	BuyerName    string  `json:"buyer_name"`
	BuyerEmail   string  `json:"buyer_email"`
	BuyerPhone   string  `json:"buyer_phone,omitempty"`
	BuyerAddress string  `json:"buyer_address,omitempty"`
	SellerName   string  `json:"seller_name"`
	SellerEmail  string  `json:"seller_email"`
	SellerPhone  string  `json:"seller_phone,omitempty"`
	MetadataJSON string  `json:"metadata,omitempty"`
}

type transitionRequest struct {
	Target string `json:"target"`
}

type transactionResponse struct {
	ID                 string     `json:"id"`
	TransactionCode    string     `json:"transaction_code"`
	PaymentReference   string     `json:"payment_reference"`
	BuyerID            string     `json:"buyer_id"`
	SellerID           string     `json:"seller_id"`
	DealerID           string     `json:"dealer_id,omitempty"`
	VehicleID          string     `json:"vehicle_id"`
	Amount             float64    `json:"amount"`
	ServiceFee         float64    `json:"service_fee"`
	DealerCommission   float64    `json:"dealer_commission,omitempty"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	PaymentSubmitted   bool       `json:"payment_submitted"`
	PaymentDeadline    *time.Time `json:"payment_deadline,omitempty"`
	InspectionDeadline *time.Time `json:"inspection_deadline,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	Resolution         string     `json:"resolution,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toTransactionResponse(transaction *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:                 transaction.ID,
		TransactionCode:    transaction.TransactionCode,
		PaymentReference:   transaction.PaymentReference,
		BuyerID:            transaction.BuyerID,
		SellerID:           transaction.SellerID,
		DealerID:           transaction.DealerID,
		VehicleID:          transaction.VehicleID,
		Amount:             transaction.Amount,
		ServiceFee:         transaction.ServiceFee,
		DealerCommission:   transaction.DealerCommission,
		Currency:           transaction.Currency,
		Status:             string(transaction.Status),
		PaymentSubmitted:   transaction.PaymentSubmitted,
		PaymentDeadline:    transaction.PaymentDeadline,
		InspectionDeadline: transaction.InspectionDeadline,
		CompletedAt:        transaction.CompletedAt,
		CancelledAt:        transaction.CancelledAt,
		Resolution:         string(transaction.Resolution),
		CreatedAt:          transaction.CreatedAt,
		UpdatedAt:          transaction.UpdatedAt,
	}
}

func (h *EscrowHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.BuyerID == "" || req.SellerID == "" || req.VehicleID == "" || req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "buyer_id, seller_id, vehicle_id and a positive amount are required"})
		return
	}

	transaction, err := h.Transactions.CreateTransaction(&domain.CreateTransactionInput{
		BuyerID:      req.BuyerID,
		SellerID:     req.SellerID,
		DealerID:     req.DealerID,
		VehicleID:    req.VehicleID,
		Amount:       req.Amount,
		Currency:     req.Currency,
		BuyerName:    req.BuyerName,
		BuyerEmail:   req.BuyerEmail,
		BuyerPhone:   req.BuyerPhone,
		BuyerAddress: req.BuyerAddress,
		SellerName:   req.SellerName,
		SellerEmail:  req.SellerEmail,
		SellerPhone:  req.SellerPhone,
		MetadataJSON: req.MetadataJSON,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(transaction))
}

func (h *EscrowHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.Transactions.GetTransactionByID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}

func (h *EscrowHandler) GetTransactionByCode(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.Transactions.GetTransactionByCode(r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}

func (h *EscrowHandler) TransitionTransaction(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	target := domain.TransactionStatus(req.Target)
	if !domain.IsKnownStatus(target) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown target status"})
		return
	}

	transaction, err := h.Transactions.Transition(r.PathValue("id"), target, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}
