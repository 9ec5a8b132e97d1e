package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	paymentRequest "github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/payment/request"
	paymentResponse "github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/payment/response"
)

// HTTPPaymentHandler talks to the payment service that executes escrow
// releases and refunds against the platform bank account.
type HTTPPaymentHandler struct {
	Address string
}

func NewHTTPPaymentHandler(address string) (*HTTPPaymentHandler, error) {
	return &HTTPPaymentHandler{
		Address: address,
	}, nil
}

func (h *HTTPPaymentHandler) Release(transactionID, sellerID string, amount float64, currency string) error {
	requestBodyBytes, err := json.Marshal(paymentRequest.ReleaseRequest{
		TransactionID: transactionID,
		SellerID:      sellerID,
		Amount:        amount,
		Currency:      currency,
	})
	if err != nil {
		return err
	}

	response, err := http.Post(fmt.Sprintf("%s/payments/release", h.Address), "application/json", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	} else {
		var errorResponse paymentResponse.ErrorResponse
		if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil {
			return err
		}
		return errors.New(errorResponse.Error)
	}
}

func (h *HTTPPaymentHandler) Refund(transactionID, buyerID string, amount float64, currency string) error {
	requestBodyBytes, err := json.Marshal(paymentRequest.RefundRequest{
		TransactionID: transactionID,
		BuyerID:       buyerID,
		Amount:        amount,
		Currency:      currency,
	})
	if err != nil {
		return err
	}

	response, err := http.Post(fmt.Sprintf("%s/payments/refund", h.Address), "application/json", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	} else {
		var errorResponse paymentResponse.ErrorResponse
		if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil {
			return err
		}
		return errors.New(errorResponse.Error)
	}
}
