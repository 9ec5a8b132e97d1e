package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// HTTPNotifier posts notification requests to the notification service.
// Delivery is fire-and-forget: the POST runs on its own goroutine and a
// failure is logged, never surfaced to the transition that caused it.
type HTTPNotifier struct {
	Address string
}

func NewHTTPNotifier(address string) *HTTPNotifier {
	return &HTTPNotifier{Address: address}
}

type notifyRequest struct {
	RecipientID string         `json:"recipient_id"`
	Kind        string         `json:"kind"`
	Payload     map[string]any `json:"payload"`
}

func (n *HTTPNotifier) Notify(recipientID string, kind domain.TemplateKind, payload map[string]any) error {
	go func() {
		body, err := json.Marshal(notifyRequest{
			RecipientID: recipientID,
			Kind:        string(kind),
			Payload:     payload,
		})
		if err != nil {
			slog.Error("failed to marshal notification", "kind", kind, "error", err.Error())
			return
		}

		resp, err := http.Post(fmt.Sprintf("%s/notifications", n.Address), "application/json", bytes.NewBuffer(body))
		if err != nil {
			slog.Error("notification delivery failed", "recipient", recipientID, "kind", kind, "error", err.Error())
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("notification service returned error", "recipient", recipientID, "kind", kind, "status", resp.StatusCode)
		}
	}()
	return nil
}
