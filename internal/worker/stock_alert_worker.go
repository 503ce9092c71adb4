package worker

// stock_alert_worker.go
// Processes low-stock alert jobs from QueueStockAlert: composes a mail and
// sends it to the configured manager address via SMTP.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kallesh653/smartcafee-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// StockAlertPayload is the job envelope sent to QueueStockAlert.
type StockAlertPayload struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	CurrentStock  int    `json:"current_stock"`
	MinStockAlert int    `json:"min_stock_alert"`
}

// StockAlertWorker turns low-stock jobs into mails to the manager.
type StockAlertWorker struct {
	mailer     *infra.Mailer
	alertEmail string
}

func NewStockAlertWorker(mailer *infra.Mailer, alertEmail string) *StockAlertWorker {
	return &StockAlertWorker{mailer: mailer, alertEmail: alertEmail}
}

func (w *StockAlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("stock_alert_worker: invalid payload: %w", err)
	}
	if w.alertEmail == "" {
		log.Warn().Str("product", payload.Name).Msg("stock_alert_worker: no alert email configured, dropping")
		return nil
	}
	if w.mailer == nil {
		return errors.New("stock_alert_worker: no mailer configured")
	}

	subject := fmt.Sprintf("Low stock: %s (%d left)", payload.Name, payload.CurrentStock)
	body := fmt.Sprintf(
		"Product %q is down to %d units (alert threshold %d).\nRestock soon to avoid lost sales.\n\nProduct ID: %s\n",
		payload.Name, payload.CurrentStock, payload.MinStockAlert, payload.ProductID)

	if err := w.mailer.Send(w.alertEmail, subject, body); err != nil {
		return fmt.Errorf("stock_alert_worker: send mail: %w", err)
	}
	log.Info().Str("product", payload.Name).Int("stock", payload.CurrentStock).Msg("stock_alert_worker: alert sent")
	return nil
}
