package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts.
// Sends a notification email to the configured recipient so the supervisor
// can restock before the shelf runs empty.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxAlertAttempts = 3

// LowStockAlertPayload is the job envelope sent to QueueAlerts.
type LowStockAlertPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Stock       int    `json:"stock"`
	Attempts    int    `json:"attempts"`
}

// AlertWorker sends low-stock notification emails.
type AlertWorker struct {
	mailer    *infra.Mailer
	recipient string
}

func NewAlertWorker(mailer *infra.Mailer, recipient string) *AlertWorker {
	return &AlertWorker{mailer: mailer, recipient: recipient}
}

// Process sends the alert email. Failed jobs are re-enqueued up to
// maxAlertAttempts, then moved to the DLQ.
func (w *AlertWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	if w.recipient == "" {
		log.Warn().Msg("alert_worker: no alert recipient configured — skipping")
		return
	}

	subject := fmt.Sprintf("[Stok Menipis] %s", payload.ProductName)
	body := fmt.Sprintf(
		"Stok produk berikut sudah menipis:\n\n"+
			"  Produk : %s\n"+
			"  SKU    : %s\n"+
			"  Sisa   : %d unit\n\n"+
			"Segera lakukan pembelian stok melalui menu Transaksi.",
		payload.ProductName, payload.SKU, payload.Stock)

	if err := w.mailer.Send(w.recipient, subject, body, ""); err != nil {
		payload.Attempts++
		if payload.Attempts >= maxAlertAttempts {
			data, _ := json.Marshal(payload)
			SendToDLQ(ctx, rdb, QueueAlerts, "low_stock_alert", data,
				fmt.Sprintf("send failed after %d attempts: %s", payload.Attempts, err), payload.Attempts)
			return
		}

		data, _ := json.Marshal(Job{Type: "low_stock_alert", Payload: mustMarshal(payload)})
		if pushErr := rdb.LPush(ctx, QueueAlerts, data).Err(); pushErr != nil {
			log.Error().Err(pushErr).Msg("alert_worker: failed to re-enqueue")
		}
		log.Warn().Err(err).Str("product", payload.ProductName).Int("attempt", payload.Attempts).
			Msg("alert_worker: send failed, re-enqueued")
		return
	}

	log.Info().Str("product", payload.ProductName).Int("stock", payload.Stock).
		Msg("alert_worker: low-stock alert sent")
}

func mustMarshal(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
