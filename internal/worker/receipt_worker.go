package worker

import (
	"context"
	"encoding/json"

	"github.com/emerpc1992/horale/internal/infra"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipts.
type ReceiptJobPayload struct {
	SaleID string `json:"sale_id"`
}

// ReceiptWorker renders the PDF receipt for a completed sale in the
// background, so the sale endpoint never waits on PDF generation.
type ReceiptWorker struct {
	saleRepo     repository.SaleRepository
	businessName string
	storagePath  string
}

func NewReceiptWorker(saleRepo repository.SaleRepository, businessName, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{saleRepo: saleRepo, businessName: businessName, storagePath: storagePath}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	id, err := uuid.Parse(payload.SaleID)
	if err != nil {
		return err
	}

	sale, err := w.saleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	path, err := infra.GenerateReceiptPDF(sale, w.businessName, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("sale_id", payload.SaleID).Str("path", path).Msg("receipt generated")
	return nil
}
