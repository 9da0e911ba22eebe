package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/seanvillas05-art/pos-app1/internal/infra"
	"github.com/seanvillas05-art/pos-app1/internal/repository"
)

// ReceiptWorker renders a committed receipt to PDF and optionally chains an
// email job with the rendered file attached.
type ReceiptWorker struct {
	receipts    repository.ReceiptRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewReceiptWorker(receipts repository.ReceiptRepository, dispatcher *Dispatcher, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{receipts: receipts, dispatcher: dispatcher, storagePath: storagePath}
}

func (w *ReceiptWorker) Handle(ctx context.Context, payload ReceiptJobPayload) error {
	receipt, err := w.receipts.FindByID(ctx, payload.ReceiptID)
	if err != nil {
		return fmt.Errorf("load receipt %s: %w", payload.ReceiptID, err)
	}

	pdfPath, err := infra.GenerateReceiptPDF(receipt, w.storagePath)
	if err != nil {
		return fmt.Errorf("render receipt %s: %w", payload.ReceiptID, err)
	}
	log.Info().Str("receipt_id", receipt.ID).Str("path", pdfPath).Msg("receipt PDF generated")

	if payload.CustomerEmail == "" {
		return nil
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		To:             payload.CustomerEmail,
		Subject:        fmt.Sprintf("Your receipt %s", receipt.ID),
		Body:           fmt.Sprintf("Thank you for your purchase. Your receipt %s is attached.", receipt.ID),
		AttachmentPath: pdfPath,
	})
}

// EmailWorker delivers queued messages through the SMTP mailer.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Handle(ctx context.Context, payload EmailJobPayload) error {
	if w.mailer == nil {
		log.Warn().Str("to", payload.To).Msg("mailer not configured, dropping email job")
		return nil
	}
	if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.AttachmentPath); err != nil {
		return fmt.Errorf("send email to %s: %w", payload.To, err)
	}
	log.Info().Str("to", payload.To).Msg("email sent")
	return nil
}
