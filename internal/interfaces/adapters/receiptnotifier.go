package adapters

import (
	"context"

	"github.com/adli-inc/adli/internal/application/request/usecases"
	"github.com/adli-inc/adli/internal/infrastructure/email"
	"github.com/adli-inc/adli/internal/shared/goroutine"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// ReceiptSender is satisfied by *email.ReceiptMailer.
type ReceiptSender interface {
	SendReceipt(r email.Receipt) error
}

// ReceiptNotifierAdapter adapts the SMTP mailer to usecases.ReceiptNotifier.
// Delivery happens in the background so intake never waits on SMTP.
type ReceiptNotifierAdapter struct {
	sender ReceiptSender
	logger logger.Interface
	spawn  func(log logger.Interface, name string, fn func())
}

func NewReceiptNotifierAdapter(sender ReceiptSender, log logger.Interface) *ReceiptNotifierAdapter {
	return &ReceiptNotifierAdapter{
		sender: sender,
		logger: log,
		spawn:  goroutine.SafeGo,
	}
}

// NotifyReceipt implements usecases.ReceiptNotifier. Only a cancelled
// context is reported; delivery failures are logged.
func (a *ReceiptNotifierAdapter) NotifyReceipt(ctx context.Context, notice usecases.ReceiptNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	receipt := email.Receipt{
		To:       notice.Email,
		FullName: notice.FullName,
		PublicID: notice.PublicID,
		Company:  notice.CompanyName,
	}
	a.spawn(a.logger, "receipt-mail", func() {
		if err := a.sender.SendReceipt(receipt); err != nil {
			a.logger.Warnw("failed to deliver receipt", "public_id", receipt.PublicID, "error", err)
			return
		}
		a.logger.Debugw("receipt delivered", "public_id", receipt.PublicID)
	})
	return nil
}
