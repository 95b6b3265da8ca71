package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/infrastructure/notification"
	"go.uber.org/zap"
)

// DispatchDocumentRequest addresses one generated document to a channel.
// An empty recipient resolves to the tenant's contact details on file.
type DispatchDocumentRequest struct {
	DocumentType string    `json:"document_type" binding:"required"`
	DocumentID   uuid.UUID `json:"document_id" binding:"required"`
	Channel      string    `json:"channel" binding:"required"`
	Recipient    string    `json:"recipient"`
}

// DispatchAttempt is one channel attempt within a document send
type DispatchAttempt struct {
	Channel     string    `json:"channel"`
	Recipient   string    `json:"recipient,omitempty"`
	Delivered   bool      `json:"delivered"`
	Error       string    `json:"error,omitempty"`
	AttemptedAt time.Time `json:"attempted_at"`
}

// DispatchResult is the outcome of sending one document. Delivered is
// true only when every requested channel delivered; channel failures
// land in the attempt entries, never as a returned error.
type DispatchResult struct {
	DocumentID   uuid.UUID         `json:"document_id"`
	DocumentType string            `json:"document_type"`
	Number       string            `json:"number,omitempty"`
	Channel      string            `json:"channel"`
	Attempts     []DispatchAttempt `json:"attempts,omitempty"`
	Delivered    bool              `json:"delivered"`
	Error        string            `json:"error,omitempty"`
}

// BulkDispatchRequest sends a batch of documents of one type
type BulkDispatchRequest struct {
	DocumentType string      `json:"document_type" binding:"required"`
	DocumentIDs  []uuid.UUID `json:"document_ids" binding:"required,min=1"`
	Channel      string      `json:"channel" binding:"required"`
}

// BulkDispatchResult summarizes a bulk document send
type BulkDispatchResult struct {
	Requested int              `json:"requested"`
	Delivered int              `json:"delivered"`
	Failed    int              `json:"failed"`
	Skipped   int              `json:"skipped"`
	Results   []DispatchResult `json:"results"`
}

// dispatchTarget is the channel-facing view of an invoice or receipt
type dispatchTarget struct {
	number   string
	tenantID uuid.UUID
	subject  string
	body     string
}

// DispatchDocument sends a generated invoice or receipt through the
// requested channel(s). A transport failure is recorded on the result,
// not returned; the error return covers bad input and missing data only.
func (s *DocumentService) DispatchDocument(ctx context.Context, req DispatchDocumentRequest) (*DispatchResult, error) {
	if len(s.notifiers) == 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Notification channels are not configured")
	}
	channel := document.ReminderChannel(req.Channel)
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Notification channel is not valid")
	}

	target, err := s.loadDispatchTarget(ctx, document.DocumentType(req.DocumentType), req.DocumentID)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{
		DocumentID:   req.DocumentID,
		DocumentType: req.DocumentType,
		Number:       target.number,
		Channel:      req.Channel,
	}

	email, phone := req.Recipient, req.Recipient
	if req.Recipient == "" {
		if s.tenantRepo == nil {
			return nil, shared.NewDomainError("INVALID_STATE", "No recipient given and tenant lookup is not configured")
		}
		tenant, err := s.tenantRepo.FindByID(ctx, target.tenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, shared.ErrMissingBillingData
		}
		email, phone = tenant.Email, tenant.Phone
	}

	result.Delivered = true
	for _, ch := range requestedChannels(channel) {
		recipient := email
		if ch == document.ReminderChannelSMS {
			recipient = phone
		}
		attempt := s.attemptDispatch(ctx, ch, recipient, target)
		if !attempt.Delivered {
			result.Delivered = false
		}
		result.Attempts = append(result.Attempts, attempt)
	}
	if !result.Delivered {
		result.Error = shared.ErrDispatchFailed.Message
		s.logger.Warn("document dispatch failed",
			zap.String("document_type", result.DocumentType),
			zap.String("number", result.Number),
			zap.String("channel", result.Channel))
	} else {
		s.logger.Info("document dispatched",
			zap.String("document_type", result.DocumentType),
			zap.String("number", result.Number),
			zap.String("channel", result.Channel))
	}
	return result, nil
}

// DispatchDocuments sends a batch sequentially. One record's failure
// never aborts the rest; cancelling the context stops the run between
// records and the skipped remainder is reported.
func (s *DocumentService) DispatchDocuments(ctx context.Context, req BulkDispatchRequest) (*BulkDispatchResult, error) {
	if !document.ReminderChannel(req.Channel).IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Notification channel is not valid")
	}
	docType := document.DocumentType(req.DocumentType)
	if docType != document.DocumentTypeInvoice && docType != document.DocumentTypeReceipt {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Only invoices and receipts can be sent")
	}

	result := &BulkDispatchResult{Requested: len(req.DocumentIDs)}
	for i, id := range req.DocumentIDs {
		if ctx.Err() != nil {
			result.Skipped = len(req.DocumentIDs) - i
			break
		}
		r, err := s.DispatchDocument(ctx, DispatchDocumentRequest{
			DocumentType: req.DocumentType,
			DocumentID:   id,
			Channel:      req.Channel,
		})
		if err != nil {
			result.Failed++
			result.Results = append(result.Results, DispatchResult{
				DocumentID:   id,
				DocumentType: req.DocumentType,
				Channel:      req.Channel,
				Error:        err.Error(),
			})
			continue
		}
		if r.Delivered {
			result.Delivered++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, *r)
	}

	s.logger.Info("bulk document send finished",
		zap.String("document_type", req.DocumentType),
		zap.Int("requested", result.Requested),
		zap.Int("delivered", result.Delivered),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *DocumentService) loadDispatchTarget(ctx context.Context, docType document.DocumentType, id uuid.UUID) (*dispatchTarget, error) {
	switch docType {
	case document.DocumentTypeInvoice:
		inv, err := s.invoiceRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}
		return &dispatchTarget{
			number:   inv.Number,
			tenantID: inv.TenantID,
			subject:  "Invoice " + inv.Number,
			body: document.ComposeInvoiceMessage(
				inv.TenantName, inv.Number, inv.GetTotalDueMoney(), inv.PropertyName, inv.DueDate),
		}, nil
	case document.DocumentTypeReceipt:
		receipt, err := s.receiptRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if receipt == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Receipt not found")
		}
		return &dispatchTarget{
			number:   receipt.Number,
			tenantID: receipt.TenantID,
			subject:  "Payment Receipt " + receipt.Number,
			body: document.ComposeReceiptMessage(
				receipt.TenantName, receipt.Number, receipt.GetAmountPaidMoney(), receipt.PropertyName, receipt.PaymentDate),
		}, nil
	default:
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Only invoices and receipts can be sent")
	}
}

func (s *DocumentService) attemptDispatch(ctx context.Context, channel document.ReminderChannel, recipient string, target *dispatchTarget) DispatchAttempt {
	attempt := DispatchAttempt{Channel: channel.String(), Recipient: recipient, AttemptedAt: s.now()}

	notifier, ok := s.notifiers[channel]
	if !ok {
		attempt.Error = "channel not configured"
		return attempt
	}
	if recipient == "" {
		attempt.Error = "no recipient on file"
		return attempt
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	err := notifier.Send(sendCtx, notification.Message{
		Recipient: recipient,
		Subject:   target.subject,
		Body:      target.body,
	})
	if err != nil {
		attempt.Error = err.Error()
		return attempt
	}
	attempt.Delivered = true
	return attempt
}

// requestedChannels expands BOTH into its concrete channels
func requestedChannels(channel document.ReminderChannel) []document.ReminderChannel {
	if channel == document.ReminderChannelBoth {
		return []document.ReminderChannel{document.ReminderChannelEmail, document.ReminderChannelSMS}
	}
	return []document.ReminderChannel{channel}
}
