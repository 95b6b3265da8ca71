package document

import (
	"fmt"
	"time"

	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
)

const reminderSignature = "Keja Plus Property Management"

// ComposeInvoiceMessage renders the covering text for an invoice send.
// The rendered PDF travels separately; this is the channel body.
func ComposeInvoiceMessage(tenantName, number string, totalDue valueobject.Money, propertyName string, dueDate time.Time) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your invoice %s for %s is ready. The total amount due is KES %s, "+
			"payable by %s.\n\n"+
			"Best regards,\n%s",
		tenantName,
		number,
		propertyName,
		totalDue.StringFixed(2),
		dueDate.Format("02/01/2006"),
		reminderSignature,
	)
}

// ComposeReceiptMessage renders the covering text for a receipt send
func ComposeReceiptMessage(tenantName, number string, amountPaid valueobject.Money, propertyName string, paymentDate time.Time) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"We have received your payment of KES %s for %s. "+
			"Your receipt %s dated %s is ready.\n\n"+
			"Thank you.\n\n"+
			"Best regards,\n%s",
		tenantName,
		amountPaid.StringFixed(2),
		propertyName,
		number,
		paymentDate.Format("02/01/2006"),
		reminderSignature,
	)
}

// ComposeReminderMessage renders the default reminder text for a billing
// period. A caller-supplied custom message replaces this template
// entirely; composition never mixes the two.
func ComposeReminderMessage(tenantName string, amount valueobject.Money, propertyName string, dueDate time.Time) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a friendly reminder that your rent payment of KES %s for %s is due on %s. "+
			"Please ensure timely payment to avoid any late fees.\n\n"+
			"If you have already made the payment, please disregard this message.\n\n"+
			"Thank you for your cooperation.\n\n"+
			"Best regards,\n%s",
		tenantName,
		amount.StringFixed(2),
		propertyName,
		dueDate.Format("02/01/2006"),
		reminderSignature,
	)
}
