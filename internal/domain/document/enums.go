package document

// DocumentType identifies a generated billing artifact
type DocumentType string

const (
	DocumentTypeInvoice  DocumentType = "INVOICE"
	DocumentTypeReceipt  DocumentType = "RECEIPT"
	DocumentTypeReminder DocumentType = "REMINDER"
)

// IsValid checks if the DocumentType is a valid value
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypeInvoice, DocumentTypeReceipt, DocumentTypeReminder:
		return true
	}
	return false
}

// String returns the string representation of DocumentType
func (d DocumentType) String() string {
	return string(d)
}

// AllDocumentTypes returns all valid DocumentType values
func AllDocumentTypes() []DocumentType {
	return []DocumentType{DocumentTypeInvoice, DocumentTypeReceipt, DocumentTypeReminder}
}

// InvoiceStatus is the payment state snapshotted onto an invoice at
// generation time. It reflects the source period at that instant and is
// not re-derived afterwards.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusUnpaid  InvoiceStatus = "UNPAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// IsValid checks if the InvoiceStatus is a valid value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusUnpaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// ReminderChannel selects the notification channel(s) for a reminder
type ReminderChannel string

const (
	ReminderChannelEmail ReminderChannel = "EMAIL"
	ReminderChannelSMS   ReminderChannel = "SMS"
	ReminderChannelBoth  ReminderChannel = "BOTH"
)

// IsValid checks if the ReminderChannel is a valid value
func (c ReminderChannel) IsValid() bool {
	switch c {
	case ReminderChannelEmail, ReminderChannelSMS, ReminderChannelBoth:
		return true
	}
	return false
}

// String returns the string representation of ReminderChannel
func (c ReminderChannel) String() string {
	return string(c)
}

// Includes reports whether the channel selection covers the given
// concrete channel. BOTH covers EMAIL and SMS.
func (c ReminderChannel) Includes(target ReminderChannel) bool {
	if c == ReminderChannelBoth {
		return target == ReminderChannelEmail || target == ReminderChannelSMS
	}
	return c == target
}

// ReminderOutcome is the lifecycle state of a reminder
type ReminderOutcome string

const (
	ReminderOutcomeSent     ReminderOutcome = "SENT"
	ReminderOutcomePending  ReminderOutcome = "PENDING"
	ReminderOutcomeResolved ReminderOutcome = "RESOLVED"
)

// IsValid checks if the ReminderOutcome is a valid value
func (o ReminderOutcome) IsValid() bool {
	switch o {
	case ReminderOutcomeSent, ReminderOutcomePending, ReminderOutcomeResolved:
		return true
	}
	return false
}

// String returns the string representation of ReminderOutcome
func (o ReminderOutcome) String() string {
	return string(o)
}
