package printing

// builtinTemplates returns the built-in document templates keyed by name
func builtinTemplates() map[string]string {
	return map[string]string{
		TemplateInvoice: invoiceTemplate,
		TemplateReceipt: receiptTemplate,
	}
}

const documentStyles = `
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #222; margin: 0; padding: 24px; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #1a5632; padding-bottom: 12px; }
  .brand { font-size: 20px; font-weight: bold; color: #1a5632; }
  .doc-title { font-size: 24px; text-transform: uppercase; }
  .meta { margin: 16px 0; line-height: 1.6; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th { text-align: left; background: #f0f4f1; padding: 8px; border-bottom: 1px solid #ccc; }
  td { padding: 8px; border-bottom: 1px solid #eee; }
  .amount { text-align: right; }
  .total-row td { font-weight: bold; border-top: 2px solid #1a5632; }
  .footer { margin-top: 32px; font-size: 12px; color: #777; }
  .badge { display: inline-block; padding: 2px 10px; border-radius: 10px; font-size: 12px; background: #eee; }
`

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>` + documentStyles + `</style>
</head>
<body>
  <div class="header">
    <div>
      <div class="brand">Keja Plus Property Management</div>
      <div>{{ .PropertyName }}{{ if .UnitNumber }} &middot; Unit {{ .UnitNumber }}{{ end }}</div>
    </div>
    <div>
      <div class="doc-title">Invoice</div>
      <div>{{ .Number }}</div>
    </div>
  </div>

  <div class="meta">
    <div><strong>Billed to:</strong> {{ .TenantName }}</div>
    <div><strong>Due date:</strong> {{ formatDate .DueDate }}</div>
    <div><strong>Status:</strong> <span class="badge">{{ .Status }}</span></div>
  </div>

  <table>
    <thead>
      <tr><th>Description</th><th class="amount">Amount</th></tr>
    </thead>
    <tbody>
      {{ range .Lines }}
      <tr><td>{{ .Description }}</td><td class="amount">{{ formatMoney .Amount }}</td></tr>
      {{ end }}
      <tr class="total-row"><td>Total due</td><td class="amount">{{ formatMoney .TotalDue }}</td></tr>
    </tbody>
  </table>

  <div class="footer">
    Issued {{ formatDateTime .IssuedAt }} &middot; Keja Plus Property Management
  </div>
</body>
</html>`

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>` + documentStyles + `</style>
</head>
<body>
  <div class="header">
    <div>
      <div class="brand">Keja Plus Property Management</div>
      <div>{{ .PropertyName }}{{ if .UnitNumber }} &middot; Unit {{ .UnitNumber }}{{ end }}</div>
    </div>
    <div>
      <div class="doc-title">Receipt</div>
      <div>{{ .Number }}</div>
    </div>
  </div>

  <div class="meta">
    <div><strong>Received from:</strong> {{ .TenantName }}</div>
    <div><strong>Payment date:</strong> {{ formatDate .PaymentDate }}</div>
    <div><strong>Payment method:</strong> {{ .PaymentMethod }}</div>
  </div>

  <table>
    <tbody>
      <tr><td>Amount paid</td><td class="amount">{{ formatMoney .AmountPaid }}</td></tr>
      {{ if .HasWaterFigures }}
      <tr><td>Water meter (previous)</td><td class="amount">{{ formatDecimal .PreviousReading }}</td></tr>
      <tr><td>Water meter (current)</td><td class="amount">{{ formatDecimal .CurrentReading }}</td></tr>
      <tr><td>Water charge</td><td class="amount">{{ formatMoney .WaterCharge }}</td></tr>
      {{ end }}
      <tr class="total-row"><td>Pending balance</td><td class="amount">{{ formatMoney .PendingBalance }}</td></tr>
    </tbody>
  </table>

  <div class="footer">
    Issued {{ formatDateTime .IssuedAt }} &middot; Keja Plus Property Management
  </div>
</body>
</html>`
