// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/novastore/internal/config"
	"github.com/your-org/novastore/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	company CompanyInfo
	tmpl    *template.Template
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		company: CompanyInfo{
			Name:    cfg.Receipt.CompanyName,
			Address: cfg.Receipt.CompanyAddress,
			Email:   cfg.Receipt.CompanyEmail,
		},
		tmpl: template.Must(template.New("receipt").Funcs(template.FuncMap{
			"money": formatMoney,
		}).Parse(receiptTemplate)),
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	Order         *order.Order
	OrderDate     string
	PaymentMethod string
	ShipTo        string
	Company       CompanyInfo
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
}

// GenerateReceipt renders a PDF receipt for an order. It needs the
// wkhtmltopdf binary on PATH.
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// RenderHTML renders the receipt markup that GenerateReceipt converts
func (s *Service) RenderHTML(o *order.Order) ([]byte, error) {
	data := ReceiptData{
		Order:         o,
		OrderDate:     o.Date.Format("January 2, 2006"),
		PaymentMethod: o.PaymentMethod.Label(),
		ShipTo:        o.Address.OneLine(),
		Company:       s.company,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.Order.ID}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; border-bottom: 2px solid #4f46e5; padding-bottom: 16px; }
        .company h1 { color: #4f46e5; margin: 0 0 6px 0; }
        .meta { text-align: right; font-size: 14px; }
        .status { display: inline-block; padding: 2px 10px; border-radius: 10px; background: #eef2ff; color: #4f46e5; }
        table { width: 100%; border-collapse: collapse; margin-top: 24px; }
        th { background: #f8fafc; text-align: left; padding: 10px; border-bottom: 1px solid #e2e8f0; }
        td { padding: 10px; border-bottom: 1px solid #f1f5f9; }
        .num { text-align: right; }
        .total td { font-weight: bold; border-top: 2px solid #4f46e5; }
        .footer { margin-top: 40px; font-size: 12px; color: #64748b; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company">
            <h1>{{.Company.Name}}</h1>
            <div>{{.Company.Address}}</div>
            <div>{{.Company.Email}}</div>
        </div>
        <div class="meta">
            <div><strong>Order:</strong> {{.Order.ID}}</div>
            <div><strong>Date:</strong> {{.OrderDate}}</div>
            <div><strong>Payment:</strong> {{.PaymentMethod}}</div>
            <div class="status">{{.Order.Status}}</div>
        </div>
    </div>

    <h3>Ship to</h3>
    <div>{{.ShipTo}}</div>

    <table>
        <thead>
            <tr><th>Item</th><th>Category</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Amount</th></tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.Category}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{money .Price}}</td>
                <td class="num">{{money .LineTotal}}</td>
            </tr>
            {{end}}
            <tr class="total"><td colspan="4">Total</td><td class="num">{{money .Order.Total}}</td></tr>
        </tbody>
    </table>

    <div class="footer">Thank you for shopping with {{.Company.Name}}.</div>
</body>
</html>
`
