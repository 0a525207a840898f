package invoices

import (
	"bytes"
	"fmt"
	"net/http"
	"os"

	"furnish/db"
	"furnish/models"
	"furnish/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GET /api/invoices/:id/pdf
//
// Renders the invoice as a downloadable PDF with a QR code linking to the
// order-tracking page.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	var invoice models.Invoice
	if err := db.InvoicesCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&invoice); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(r.Context(), bson.M{"_id": invoice.Order}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found for invoice")
		return
	}

	var customer models.Customer
	// Best effort; the PDF renders without customer details if the record is gone.
	_ = db.CustomersCollection.FindOne(r.Context(), bson.M{"_id": invoice.Customer}).Decode(&customer)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Invoice No: %s", invoice.InvoiceNumber))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Order No: %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", invoice.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(6)
	if invoice.DueDate != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Due: %s", invoice.DueDate.Format("02 Jan 2006")))
		pdf.Ln(6)
	}
	if customer.Name != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Billed To: %s (%s)", customer.Name, customer.Phone))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Line items table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		pdf.CellFormat(70, 8, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Subtotal), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(125, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", invoice.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(125, 7, "Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", invoice.Tax), "", 1, "R", false, 0, "")
	pdf.CellFormat(125, 7, "Discount", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("-%.2f", invoice.Discount), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(125, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", invoice.Total), "", 1, "R", false, 0, "")

	// QR code pointing at the public order-tracking page
	trackURL := fmt.Sprintf("%s/track?orderNumber=%s", publicBaseURL(r), order.OrderNumber)
	if qrPNG, err := qrcode.Encode(trackURL, qrcode.Medium, 256); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("track-qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("track-qr", 160, 250, 35, 35, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+invoice.InvoiceNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func publicBaseURL(r *http.Request) string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
