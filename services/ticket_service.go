// File: /services/ticket_service.go
package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"eventhub-api/models"
)

// TicketService renders a PDF ticket with an embedded QR code for a
// confirmed booking.
type TicketService struct{}

func NewTicketService() *TicketService {
	return &TicketService{}
}

// RenderTicket produces the PDF bytes for a confirmed booking. The QR
// payload is the booking id, which gate staff scan and look up.
func (ts *TicketService) RenderTicket(booking *models.Booking, event *models.Event, user *models.User) ([]byte, error) {
	qrPNG, err := qrcode.Encode(booking.ID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket QR: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "EventHub Ticket", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, event.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Date: "+event.EventDate.Format(time.RFC1123), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Location: "+event.Location, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Attendee: %s", user.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Persons: %d", booking.Quantity), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Amount paid: %.2f", booking.Amount), "", 1, "L", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(qrPNG))
	pageWidth, _ := pdf.GetPageSize()
	pdf.ImageOptions("ticket-qr", (pageWidth-50)/2, pdf.GetY()+5, 50, 50, false, opts, 0, "")

	pdf.SetY(pdf.GetY() + 60)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Booking reference: "+booking.ID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket PDF: %w", err)
	}
	return buf.Bytes(), nil
}
