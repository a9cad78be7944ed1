// Package ticket renders the event ticket shown after a successful
// registration: a QR code encoding the attendee's document ID, and a PDF
// export of the full ticket.
package ticket

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Info is what a ticket displays.
type Info struct {
	Name       string
	University string
	UserID     string
}

// QRCode returns a PNG of the attendee ID, size pixels square.
func QRCode(userID string, size int) ([]byte, error) {
	if userID == "" {
		return nil, fmt.Errorf("ticket: empty user id")
	}
	if size <= 0 {
		size = 300
	}
	png, err := qrcode.Encode(userID, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("ticket: qr encode failed: %w", err)
	}
	return png, nil
}

// RenderPDF writes the downloadable ticket. Layout follows the site's
// ticket card: EVENT TICKET / ADMIT ONE header, name and university,
// centered QR with the ID underneath, entrance note in the footer.
func RenderPDF(w io.Writer, info Info) error {
	if info.UserID == "" {
		return fmt.Errorf("ticket: empty user id")
	}
	png, err := QRCode(info.UserID, 300)
	if err != nil {
		return err
	}

	name := info.Name
	if name == "" {
		name = "Guest"
	}
	university := info.University
	if university == "" {
		university = "Unknown"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Ticket card
	const cardX, cardY, cardW = 55.0, 60.0, 100.0
	pdf.SetDrawColor(31, 41, 55)
	pdf.SetLineWidth(0.8)
	pdf.Rect(cardX, cardY, cardW, 150, "D")

	pdf.SetY(cardY + 10)
	pdf.SetTextColor(31, 41, 55)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "EVENT TICKET", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 5, "ADMIT ONE", "", 1, "C", false, 0, "")

	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(209, 213, 219)
	pdf.Line(cardX+8, cardY+30, cardX+cardW-8, cardY+30)

	writeField := func(label, value string) {
		pdf.SetX(cardX + 10)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(156, 163, 175)
		pdf.CellFormat(0, 5, label, "", 1, "L", false, 0, "")
		pdf.SetX(cardX + 10)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(31, 41, 55)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}
	pdf.SetY(cardY + 35)
	writeField("NAME", name)
	writeField("UNIVERSITY", university)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	const qrSize = 50.0
	pdf.ImageOptions("qr", cardX+(cardW-qrSize)/2, cardY+70, qrSize, qrSize, false, opts, 0, "")

	pdf.SetY(cardY + 122)
	pdf.SetFont("Courier", "", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 5, "ID: "+info.UserID, "", 1, "C", false, 0, "")

	pdf.SetY(cardY + 138)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(156, 163, 175)
	pdf.CellFormat(0, 5, "Please present this ticket at the entrance.", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
