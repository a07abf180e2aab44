package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "rehearsalrooms/internal/config"
	"rehearsalrooms/internal/domain"
	"rehearsalrooms/internal/domain/models"
	"rehearsalrooms/internal/repositories"
	"rehearsalrooms/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a booking confirmation PDF.
type ReceiptService struct {
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	RequestID   string
}

func (s ReceiptService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReceiptService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s ReceiptService) GenerateReceipt(bookingID int64) ([]byte, string, error) {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.NotFoundError{Resource: "booking"}
		}
		return nil, "", domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(booking)
}

func buildReceiptPDF(b models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Code : #%d", b.ID),
		fmt.Sprintf("Room         : %s", safe(b.RoomName, "-")),
		fmt.Sprintf("Booked by    : %s", safe(b.Username, "-")),
		fmt.Sprintf("From         : %s", utils.FormatDateTime(b.StartTime)),
		fmt.Sprintf("To           : %s", utils.FormatDateTime(b.EndTime)),
		fmt.Sprintf("Booked at    : %s", utils.FormatDateTime(b.CreatedAt)),
		fmt.Sprintf("Total Cost   : %s", utils.FormatMoney(b.TotalCost)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please arrive on time. Cancellations release the slot immediately.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d_%s.pdf", b.ID, safeFilenamePart(b.Username))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "x"
	}
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(s)
}
