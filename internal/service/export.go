package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rupaladventures/basecamp/internal/csvexport"
	"github.com/rupaladventures/basecamp/internal/domain"
)

// ExportService renders a filtered record set as CSV for admin download.
type ExportService struct {
	inquiries *InquiryService
	bookings  *BookingService
	opts      Options
}

// NewExportService constructs an ExportService over the record services.
func NewExportService(inquiries *InquiryService, bookings *BookingService, opts Options) *ExportService {
	return &ExportService{inquiries: inquiries, bookings: bookings, opts: opts.withDefaults()}
}

// Export is one rendered download.
type Export struct {
	Filename string
	Rows     int
	CSV      string
}

// Export fetches every record of kind matching f, newest first, and encodes
// it. An empty result yields an empty CSV body.
func (s *ExportService) Export(ctx context.Context, kind domain.RecordKind, f domain.Filter) (Export, error) {
	var rows []csvexport.Row
	switch kind {
	case domain.KindInquiries:
		list, err := s.inquiries.ListAll(ctx, f)
		if err != nil {
			return Export{}, err
		}
		rows = make([]csvexport.Row, len(list))
		for i, in := range list {
			rows[i] = inquiryRow(in)
		}
	case domain.KindBookings:
		list, err := s.bookings.ListAll(ctx, f)
		if err != nil {
			return Export{}, err
		}
		rows = make([]csvexport.Row, len(list))
		for i, b := range list {
			rows[i] = bookingRow(b)
		}
	default:
		verr := &domain.ValidationError{}
		verr.Add("type", fmt.Sprintf("unknown export type %q", kind))
		return Export{}, verr
	}

	return Export{
		Filename: fmt.Sprintf("%s_%s.csv", kind, s.opts.Clock().UTC().Format(time.DateOnly)),
		Rows:     len(rows),
		CSV:      csvexport.Encode(rows),
	}, nil
}

func inquiryRow(i domain.Inquiry) csvexport.Row {
	return csvexport.Row{
		{Key: "id", Value: i.ID},
		{Key: "first_name", Value: i.FirstName},
		{Key: "last_name", Value: i.LastName},
		{Key: "phone", Value: i.Phone},
		{Key: "email", Value: i.Email},
		{Key: "city", Value: i.City},
		{Key: "province", Value: i.Province},
		{Key: "organization", Value: i.Organization},
		{Key: "country", Value: i.Country},
		{Key: "subject", Value: i.Subject},
		{Key: "message", Value: i.Message},
		{Key: "created_at", Value: i.CreatedAt},
	}
}

func bookingRow(b domain.Booking) csvexport.Row {
	var userID any
	if b.UserID != nil {
		userID = b.UserID.String()
	}
	return csvexport.Row{
		{Key: "id", Value: b.ID.String()},
		{Key: "expedition_name", Value: b.ExpeditionName},
		{Key: "first_name", Value: b.FirstName},
		{Key: "last_name", Value: b.LastName},
		{Key: "phone", Value: b.Phone},
		{Key: "email", Value: b.Email},
		{Key: "city", Value: b.City},
		{Key: "province", Value: b.Province},
		{Key: "organization", Value: b.Organization},
		{Key: "country", Value: b.Country},
		{Key: "message", Value: b.Message},
		{Key: "status", Value: string(b.Status)},
		{Key: "created_at", Value: b.CreatedAt},
		{Key: "user_id", Value: userID},
	}
}
