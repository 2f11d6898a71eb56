package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/rupaladventures/basecamp/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// minPhoneDigits is the shortest accepted phone number once formatting
// characters are stripped.
const minPhoneDigits = 10

var phoneFormatting = strings.NewReplacer("+", "", " ", "", "-", "", "(", "", ")", "")

// requiredField is one mandatory input and its current value.
type requiredField struct {
	name  string
	value string
}

// requireFields reports every blank field, in order, as "<name> is required"
// with the first underscore of the name shown as a space.
func requireFields(verr *domain.ValidationError, fields ...requiredField) {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			verr.Add(f.name, strings.Replace(f.name, "_", " ", 1)+" is required")
		}
	}
}

// checkFormats validates email and phone when present. Blank values are
// left to requireFields.
func checkFormats(verr *domain.ValidationError, email, phone string) {
	if email != "" && !validEmail(email) {
		verr.Add("email", "Invalid email format")
	}
	if phone != "" && !validPhone(phone) {
		verr.Add("phone", "Invalid phone number format")
	}
}

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func validPhone(s string) bool {
	digits := phoneFormatting.Replace(s)
	if len(digits) < minPhoneDigits {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateNewInquiry(in domain.NewInquiry) error {
	verr := &domain.ValidationError{}
	requireFields(verr,
		requiredField{"first_name", in.FirstName},
		requiredField{"last_name", in.LastName},
		requiredField{"phone", in.Phone},
		requiredField{"email", in.Email},
		requiredField{"city", in.City},
		requiredField{"country", in.Country},
	)
	checkFormats(verr, in.Email, in.Phone)
	return verr.OrNil()
}

func validateNewBooking(in domain.NewBooking) error {
	verr := &domain.ValidationError{}
	requireFields(verr,
		requiredField{"expedition_name", in.ExpeditionName},
		requiredField{"first_name", in.FirstName},
		requiredField{"last_name", in.LastName},
		requiredField{"phone", in.Phone},
		requiredField{"email", in.Email},
		requiredField{"city", in.City},
		requiredField{"country", in.Country},
	)
	checkFormats(verr, in.Email, in.Phone)
	if !in.Status.Valid() {
		verr.Add("status", statusMessage)
	}
	return verr.OrNil()
}

const statusMessage = "status must be one of pending, confirmed, cancelled"

// patchField is one supplied value of a partial update.
type patchField struct {
	name  string
	value *string
}

// requirePatched rejects required fields that a patch sets to blank.
func requirePatched(verr *domain.ValidationError, fields ...patchField) {
	for _, f := range fields {
		if f.value != nil {
			requireFields(verr, requiredField{f.name, *f.value})
		}
	}
}

func checkPatchedFormats(verr *domain.ValidationError, email, phone *string) {
	checkFormats(verr, strings.TrimSpace(domain.Deref(email)), strings.TrimSpace(domain.Deref(phone)))
}

func validateInquiryPatch(p domain.InquiryPatch) error {
	verr := &domain.ValidationError{}
	if p.Empty() {
		verr.Add("body", "update must set at least one field")
		return verr
	}
	requirePatched(verr,
		patchField{"first_name", p.FirstName},
		patchField{"last_name", p.LastName},
		patchField{"phone", p.Phone},
		patchField{"email", p.Email},
		patchField{"city", p.City},
		patchField{"country", p.Country},
	)
	checkPatchedFormats(verr, p.Email, p.Phone)
	return verr.OrNil()
}

func validateBookingPatch(p domain.BookingPatch) error {
	verr := &domain.ValidationError{}
	if p.Empty() {
		verr.Add("body", "update must set at least one field")
		return verr
	}
	requirePatched(verr,
		patchField{"expedition_name", p.ExpeditionName},
		patchField{"first_name", p.FirstName},
		patchField{"last_name", p.LastName},
		patchField{"phone", p.Phone},
		patchField{"email", p.Email},
		patchField{"city", p.City},
		patchField{"country", p.Country},
	)
	checkPatchedFormats(verr, p.Email, p.Phone)
	if p.Status != nil && !p.Status.Valid() {
		verr.Add("status", statusMessage)
	}
	return verr.OrNil()
}

// validateBookingQuery adds the status enum check to the generic query shape
// checks.
func validateBookingQuery(q domain.Query) error {
	verr := &domain.ValidationError{}
	if err := q.Validate(); err != nil && !errors.As(err, &verr) {
		return err
	}
	if s := q.Filter.Status; s != "" && !domain.BookingStatus(s).Valid() {
		verr.Add("status", statusMessage)
	}
	return verr.OrNil()
}
