// Package handoff builds the WhatsApp and email links a visitor follows after
// submitting an inquiry or booking, so the team gets the request on the
// channel they answer fastest.
package handoff

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rupaladventures/basecamp/internal/domain"
)

const (
	DefaultWhatsAppNumber = "923169457494"
	DefaultContactEmail   = "info@rupaladventures.com"

	generalInquiry = "General Inquiry"
	noMessage      = "No additional message provided."
)

// Links are the prefilled contact links for one submission.
type Links struct {
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
}

// Builder renders Links for a configured phone number and mailbox.
type Builder struct {
	number string
	email  string
}

// New returns a Builder. Blank arguments fall back to the defaults.
func New(whatsAppNumber, contactEmail string) Builder {
	if whatsAppNumber == "" {
		whatsAppNumber = DefaultWhatsAppNumber
	}
	if contactEmail == "" {
		contactEmail = DefaultContactEmail
	}
	return Builder{number: strings.TrimPrefix(whatsAppNumber, "+"), email: contactEmail}
}

// contact is the part of a submission the message templates use.
type contact struct {
	firstName, lastName string
	phone, email        string
	city, province      string
	country             string
	organization        string
	topic               string
	message             string
}

// Inquiry builds links for a stored inquiry; its subject is the topic.
func (b Builder) Inquiry(i domain.Inquiry) Links {
	return b.links(contact{
		firstName:    i.FirstName,
		lastName:     i.LastName,
		phone:        i.Phone,
		email:        i.Email,
		city:         i.City,
		province:     domain.Deref(i.Province),
		country:      i.Country,
		organization: domain.Deref(i.Organization),
		topic:        domain.Deref(i.Subject),
		message:      domain.Deref(i.Message),
	})
}

// Booking builds links for a stored booking; its expedition is the topic.
func (b Builder) Booking(bk domain.Booking) Links {
	return b.links(contact{
		firstName:    bk.FirstName,
		lastName:     bk.LastName,
		phone:        bk.Phone,
		email:        bk.Email,
		city:         bk.City,
		province:     domain.Deref(bk.Province),
		country:      bk.Country,
		organization: domain.Deref(bk.Organization),
		topic:        bk.ExpeditionName,
		message:      domain.Deref(bk.Message),
	})
}

func (b Builder) links(c contact) Links {
	if c.topic == "" {
		c.topic = generalInquiry
	}
	if c.message == "" {
		c.message = noMessage
	}
	subject := "Expedition Inquiry: " + c.topic
	return Links{
		WhatsApp: "https://wa.me/" + b.number + "?text=" + escape(whatsAppText(c)),
		Email:    "mailto:" + b.email + "?subject=" + escape(subject) + "&body=" + escape(emailBody(c)),
	}
}

func whatsAppText(c contact) string {
	var s strings.Builder
	fmt.Fprintf(&s, "🏔️ EXPEDITION INQUIRY - %s\n\n", c.topic)
	s.WriteString("👤 CONTACT DETAILS:\n")
	fmt.Fprintf(&s, "• Name: %s %s\n", c.firstName, c.lastName)
	fmt.Fprintf(&s, "• Phone: %s\n", c.phone)
	fmt.Fprintf(&s, "• Email: %s\n", c.email)
	fmt.Fprintf(&s, "• City: %s\n", joinNonEmpty(c.city, c.province))
	fmt.Fprintf(&s, "• Country: %s\n", c.country)
	if c.organization != "" {
		fmt.Fprintf(&s, "• Organization: %s\n", c.organization)
	}
	fmt.Fprintf(&s, "\n📝 MESSAGE:\n%s\n\n", c.message)
	s.WriteString("---\nSent via Rupal Adventures website booking form.")
	return s.String()
}

func emailBody(c contact) string {
	var s strings.Builder
	s.WriteString("Dear Rupal Adventures Team,\n\n")
	s.WriteString("I am interested in booking an expedition and would like to provide the following details:\n\n")
	s.WriteString("CONTACT INFORMATION:\n")
	fmt.Fprintf(&s, "Name: %s %s\n", c.firstName, c.lastName)
	fmt.Fprintf(&s, "Phone: %s\n", c.phone)
	fmt.Fprintf(&s, "Email: %s\n", c.email)
	fmt.Fprintf(&s, "Location: %s\n", joinNonEmpty(c.city, c.province, c.country))
	if c.organization != "" {
		fmt.Fprintf(&s, "Organization: %s\n", c.organization)
	}
	fmt.Fprintf(&s, "\nEXPEDITION: %s\n\n", c.topic)
	fmt.Fprintf(&s, "MESSAGE:\n%s\n\n", c.message)
	s.WriteString("I look forward to hearing from you about planning this adventure.\n\n")
	fmt.Fprintf(&s, "Best regards,\n%s %s", c.firstName, c.lastName)
	return s.String()
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// escape percent-encodes s for a URL query value, spaces as %20 rather
// than '+', which mail clients show literally.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
