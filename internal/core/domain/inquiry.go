package domain

import (
	"fmt"
	"strings"
	"time"
)

// InquiryStatus is the procurement stage of an inquiry.
type InquiryStatus string

const (
	InquiryTender      InquiryStatus = "tender"
	InquiryPurchase    InquiryStatus = "purchase"
	InquiryProcurement InquiryStatus = "procurement"
	InquiryUrgent      InquiryStatus = "urgent"
)

// InquiryStatuses lists every status in display order.
var InquiryStatuses = []InquiryStatus{InquiryTender, InquiryPurchase, InquiryProcurement, InquiryUrgent}

func (s InquiryStatus) Valid() bool {
	for _, known := range InquiryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseInquiryStatus accepts any letter case and surrounding whitespace.
func ParseInquiryStatus(raw string) (InquiryStatus, error) {
	s := InquiryStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Comment is one entry in an inquiry's description history.
type Comment struct {
	Text      string    `json:"text" bson:"text"`
	Author    Ref       `json:"author" bson:"author"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Inquiry is a customer request tracked from tender to purchase.
type Inquiry struct {
	Meta         `bson:",inline"`
	Project      string        `json:"project" bson:"project"`
	Consumer     Ref           `json:"consumer" bson:"consumer"`
	Product      Ref           `json:"product" bson:"product"`
	Consultant   *Ref          `json:"consultant,omitempty" bson:"consultant,omitempty"`
	Quantity     int           `json:"quantity" bson:"quantity"`
	Status       InquiryStatus `json:"status" bson:"status"`
	AssignedTo   *Ref          `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	FollowUpDate *time.Time    `json:"follow_up_date,omitempty" bson:"follow_up_date,omitempty"`
	Descriptions []Comment     `json:"descriptions" bson:"descriptions"`
	CreatedBy    Ref           `json:"created_by" bson:"created_by"`
}

// AddComment appends to the description history, oldest first.
func (i *Inquiry) AddComment(text string, author Ref, at time.Time) Comment {
	c := Comment{Text: strings.TrimSpace(text), Author: author, CreatedAt: at}
	i.Descriptions = append(i.Descriptions, c)
	i.UpdatedAt = at
	return c
}

// Assign hands the inquiry to a user with a follow-up date.
func (i *Inquiry) Assign(to Ref, due time.Time, at time.Time) {
	i.AssignedTo = &to
	i.FollowUpDate = &due
	i.UpdatedAt = at
}

// InquiryFilter narrows the inquiries list.
type InquiryFilter struct {
	ListQuery
	Status     InquiryStatus
	AssignedTo string
}
