package crmclient

import "time"

// Ref is an id plus the display name captured when the reference was set.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Meta holds the fields every stored entity carries.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	Meta
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        Ref    `json:"role"`
	Designation string `json:"designation"`
	Mobile      string `json:"mobile"`
	Active      bool   `json:"active"`
}

type Role struct {
	Meta
	Name string `json:"name"`
}

type Brand struct {
	Meta
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Website       string `json:"website,omitempty"`
	Address       string `json:"address,omitempty"`
}

type Product struct {
	Meta
	Name        string `json:"name"`
	Brand       Ref    `json:"brand"`
	Category    string `json:"category,omitempty"`
	ModelNumber string `json:"model_number,omitempty"`
	Description string `json:"description,omitempty"`
}

type Consumer struct {
	Meta
	Name          string `json:"name"`
	Company       string `json:"company,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
}

type Consultant struct {
	Meta
	Name    string `json:"name"`
	Firm    string `json:"firm,omitempty"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// Comment is one entry of an inquiry's description history.
type Comment struct {
	Text      string    `json:"text"`
	Author    Ref       `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type Inquiry struct {
	Meta
	Project      string     `json:"project"`
	Consumer     Ref        `json:"consumer"`
	Product      Ref        `json:"product"`
	Consultant   *Ref       `json:"consultant,omitempty"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	AssignedTo   *Ref       `json:"assigned_to,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
	Descriptions []Comment  `json:"descriptions"`
	CreatedBy    Ref        `json:"created_by"`
}

type FollowUp struct {
	Meta
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	DueDate        time.Time  `json:"due_date"`
	Status         string     `json:"status"`
	AssignedTo     Ref        `json:"assigned_to"`
	InquiryID      string     `json:"inquiry_id,omitempty"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedBy      Ref        `json:"created_by"`
}

type Notification struct {
	Meta
	UserID  string     `json:"user_id"`
	Kind    string     `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Link    string     `json:"link,omitempty"`
	Read    bool       `json:"read"`
	ReadAt  *time.Time `json:"read_at,omitempty"`
}

// Summary is the analytics dashboard payload.
type Summary struct {
	Inquiries         int64            `json:"inquiries"`
	InquiriesByStatus map[string]int64 `json:"inquiries_by_status"`
	InquiriesByMonth  []struct {
		Month string `json:"month"`
		Count int64  `json:"count"`
	} `json:"inquiries_by_month"`
	Products    int64 `json:"products"`
	Brands      int64 `json:"brands"`
	Consumers   int64 `json:"consumers"`
	Consultants int64 `json:"consultants"`
	ActiveUsers int64 `json:"active_users"`
	FollowUps   struct {
		Pending   int64 `json:"pending"`
		Completed int64 `json:"completed"`
		Overdue   int64 `json:"overdue"`
	} `json:"follow_ups"`
	GeneratedAt time.Time `json:"generated_at"`
}
