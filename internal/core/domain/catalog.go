package domain

// Brand is a manufacturer whose products are quoted on inquiries.
type Brand struct {
	Meta          `bson:",inline"`
	Name          string `json:"name" bson:"name"`
	ContactPerson string `json:"contact_person" bson:"contact_person"`
	Email         string `json:"email" bson:"email"`
	Phone         string `json:"phone" bson:"phone"`
	Website       string `json:"website,omitempty" bson:"website,omitempty"`
	Address       string `json:"address,omitempty" bson:"address,omitempty"`
}

func (b *Brand) Ref() Ref { return Ref{ID: b.ID, Name: b.Name} }

// Product is a catalogue item of a brand.
type Product struct {
	Meta        `bson:",inline"`
	Name        string `json:"name" bson:"name"`
	Brand       Ref    `json:"brand" bson:"brand"`
	Category    string `json:"category,omitempty" bson:"category,omitempty"`
	ModelNumber string `json:"model_number,omitempty" bson:"model_number,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

func (p *Product) Ref() Ref { return Ref{ID: p.ID, Name: p.Name} }

// Consumer is the end customer an inquiry is raised for.
type Consumer struct {
	Meta          `bson:",inline"`
	Name          string `json:"name" bson:"name"`
	Company       string `json:"company,omitempty" bson:"company,omitempty"`
	ContactPerson string `json:"contact_person,omitempty" bson:"contact_person,omitempty"`
	Email         string `json:"email" bson:"email"`
	Phone         string `json:"phone" bson:"phone"`
	Address       string `json:"address,omitempty" bson:"address,omitempty"`
	City          string `json:"city,omitempty" bson:"city,omitempty"`
}

func (c *Consumer) Ref() Ref { return Ref{ID: c.ID, Name: c.Name} }

// Consultant is the engineering consultant specifying products on a project.
type Consultant struct {
	Meta    `bson:",inline"`
	Name    string `json:"name" bson:"name"`
	Firm    string `json:"firm,omitempty" bson:"firm,omitempty"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

func (c *Consultant) Ref() Ref { return Ref{ID: c.ID, Name: c.Name} }
