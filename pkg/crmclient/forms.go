package crmclient

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Forms mirror the dashboard's create/edit dialogs. They are validated locally
// before any request is sent.

type LoginForm struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserForm struct {
	Name        string `json:"name"               validate:"required,max=100"`
	Email       string `json:"email,omitempty"    validate:"omitempty,email"`
	Password    string `json:"password,omitempty" validate:"omitempty,min=8"`
	RoleID      string `json:"role_id"            validate:"required"`
	Designation string `json:"designation"        validate:"max=100"`
	Mobile      string `json:"mobile"             validate:"required,phone10"`
}

type RoleForm struct {
	Name string `json:"name" validate:"required,max=50"`
}

type BrandForm struct {
	Name          string `json:"name"           validate:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"          validate:"required,email"`
	Phone         string `json:"phone"          validate:"required,phone10"`
	Website       string `json:"website"        validate:"omitempty,url"`
	Address       string `json:"address"`
}

type ProductForm struct {
	Name        string `json:"name"         validate:"required"`
	BrandID     string `json:"brand_id"     validate:"required"`
	Category    string `json:"category"`
	ModelNumber string `json:"model_number"`
	Description string `json:"description"`
}

type ConsumerForm struct {
	Name          string `json:"name"           validate:"required"`
	Company       string `json:"company"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"          validate:"required,email"`
	Phone         string `json:"phone"          validate:"required,phone10"`
	Address       string `json:"address"`
	City          string `json:"city"`
}

type ConsultantForm struct {
	Name    string `json:"name"    validate:"required"`
	Firm    string `json:"firm"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required,phone10"`
	Address string `json:"address"`
}

type InquiryForm struct {
	Project      string `json:"project"       validate:"required,max=200"`
	ConsumerID   string `json:"consumer_id"   validate:"required"`
	ProductID    string `json:"product_id"    validate:"required"`
	ConsultantID string `json:"consultant_id,omitempty"`
	Quantity     int    `json:"quantity"      validate:"required,gt=0"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=tender purchase procurement urgent"`
	Description  string `json:"description,omitempty"`
}

type FollowUpForm struct {
	Name        string    `json:"name"        validate:"required,max=200"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	AssignedTo  string    `json:"assigned_to" validate:"required"`
	InquiryID   string    `json:"inquiry_id,omitempty"`
}

type AssignFollowUpForm struct {
	AssignedTo  string    `json:"assigned_to" validate:"required"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	Description string    `json:"description"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
	phone10Re    = regexp.MustCompile(`^[0-9]{10}$`)
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
			return phone10Re.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidationError lists the offending fields of a form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+" "+msg)
	}
	return "crmclient: invalid form: " + strings.Join(parts, "; ")
}

// Validate checks a form struct against its validate tags. Values that are
// not structs are passed through.
func Validate(form any) error {
	v := reflect.ValueOf(form)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "phone10":
		return "must be exactly 10 digits"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "eqfield":
		return "does not match"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
