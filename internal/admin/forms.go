package admin

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CakeForm is the cake create/edit form.
type CakeForm struct {
	Name        string `form:"name" validate:"required,max=255"`
	Price       string `form:"price" validate:"required,max=32"`
	Description string `form:"description" validate:"max=5000"`
}

// HourForm is the business hour create/edit form.
type HourForm struct {
	Day   string `form:"day" validate:"required,max=100"`
	Hours string `form:"hours" validate:"required,max=255"`
}

// TestimonialForm is the testimonial create/edit form.
type TestimonialForm struct {
	Name    string `form:"name" validate:"required,max=255"`
	Comment string `form:"comment" validate:"required"`
}

// ContactForm is the contact form. All fields may be empty.
type ContactForm struct {
	Phone     string `form:"phone" validate:"max=100"`
	Instagram string `form:"instagram" validate:"max=100"`
	Address   string `form:"address" validate:"max=512"`
}

// Drafts holds the form input of the record currently being created or edited.
// A failed submission keeps the input so the form can be shown again.
type Drafts struct {
	Cake          CakeForm
	CakeID        uint64
	Hour          HourForm
	HourID        uint64
	Testimonial   TestimonialForm
	TestimonialID uint64
	Contact       ContactForm
}

var validate = validator.New()

// check runs the struct validation and converts the result into *ValidationError.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err //nolint:wrapcheck
	}

	ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		ve.Fields[strings.ToLower(fe.Field())] = fe.Tag()
	}

	return ve
}

// trim removes surrounding whitespace from the text fields.
func (f CakeForm) trim() CakeForm {
	return CakeForm{
		Name:        strings.TrimSpace(f.Name),
		Price:       strings.TrimSpace(f.Price),
		Description: strings.TrimSpace(f.Description),
	}
}

// price validates the form and parses the price, which must not be negative.
func (f CakeForm) price() (decimal.Decimal, error) {
	if err := check(f); err != nil {
		return decimal.Zero, err
	}

	p, err := decimal.NewFromString(f.Price)
	if err != nil {
		return decimal.Zero, &ValidationError{Fields: map[string]string{"price": "number"}}
	}

	if p.IsNegative() {
		return decimal.Zero, &ValidationError{Fields: map[string]string{"price": "gte=0"}}
	}

	return p.Round(2), nil //nolint:mnd
}

func (f HourForm) trim() HourForm {
	return HourForm{Day: strings.TrimSpace(f.Day), Hours: strings.TrimSpace(f.Hours)}
}

func (f TestimonialForm) trim() TestimonialForm {
	return TestimonialForm{Name: strings.TrimSpace(f.Name), Comment: strings.TrimSpace(f.Comment)}
}

// trim also strips a leading "@" from the handle.
func (f ContactForm) trim() ContactForm {
	return ContactForm{
		Phone:     strings.TrimSpace(f.Phone),
		Instagram: strings.TrimPrefix(strings.TrimSpace(f.Instagram), "@"),
		Address:   strings.TrimSpace(f.Address),
	}
}
