package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Item is the catalog record persisted by the repositories.
//
// CreatedAt and UpdatedAt are managed by the service layer, so GORM's
// automatic timestamping is disabled for both columns.
type Item struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description *string   `json:"description" gorm:"size:500"`
	Price       float64   `json:"price" gorm:"not null"`
	IsAvailable bool      `json:"is_available" gorm:"not null"`
	Metadata    Metadata  `json:"metadata" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// TableName sets the GORM table name for Item.
func (Item) TableName() string {
	return "items"
}

// ItemCreate is the payload for creating a new item.
type ItemCreate struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	IsAvailable *bool    `json:"is_available"`
	Metadata    Metadata `json:"metadata"`
}

// ItemUpdate is the payload for partially updating an item. Every field
// is tri-state: left out of the request it is not applied at all, while
// an explicit null clears the optional fields (description, metadata)
// and is rejected for the required ones.
type ItemUpdate struct {
	Name        Optional[string]   `json:"name"`
	Description Optional[string]   `json:"description"`
	Price       Optional[float64]  `json:"price"`
	IsAvailable Optional[bool]     `json:"is_available"`
	Metadata    Optional[Metadata] `json:"metadata"`
}

var validate = validator.New()

// Normalize trims string fields and applies the documented
// normalizations: a description that is empty after trimming becomes
// absent, a missing metadata mapping becomes an empty one.
func (p *ItemCreate) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		if d == "" {
			p.Description = nil
		} else {
			p.Description = &d
		}
	}
	if p.Metadata == nil {
		p.Metadata = Metadata{}
	}
}

// Validate checks the entity-level constraints of a creation payload.
// Callers should Normalize first.
func (p *ItemCreate) Validate() error {
	if err := validate.Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return newValidationError(verrs[0])
		}
		return err
	}
	return nil
}

// Normalize applies the same trimming rules as ItemCreate.Normalize to
// the fields that carry a value.
func (p *ItemUpdate) Normalize() {
	if p.Name.Valid {
		p.Name.Value = strings.TrimSpace(p.Name.Value)
	}
	if p.Description.Valid {
		d := strings.TrimSpace(p.Description.Value)
		if d == "" {
			// Empty-after-trim means the caller is clearing the field.
			p.Description = Optional[string]{Set: true}
		} else {
			p.Description.Value = d
		}
	}
}

// Validate checks the fields present in an update payload. Explicit
// nulls are only allowed on description and metadata, which can be
// cleared; name, price and is_available always carry a value.
func (p *ItemUpdate) Validate() error {
	if p.Name.Set {
		if !p.Name.Valid {
			return &ValidationError{Field: "name", Message: "must not be null"}
		}
		if err := validate.Var(p.Name.Value, "required,min=1,max=100"); err != nil {
			return &ValidationError{Field: "name", Message: "must be between 1 and 100 characters"}
		}
	}
	if p.Description.Set && p.Description.Valid {
		if err := validate.Var(p.Description.Value, "max=500"); err != nil {
			return &ValidationError{Field: "description", Message: "must be at most 500 characters"}
		}
	}
	if p.Price.Set {
		if !p.Price.Valid {
			return &ValidationError{Field: "price", Message: "must not be null"}
		}
		if err := validate.Var(p.Price.Value, "gt=0"); err != nil {
			return &ValidationError{Field: "price", Message: "must be greater than 0"}
		}
	}
	if p.IsAvailable.Set && !p.IsAvailable.Valid {
		return &ValidationError{Field: "is_available", Message: "must not be null"}
	}
	return nil
}

// ValidationError reports a violated entity constraint. It names the
// offending field and the constraint so the API layer can surface a
// message more useful than "invalid input".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func newValidationError(fe validator.FieldError) *ValidationError {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: "is required"}
	case "min":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at least %s characters", fe.Param())}
	case "max":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %s characters", fe.Param())}
	case "gt":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be greater than %s", fe.Param())}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}
