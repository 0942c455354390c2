package destination

import (
	"errors"
	"strings"

	"github.com/offmind/offmind-backend/internal/catalog"
	"github.com/offmind/offmind-backend/internal/domain"
)

// CreateDestinationInput holds the parameters for a new destination. Slug is
// derived from Name when absent; Color is suggested from the palette when absent.
type CreateDestinationInput struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Slug        *string `json:"slug"`
	Icon        string  `json:"icon"        validate:"required"`
	Color       *string `json:"color"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// Validate checks all fields and collects all errors.
func (i CreateDestinationInput) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	errs, err := collect(domain.ValidateStruct(i))
	if err != nil {
		return err
	}
	errs = validateCatalogKeys(errs, &i.Icon, i.Color)
	errs = validateSlug(errs, i.Slug)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateDestinationInput holds a partial update. Nil fields are left unchanged.
// An empty Color or Description clears it.
type UpdateDestinationInput struct {
	Name        *string `json:"name"        validate:"omitempty,max=100"`
	Slug        *string `json:"slug"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	SortOrder   *int    `json:"sort_order"  validate:"omitempty,min=0"`
}

// Validate checks all fields and collects all errors.
func (i UpdateDestinationInput) Validate() error {
	errs, err := collect(domain.ValidateStruct(i))
	if err != nil {
		return err
	}
	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	color := i.Color
	if color != nil && *color == "" {
		color = nil
	}
	errs = validateCatalogKeys(errs, i.Icon, color)
	errs = validateSlug(errs, i.Slug)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// collect returns the field errors of a ValidationError. Any other error
// is returned as is.
func collect(err error) ([]domain.FieldError, error) {
	if err == nil {
		return nil, nil
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Errors, nil
	}
	return nil, err
}

func validateCatalogKeys(errs []domain.FieldError, icon, color *string) []domain.FieldError {
	if icon != nil && *icon != "" && !catalog.IsKnownIcon(*icon) {
		errs = append(errs, domain.FieldError{Field: "icon", Message: "unknown icon"})
	}
	if color != nil && !catalog.IsKnownColor(*color) {
		errs = append(errs, domain.FieldError{Field: "color", Message: "unknown color"})
	}
	return errs
}

func validateSlug(errs []domain.FieldError, slug *string) []domain.FieldError {
	if slug != nil && !domain.IsValidSlug(*slug) {
		errs = append(errs, domain.FieldError{Field: "slug", Message: "lowercase letters, digits and dashes, max 64"})
	}
	return errs
}
