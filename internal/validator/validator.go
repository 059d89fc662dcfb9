package validator

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"article-api/internal/derive"
	"article-api/internal/domain"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	validStatus   = []interface{}{domain.StatusDraft, domain.StatusPublished, domain.StatusArchived}
)

// MaxTags caps the number of tags per article.
const MaxTags = 10

// Validator provides validation methods for domain entities.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateArticle validates an Article entity after the server-derived
// fields have been applied.
func (v *Validator) ValidateArticle(a *domain.Article) error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Title,
			validation.Required.Error("title_required"),
			validation.Length(5, 200).Error("title_length_5_200"),
		),
		validation.Field(&a.Content,
			validation.Required.Error("content_required"),
			validation.Length(10, 0).Error("content_min_10"),
		),
		validation.Field(&a.Excerpt,
			validation.Length(0, 500).Error("excerpt_max_500"),
		),
		validation.Field(&a.Status,
			validation.Required.Error("status_required"),
			validation.In(validStatus...).Error("invalid_status"),
		),
		validation.Field(&a.Tags,
			validation.Length(0, 200).Error("tags_max_200_chars"),
		),
	)
	if err != nil {
		return err
	}

	if len(derive.TagList(a.Tags)) > MaxTags {
		return validation.Errors{
			"tags": validation.NewError("too_many_tags", "maximum 10 tags allowed"),
		}
	}

	return nil
}

// Registration is the validated input for creating a user account.
type Registration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// ValidateRegistration validates a registration request.
func (v *Validator) ValidateRegistration(r *Registration) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required.Error("username_required"),
			validation.Length(3, 150).Error("username_length_3_150"),
			validation.Match(usernameRegex).Error("invalid_username_format"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email_required"),
			is.Email.Error("invalid_email_format"),
		),
		validation.Field(&r.DisplayName,
			validation.Length(0, 200).Error("display_name_max_200"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password_required"),
			validation.Length(8, 128).Error("password_length_8_128"),
		),
	)
}
