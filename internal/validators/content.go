// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/repraze/repraze-apps-sub001/internal/coerce"
	"github.com/repraze/repraze-apps-sub001/models"
)

// OnCreate makes required fields mandatory.
const OnCreate = "on create"

const (
	FieldName          = "name"
	FieldTitle         = "title"
	FieldTags          = "tags"
	FieldCategory      = "category"
	FieldPublishDate   = "publish_date"
	FieldAuthors       = "authors"
	FieldFeaturedMedia = "featured_media"
	FieldFilename      = "filename"
	FieldContentType   = "content_type"
	FieldSize          = "size"
	FieldUsername      = "username"
	FieldDisplayName   = "display_name"
	FieldEmail         = "email"
	FieldPassword      = "password"
)

const (
	maxNameLength     = 200
	minPasswordLength = 8
	maxPasswordLength = 1024
)

var (
	slug     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	username = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,64}$`)
)

// ContentValidator validates post, page, media and user bodies as well as
// login credentials.
type ContentValidator struct{}

func NewContentValidator() Validator {
	return &ContentValidator{}
}

func (v *ContentValidator) Validate(ctx context.Context, obj any, scopes ...string) error {
	creating := slices.Contains(scopes, OnCreate)

	switch value := obj.(type) {
	case models.PostInput:
		return v.validatePost(value, creating)
	case *models.PostInput:
		return v.validatePost(*value, creating)

	case models.PageInput:
		return v.validatePage(value, creating)
	case *models.PageInput:
		return v.validatePage(*value, creating)

	case models.MediaInput:
		return v.validateMedia(value, creating)
	case *models.MediaInput:
		return v.validateMedia(*value, creating)

	case models.UserInput:
		return v.validateUser(value, creating)
	case *models.UserInput:
		return v.validateUser(*value, creating)

	case models.Credentials:
		return v.validateCredentials(value)
	case *models.Credentials:
		return v.validateCredentials(*value)

	case models.PasswordChange:
		return validatePassword(&value.Password, true)
	case *models.PasswordChange:
		return validatePassword(&value.Password, true)

	default:
		return ErrUnsupportedType
	}
}

func (v *ContentValidator) validatePost(in models.PostInput, creating bool) error {
	if err := validateName(in.Name, creating); err != nil {
		return err
	}
	if err := validateTitle(in.Title, creating); err != nil {
		return err
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != *in.Category {
		return NewValidationError(BodyField(FieldCategory), "must not have surrounding spaces")
	}
	if in.Tags != nil {
		if err := validateNonBlankList(FieldTags, *in.Tags); err != nil {
			return err
		}
	}
	if in.PublishDate != nil && *in.PublishDate != "" {
		if _, ok := coerce.Date(*in.PublishDate).(time.Time); !ok {
			return NewValidationError(BodyField(FieldPublishDate), "must be an ISO-8601 date")
		}
	}
	if in.Authors != nil {
		if err := validateNonBlankList(FieldAuthors, *in.Authors); err != nil {
			return err
		}
	}

	return nil
}

func (v *ContentValidator) validatePage(in models.PageInput, creating bool) error {
	if err := validateName(in.Name, creating); err != nil {
		return err
	}
	return validateTitle(in.Title, creating)
}

func (v *ContentValidator) validateMedia(in models.MediaInput, creating bool) error {
	if err := validateName(in.Name, creating); err != nil {
		return err
	}
	if err := validateTitle(in.Title, creating); err != nil {
		return err
	}
	if err := validateRequiredString(FieldFilename, in.Filename, creating); err != nil {
		return err
	}
	if in.ContentType != nil && !strings.Contains(*in.ContentType, "/") {
		return NewValidationError(BodyField(FieldContentType), "must be a MIME type")
	}
	if in.Size != nil && *in.Size < 0 {
		return NewValidationError(BodyField(FieldSize), "must not be negative")
	}

	return nil
}

func (v *ContentValidator) validateUser(in models.UserInput, creating bool) error {
	switch {
	case in.Username == nil && creating:
		return NewValidationError(BodyField(FieldUsername), "is required")
	case in.Username != nil && !username.MatchString(*in.Username):
		return NewValidationError(BodyField(FieldUsername), "must be 3 to 64 letters, digits, '.', '_' or '-'")
	}
	if in.Email != nil && *in.Email != "" {
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			return NewValidationError(BodyField(FieldEmail), "must be an email address")
		}
	}
	if in.Password != nil || creating {
		return validatePassword(in.Password, creating)
	}

	return nil
}

func (v *ContentValidator) validateCredentials(in models.Credentials) error {
	if in.Username == "" {
		return NewValidationError(BodyField(FieldUsername), "is required")
	}
	if in.Password == "" {
		return NewValidationError(BodyField(FieldPassword), "is required")
	}
	return nil
}

func validateName(name *string, creating bool) error {
	field := BodyField(FieldName)
	switch {
	case name == nil && creating:
		return NewValidationError(field, "is required")
	case name == nil:
		return nil
	case len(*name) > maxNameLength:
		return NewValidationError(field, "is too long")
	case !slug.MatchString(*name):
		return NewValidationError(field, "must be lowercase letters and digits separated by '-'")
	}
	return nil
}

func validateTitle(title *string, creating bool) error {
	return validateRequiredString(FieldTitle, title, creating)
}

func validateRequiredString(name string, value *string, creating bool) error {
	switch {
	case value == nil && creating:
		return NewValidationError(BodyField(name), "is required")
	case value != nil && strings.TrimSpace(*value) == "":
		return NewValidationError(BodyField(name), "must not be blank")
	}
	return nil
}

func validateNonBlankList(name string, values []string) error {
	for _, item := range values {
		if strings.TrimSpace(item) == "" {
			return NewValidationError(BodyField(name), "must not contain blank entries")
		}
	}
	return nil
}

func validatePassword(password *string, required bool) error {
	field := BodyField(FieldPassword)
	switch {
	case password == nil && required:
		return NewValidationError(field, "is required")
	case password == nil:
		return nil
	case len(*password) < minPasswordLength:
		return NewValidationError(field, "must be at least 8 characters")
	case len(*password) > maxPasswordLength:
		return NewValidationError(field, "is too long")
	}
	return nil
}
