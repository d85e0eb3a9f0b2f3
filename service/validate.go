package service

import (
	"regexp"
	"strings"

	"driveshare/pkg/apperr"
	"driveshare/pkg/models"
)

const (
	MinFullNameLen = 1
	MaxFullNameLen = 255

	MinEmailLen = 5
	MaxEmailLen = 255

	MinPasswordLen = 8
	MaxPasswordLen = 72 // bcrypt input limit
)

var (
	mobileNumberRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	idNumberRe     = regexp.MustCompile(`^[A-Za-z0-9-]{4,30}$`)
	digitsRe       = regexp.MustCompile(`^[0-9]+$`)
)

func validateRegistration(req models.RegisterRequest) error {
	if err := validateFullName(req.FullName); err != nil {
		return err
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if req.Password != req.PasswordConfirmation {
		return apperr.New(apperr.KindValidation, "passwords do not match")
	}
	return nil
}

func validateFullName(fullName string) error {
	n := len(strings.TrimSpace(fullName))
	if n < MinFullNameLen || n > MaxFullNameLen {
		return apperr.Newf(apperr.KindValidation, "full_name length must be in range [%d, %d]", MinFullNameLen, MaxFullNameLen)
	}
	return nil
}

func validateEmail(email string) error {
	n := len(email)
	if n < MinEmailLen || n > MaxEmailLen {
		return apperr.Newf(apperr.KindValidation, "email length must be in range [%d, %d]", MinEmailLen, MaxEmailLen)
	}
	if strings.Count(email, "@") != 1 {
		return apperr.New(apperr.KindValidation, "email must contain exactly one @")
	}
	local, domain, _ := strings.Cut(email, "@")
	if local == "" || !strings.Contains(domain, ".") {
		return apperr.New(apperr.KindValidation, "malformed email address")
	}
	return nil
}

func validatePassword(password string) error {
	n := len(password)
	if n < MinPasswordLen || n > MaxPasswordLen {
		return apperr.Newf(apperr.KindValidation, "password length must be in range [%d, %d]", MinPasswordLen, MaxPasswordLen)
	}
	return nil
}

func validateMobileNumber(mobile string) error {
	if !mobileNumberRe.MatchString(mobile) {
		return apperr.New(apperr.KindValidation, "mobile_number must be 7-15 digits with optional leading +")
	}
	return nil
}

func validateIDNumber(idNumber string) error {
	if !idNumberRe.MatchString(idNumber) {
		return apperr.New(apperr.KindValidation, "id_number must be 4-30 alphanumeric characters")
	}
	return nil
}
