// Package validation holds the pure field checks run before any database
// access. Each check returns an empty string when the value is acceptable,
// otherwise the caller-facing message; aggregate helpers collect the messages
// for a whole payload.
package validation

import (
	"regexp"
	"strings"
)

var (
	onlyDigits  = regexp.MustCompile(`^[0-9]+$`)
	onlyLetters = regexp.MustCompile(`^[a-zA-Z]+$`)
	emailShape  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneStrict = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
	phoneLoose  = regexp.MustCompile(`^\+?[0-9]{10,20}$`)
)

// Email accepts ordinary addresses but rejects values that are only digits or
// only letters, which slip past naive shape checks.
func Email(email string) string {
	if email == "" {
		return "Email is required and must be a string"
	}
	if onlyDigits.MatchString(email) {
		return "Invalid email format: cannot contain only numbers"
	}
	if onlyLetters.MatchString(email) {
		return "Invalid email format: cannot contain only alphabets"
	}
	if !emailShape.MatchString(email) {
		return "Invalid email format"
	}
	return ""
}

// Phone accepts common formats such as +1234567890, (123) 456-7890 and
// 123-456-7890; separators are stripped before matching.
func Phone(phone string) string {
	if phone == "" {
		return "Phone is required and must be a string"
	}
	stripped := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	if !phoneStrict.MatchString(stripped) && !phoneLoose.MatchString(stripped) {
		return "Invalid phone number format"
	}
	return ""
}

// Name requires a trimmed value of at least two characters.
func Name(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required and cannot be empty"
	}
	if len(strings.TrimSpace(name)) < 2 {
		return "Name must be at least 2 characters long"
	}
	return ""
}

// Required rejects empty or blank values with a field-specific message.
func Required(value, fieldName string) string {
	if strings.TrimSpace(value) == "" {
		return fieldName + " is required"
	}
	return ""
}

// Customer validates a customer payload and returns every failure.
func Customer(name, email, phone string) []string {
	var errs []string
	if msg := Name(name); msg != "" {
		errs = append(errs, msg)
	}
	if msg := Email(email); msg != "" {
		errs = append(errs, msg)
	}
	if msg := Phone(phone); msg != "" {
		errs = append(errs, msg)
	}
	return errs
}

// Lead validates a lead payload. A nil value is allowed and defaults to zero
// downstream.
func Lead(customerID int64, leadSource, status string, value *float64) []string {
	var errs []string
	if customerID <= 0 {
		errs = append(errs, "Valid customer_id is required")
	}
	if msg := Required(leadSource, "Lead source"); msg != "" {
		errs = append(errs, msg)
	}
	if msg := Required(status, "Status"); msg != "" {
		errs = append(errs, msg)
	}
	if value != nil && *value < 0 {
		errs = append(errs, "Lead value must be a positive number")
	}
	return errs
}

// Contact validates a contact payload. When the type is "email" or "phone"
// the value is checked with the matching format validator.
func Contact(customerID int64, contactType, contactValue string) []string {
	var errs []string
	if customerID <= 0 {
		errs = append(errs, "Valid customer_id is required")
	}
	if msg := Required(contactType, "Contact type"); msg != "" {
		errs = append(errs, msg)
	}
	if msg := Required(contactValue, "Contact value"); msg != "" {
		errs = append(errs, msg)
	}
	switch contactType {
	case "email":
		if msg := Email(contactValue); msg != "" {
			errs = append(errs, msg)
		}
	case "phone":
		if msg := Phone(contactValue); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// Stage validates a stage payload.
func Stage(leadID int64, stageName string) []string {
	var errs []string
	if leadID <= 0 {
		errs = append(errs, "Lead ID must be a valid number")
	}
	if msg := Required(stageName, "Stage name"); msg != "" {
		errs = append(errs, msg)
	}
	return errs
}

// Registration validates a new user payload.
func Registration(username, email, password string) []string {
	var errs []string
	if msg := Required(username, "Username"); msg != "" {
		errs = append(errs, msg)
	}
	if msg := Email(email); msg != "" {
		errs = append(errs, msg)
	}
	if password == "" {
		errs = append(errs, "Password is required")
	} else if len(password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}
	return errs
}
