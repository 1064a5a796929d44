// Package forms validates the shape of the storefront's contact, account and
// newsletter forms. Nothing submitted is stored or sent anywhere.
package forms

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ErrValidation = errors.New("validation")

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	minNameLen     = 2
	minMessageLen  = 10
	minPasswordLen = 6
)

type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func ok(msg string) Result   { return Result{OK: true, Message: msg} }
func fail(msg string) Result { return Result{OK: false, Message: msg} }

// Err returns ErrValidation for a failed result.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return ErrValidation
}

func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

func longEnough(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

type Contact struct {
	Name    string `form:"name"    json:"name"`
	Email   string `form:"email"   json:"email"`
	Message string `form:"message" json:"message"`
}

func (f Contact) Validate() Result {
	if !longEnough(f.Name, minNameLen) || !ValidEmail(f.Email) || !longEnough(f.Message, minMessageLen) {
		return fail("Please enter a valid name, email, and message (minimum 10 characters).")
	}
	return ok("Message sent successfully. Our team will contact you soon.")
}

type Login struct {
	Email    string `form:"email"    json:"email"`
	Password string `form:"password" json:"password"`
}

func (f Login) Validate() Result {
	if !ValidEmail(f.Email) || utf8.RuneCountInString(f.Password) < minPasswordLen {
		return fail("Use a valid email and password with at least 6 characters.")
	}
	return ok("Login UI validation successful (frontend demo).")
}

type Signup struct {
	Name     string `form:"name"     json:"name"`
	Email    string `form:"email"    json:"email"`
	Password string `form:"password" json:"password"`
	Confirm  string `form:"confirm"  json:"confirm"`
}

func (f Signup) Validate() Result {
	if !longEnough(f.Name, minNameLen) ||
		!ValidEmail(f.Email) ||
		utf8.RuneCountInString(f.Password) < minPasswordLen ||
		f.Password != f.Confirm {
		return fail("Check name/email and ensure passwords match with at least 6 characters.")
	}
	return ok("Signup UI validation successful (frontend demo).")
}

type Newsletter struct {
	Email string `form:"email" json:"email"`
}

func (f Newsletter) Validate() Result {
	if !ValidEmail(f.Email) {
		return fail("Please enter a valid email address.")
	}
	return ok("Subscribed successfully to Sakhi updates.")
}
