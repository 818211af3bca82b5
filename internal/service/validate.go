package service

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/domain"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	notBlankTag    = "notblank"
	etherTag       = "ether"
	departmentTag  = "scholarship_department"
	customMessages = map[string]string{
		notBlankTag:   "{0} cannot be blank",
		etherTag:      "{0} must be a positive ETH amount",
		departmentTag: "{0} must be one of the listed departments",
	}
)

// ScholarshipDepartments are the departments a scholarship applicant may choose.
var ScholarshipDepartments = []string{
	"Computer Science",
	"Electrical Engineering",
	"Mechanical Engineering",
	"Civil Engineering",
	"Chemical Engineering",
}

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(etherTag, etherValidation)
	_ = validate.RegisterValidation(departmentTag, departmentValidation)

	for tag, text := range customMessages {
		_ = validate.RegisterTranslation(tag, translator,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field())
				return msg
			})
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func etherValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	wei, err := chain.ParseEther(str)
	return err == nil && wei.Sign() > 0
}

func departmentValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	return ok && slices.Contains(ScholarshipDepartments, str)
}

// checkForm validates form and returns a validation result listing every failing field.
func checkForm(form any) (chain.Result, bool) {
	err := validate.Struct(form)
	if err == nil {
		return chain.Result{}, true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return chain.Fail(chain.KindValidation, err.Error(), err), false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(translator)
	}
	r := chain.Fail(chain.KindValidation, verrs[0].Translate(translator), err)
	r.Fields = fields
	return r, false
}

// precheck runs the call-site preconditions in order: connected wallet, then form fields.
// It never touches the provider.
func precheck(w chain.Wallet, form any) (chain.Result, bool) {
	if !w.Session().Connected {
		return chain.Fail(chain.KindValidation, chain.MessageWalletNotConnected, domain.ErrWalletNotConnected), false
	}
	if form == nil {
		return chain.Result{}, true
	}
	return checkForm(form)
}
