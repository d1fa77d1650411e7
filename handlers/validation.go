package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"theray/services/scheduling"
	"theray/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// registerValidators adds the custom binding tags used by request structs.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			mustRegisterValidation(v, "hhmm", validateClock)
			v.RegisterTagNameFunc(wireName)
		}
	})
}

// mustRegisterValidation stops startup if a binding tag cannot be registered;
// every request struct using the tag would otherwise fail to bind.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		utils.GetLogger().Error("Failed to register binding validator", zap.String("tag", tag), zap.Error(err))
		panic(fmt.Sprintf("handlers: cannot register %q validator: %v", tag, err))
	}
}

// wireName reports fields by their json or form name.
func wireName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// validateClock accepts "H:MM" or "HH:MM" wall-clock times.
func validateClock(fl validator.FieldLevel) bool {
	_, err := scheduling.ParseClock(fl.Field().String())
	return err == nil
}

var tagMessages = map[string]string{
	"required": "is required",
	"hhmm":     "must be in HH:MM format",
	"datetime": "must be a date in YYYY-MM-DD format",
	"oneof":    "must be one of: %s",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"url":      "must be a valid URL",
}

// describeBindingError turns validator output into a short readable message.
func describeBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, fe.Param())
		}
		parts = append(parts, fe.Field()+" "+msg)
	}
	return strings.Join(parts, "; ")
}
