// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package presentation

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/l3montree-dev/supplyguard/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

type Option struct {
	Value string
	Label string
}

// Field of a form. Rule holds validator tags, e.g. "required,min=2".
type Field struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Options     []Option
	Rule        string
	// Message replaces the generated validation message
	Message string
}

type Form struct {
	Fields      []Field
	SubmitLabel string
}

// Validate returns one message per invalid field. An empty map means the values are valid.
func (f Form) Validate(values map[string]string) map[string]string {
	errs := map[string]string{}
	for _, field := range f.Fields {
		if msg := field.Validate(values[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}

// Validate returns the message of the first failing rule or an empty string.
func (f Field) Validate(raw string) string {
	value := strings.TrimSpace(raw)

	if value == "" {
		if f.required() {
			return f.message("This field is required")
		}
		return ""
	}

	if f.Type == FieldSelect && len(f.Options) > 0 {
		if !slices.ContainsFunc(f.Options, func(o Option) bool { return o.Value == value }) {
			return f.message("Must be one of: " + strings.Join(optionLabels(f.Options), ", "))
		}
	}

	if f.Rule == "" {
		return ""
	}

	var err error
	numeric := f.Type == FieldNumber
	if numeric {
		n, parseErr := strconv.ParseFloat(value, 64)
		if parseErr != nil {
			return f.message("Must be a number")
		}
		err = shared.V.Var(n, f.Rule)
	} else {
		err = shared.V.Var(value, f.Rule)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return f.message(shared.RuleMessage(fe.Tag(), fe.Param(), numeric))
	}
	if err != nil {
		return f.message("Invalid value")
	}
	return ""
}

func (f Field) required() bool {
	return slices.Contains(strings.Split(f.Rule, ","), "required")
}

func (f Field) message(generated string) string {
	if f.Message != "" {
		return f.Message
	}
	return generated
}

func optionLabels(options []Option) []string {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	return labels
}

var titleCaser = cases.Title(language.English)

// Humanize turns an enum value into a label: "data_flow" becomes "Data Flow".
func Humanize(value string) string {
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

// OptionsOf builds select options with humanized labels.
func OptionsOf(values []string) []Option {
	options := make([]Option, len(values))
	for i, v := range values {
		options[i] = Option{Value: v, Label: Humanize(v)}
	}
	return options
}

// Decode converts submitted form values into a dto. Only the named fields are
// decoded, so a patch dto gets exactly the fields of the form.
func Decode[T any](fields []Field, values map[string]string) (T, error) {
	var out T
	input := make(map[string]any, len(fields))
	for _, f := range fields {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		input[f.Name] = strings.TrimSpace(v)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &out,
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(input); err != nil {
		return out, shared.NewValidationError("", err.Error())
	}
	return out, nil
}
