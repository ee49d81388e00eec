package binder

import (
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// DefaultMaxMemory bounds multipart parsing.
const DefaultMaxMemory = 1 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies into fields tagged `form:"name"`. Requests without a body content
// type return ErrBinderNotApplicable so a following binder can run.
//
//	type ContactRequest struct {
//		Name    string `form:"user_name"`
//		Email   string `form:"user_email"`
//		Message string `form:"message"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return ErrBinderNotApplicable
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindToStruct(v, "form", r.MultipartForm.Value, ErrInvalidForm)
		default:
			return ErrBinderNotApplicable
		}
	}
}

// Query binds URL query parameters into fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}

// bindToStruct sets every tagged field of the struct v points to. Fields
// without the tag or tagged "-" are left alone, as are fields with no value.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, _, _ := strings.Cut(sf.Tag.Get(tagName), ",")
		if name == "" || name == "-" {
			continue
		}

		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setField(field, vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, values []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), values)
	case reflect.Slice:
		slice := reflect.MakeSlice(field.Type(), len(values), len(values))
		for i, s := range values {
			if err := setScalar(slice.Index(i), s); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	default:
		return setScalar(field, values[0])
	}
}

func setScalar(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", s)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", s)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", s)
		}
		field.SetFloat(n)
	case reflect.Bool:
		switch strings.ToLower(s) {
		case "on", "yes":
			field.SetBool(true)
		case "off", "no", "":
			field.SetBool(false)
		default:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("invalid bool value %q", s)
			}
			field.SetBool(b)
		}
	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}
