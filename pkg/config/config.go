// Package config loads server configuration from an optional YAML file and
// the process environment.
//
// Environment variables always win over the file. Fields opt in through the
// `env` struct tag; nested structs are walked recursively. After loading, a
// struct that implements Validator is checked so callers fail at startup
// instead of on the first request.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by config structs with required fields or bounds.
type Validator interface {
	Validate() error
}

// MissingError reports a required setting that was not provided. Hint tells
// the operator where to get the value.
type MissingError struct {
	Env  string
	Hint string
}

func (e *MissingError) Error() string {
	msg := e.Env + " environment variable is required"
	if e.Hint != "" {
		msg += "\n" + e.Hint
	}
	return msg
}

// Require returns a *MissingError when value is blank.
func Require(value, env, hint string) error {
	if strings.TrimSpace(value) == "" {
		return &MissingError{Env: env, Hint: hint}
	}
	return nil
}

// IsMissing reports whether err came from Require.
func IsMissing(err error) bool {
	var m *MissingError
	return errors.As(err, &m)
}

// Load reads the YAML file at path into out, applies environment overrides
// and validates the result. An empty path skips the file.
func Load(path string, out any) error {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}

		// ${VAR} references inside the file resolve against the environment.
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(out); err != nil {
		return err
	}

	if v, ok := out.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// LoadOrDefault is Load, except a path that does not exist is treated as
// empty rather than an error.
func LoadOrDefault(path string, out any) error {
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}
	return Load(path, out)
}

var durationType = reflect.TypeOf(time.Duration(0))

// applyEnvOverrides sets struct fields from environment variables named by
// their `env` tag. Unparseable values are reported rather than ignored.
func applyEnvOverrides(v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := val.Field(i)

		if fieldVal.Kind() == reflect.Struct {
			if fieldVal.CanAddr() {
				if err := applyEnvOverrides(fieldVal.Addr().Interface()); err != nil {
					return err
				}
			}
			continue
		}

		envTag := field.Tag.Get("env")
		if envTag == "" || !fieldVal.CanSet() {
			continue
		}
		envVal, ok := os.LookupEnv(envTag)
		if !ok {
			continue
		}
		if err := setField(fieldVal, envVal); err != nil {
			return fmt.Errorf("%s: %w", envTag, err)
		}
	}
	return nil
}

func setField(fieldVal reflect.Value, envVal string) error {
	envVal = strings.TrimSpace(envVal)

	if fieldVal.Type() == durationType {
		d, err := time.ParseDuration(envVal)
		if err != nil {
			return fmt.Errorf("invalid duration %q", envVal)
		}
		fieldVal.SetInt(int64(d))
		return nil
	}

	switch fieldVal.Kind() {
	case reflect.String:
		fieldVal.SetString(envVal)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(envVal, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", envVal)
		}
		fieldVal.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(envVal, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", envVal)
		}
		fieldVal.SetFloat(f)
	case reflect.Bool:
		fieldVal.SetBool(strings.EqualFold(envVal, "true") || envVal == "1")
	case reflect.Slice:
		if fieldVal.Type().Elem().Kind() != reflect.String {
			return nil
		}
		var parts []string
		for _, p := range strings.Split(envVal, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		fieldVal.Set(reflect.ValueOf(parts))
	}
	return nil
}
