package configparser

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// ParseEnv fills a config struct from environment variables using the
// `env` and `default` struct tags. Nested structs are walked recursively.
func ParseEnv(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config must be a pointer to a struct, got %T", cfg)
	}
	return parseStruct(v.Elem())
}

// LoadAndParseYaml loads a YAML file into the environment and then parses
// the environment into the given config struct.
func LoadAndParseYaml(filepath string, cfg any) error {
	if err := LoadYamlFile(filepath); err != nil {
		return err
	}
	return ParseEnv(cfg)
}

func parseStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Duration(0)) && t.Field(i).Tag.Get("env") == "" {
			if err := parseStruct(field); err != nil {
				return err
			}
			continue
		}

		envName := t.Field(i).Tag.Get("env")
		if envName == "" {
			continue
		}

		value := os.Getenv(envName)
		if value == "" {
			value = t.Field(i).Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(field, value); err != nil {
			return fmt.Errorf("field %s (%s): %w", t.Field(i).Name, envName, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	// time.Duration before the generic int case
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported config field kind %s", field.Kind())
	}
	return nil
}
