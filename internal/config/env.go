package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LoadEnv loads environment variables into the config struct.
// Every settings section is scanned for `env` struct tags.
func LoadEnv(config *AppConfig) error {
	log.Debug().Msg("Loading environment variables")

	sections := []interface{}{
		&config.App,
		&config.Database,
		&config.Server,
		&config.JWT,
		&config.Logging,
		&config.CORS,
		&config.PasswordHash,
		&config.Storage,
		&config.NLP,
		&config.RateLimit,
	}

	for _, section := range sections {
		if err := processStructEnv(section); err != nil {
			return err
		}
	}

	log.Debug().
		Str("APP_ENV", os.Getenv("APP_ENV")).
		Str("DB_DRIVER", os.Getenv("DB_DRIVER")).
		Str("DB_HOST", os.Getenv("DB_HOST")).
		Msg("Environment variables loaded")

	return nil
}

// processStructEnv processes environment variables for a struct
func processStructEnv(s interface{}) error {
	val := reflect.ValueOf(s).Elem()
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		envValue, exists := os.LookupEnv(envName)
		if !exists {
			continue
		}

		target := fieldVal
		if fieldVal.Kind() == reflect.Ptr {
			target = reflect.New(fieldVal.Type().Elem()).Elem()
		}

		if err := setValue(target, field.Type, envName, envValue); err != nil {
			return err
		}

		if fieldVal.Kind() == reflect.Ptr {
			ptr := reflect.New(target.Type())
			ptr.Elem().Set(target)
			fieldVal.Set(ptr)
		}
	}

	return nil
}

// setValue parses envValue into target according to its kind.
func setValue(target reflect.Value, fieldType reflect.Type, envName, envValue string) error {
	switch target.Kind() {
	case reflect.String:
		target.SetString(envValue)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fieldType == durationType || target.Type() == durationType {
			duration, err := time.ParseDuration(envValue)
			if err != nil {
				return fmt.Errorf("invalid duration for %s: %w", envName, err)
			}
			target.SetInt(int64(duration))
			return nil
		}
		intValue, err := strconv.ParseInt(envValue, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %w", envName, err)
		}
		target.SetInt(intValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(envValue, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer for %s: %w", envName, err)
		}
		target.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %w", envName, err)
		}
		target.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return fmt.Errorf("invalid float for %s: %w", envName, err)
		}
		target.SetFloat(floatValue)

	case reflect.Slice:
		// only string slices
		if target.Type().Elem().Kind() == reflect.String {
			values := strings.Split(envValue, ",")
			for i, v := range values {
				values[i] = strings.TrimSpace(v)
			}
			target.Set(reflect.ValueOf(values))
		}
	}

	return nil
}
