package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leapstack-labs/boardcheck/pkg/board"
	"github.com/leapstack-labs/boardcheck/pkg/drc"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and error code names.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration:\n  %s", strings.Join(msgs, "\n  "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for key := range c.DRC.ErrorLimits {
		if _, ok := drc.ParseErrorCode(key); !ok {
			return unknownCodeError("drc.error_limits", key)
		}
	}
	for key := range c.DRC.Severities {
		if _, ok := drc.ParseErrorCode(key); !ok {
			return unknownCodeError("drc.severities", key)
		}
	}
	return nil
}

func unknownCodeError(field, key string) error {
	codes := drc.AllCodes()
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = c.String()
	}
	sort.Strings(names)
	return fmt.Errorf("%s: unknown error code %q\nHint: valid codes are %s", field, key, strings.Join(names, ", "))
}

// EngineConfig converts the DRC section into an engine configuration.
// It assumes Validate has passed.
func (c *Config) EngineConfig(logger *slog.Logger) drc.Config {
	cfg := drc.Config{
		Options: board.OutlineOptions{
			MaxError:        c.DRC.MaxError,
			ChainingEpsilon: c.DRC.ChainingEpsilon,
		},
		DefaultErrorLimit: c.DRC.DefaultErrorLimit,
		MaxViolations:     c.DRC.MaxViolations,
		Parallelism:       c.DRC.Parallelism,
		DisabledProviders: append([]string(nil), c.DRC.DisabledProviders...),
		Language:          c.Language,
		Logger:            logger,
	}
	if len(c.DRC.ErrorLimits) > 0 {
		cfg.ErrorLimits = make(map[drc.ErrorCode]int, len(c.DRC.ErrorLimits))
		for key, limit := range c.DRC.ErrorLimits {
			if code, ok := drc.ParseErrorCode(key); ok {
				cfg.ErrorLimits[code] = limit
			}
		}
	}
	if len(c.DRC.Severities) > 0 {
		cfg.Severities = make(map[drc.ErrorCode]drc.Severity, len(c.DRC.Severities))
		for key, sev := range c.DRC.Severities {
			if code, ok := drc.ParseErrorCode(key); ok {
				cfg.Severities[code] = sev
			}
		}
	}
	return cfg
}
