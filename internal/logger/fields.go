package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCriterion is the structured log field key for a criterion id.
	FieldCriterion = "criterion"
	// FieldKind is the structured log field key for a criterion kind.
	FieldKind = "kind"
	// FieldDocument is the structured log field key for the scored file.
	FieldDocument = "document"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CriterionFields describes a criterion. Empty values are skipped.
func CriterionFields(id, kind string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCriterion, Value: id},
		StringField{Key: FieldKind, Value: kind},
	)
}

// WithCriterion attaches the criterion fields to the provided logger.
func WithCriterion(logger *zap.Logger, id, kind string) *zap.Logger {
	return WithFields(logger, CriterionFields(id, kind)...)
}
