package model

import (
	"strconv"
	"strings"
)

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// Metadata keys understood by the widget layer.
const (
	MetadataVocabulary = "vocabulary"
	MetadataWidget     = "widget"
	MetadataOptgroup   = "optgroup"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length limits encode their threshold in Params["value"] while pattern rules
// preserve the original expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field models an individual input inside a form. Struct fields are annotated
// so renderers and fixtures can serialise them directly.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool              `json:"required" yaml:"required"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items       *Field            `json:"items,omitempty" yaml:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId" yaml:"operationId"`
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Method      string            `json:"method" yaml:"method"`
	Summary     string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// MaxLength returns the threshold of the maxLength validation rule. The second
// return value is false when the rule is absent, unparsable or not positive.
func (f Field) MaxLength() (int, bool) {
	for _, rule := range f.Validations {
		if rule.Kind != ValidationRuleMaxLength {
			continue
		}
		raw := strings.TrimSpace(rule.Params["value"])
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			return 0, false
		}
		return value, true
	}
	return 0, false
}

// IsCollection reports whether the field holds a sequence of element values.
func (f Field) IsCollection() bool {
	return f.Type == FieldTypeArray && f.Items != nil
}

// Hint returns a trimmed UI hint or metadata value, UI hints first.
func (f Field) Hint(key string) string {
	if f.UIHints != nil {
		if value := strings.TrimSpace(f.UIHints[key]); value != "" {
			return value
		}
	}
	if f.Metadata != nil {
		return strings.TrimSpace(f.Metadata[key])
	}
	return ""
}

// MaxLengthRule builds a maxLength validation rule.
func MaxLengthRule(value int) ValidationRule {
	return ValidationRule{
		Kind:   ValidationRuleMaxLength,
		Params: map[string]string{"value": strconv.Itoa(value)},
	}
}
