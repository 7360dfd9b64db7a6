package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseForm decodes a JSON or YAML form document. source is only used in error
// messages.
func ParseForm(data []byte, source string) (FormModel, error) {
	var form FormModel
	if len(strings.TrimSpace(string(data))) == 0 {
		return form, fmt.Errorf("model: form %s is empty", source)
	}

	if err := json.Unmarshal(data, &form); err != nil {
		form = FormModel{}
		if err := yaml.Unmarshal(data, &form); err != nil {
			return FormModel{}, fmt.Errorf("model: parse form %s: %w", source, err)
		}
	}

	if strings.TrimSpace(form.OperationID) == "" {
		return FormModel{}, fmt.Errorf("model: form %s: operationId is required", source)
	}
	for i, field := range form.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return FormModel{}, fmt.Errorf("model: form %s: field %d has no name", source, i)
		}
	}
	if form.Method == "" {
		form.Method = "POST"
	}
	return form, nil
}

// LoadForm reads and parses the form document stored at path in fsys.
func LoadForm(fsys fs.FS, path string) (FormModel, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return FormModel{}, fmt.Errorf("model: read form %s: %w", path, err)
	}
	return ParseForm(data, path)
}
