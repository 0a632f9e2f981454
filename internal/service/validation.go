package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// serverFields are the accepted request fields for server registration.
var serverFields = map[string]bool{
	"federated_server_name": true,
	"mode":                  true,
	"host":                  true,
	"port":                  true,
	"dbname":                true,
	"username":              true,
	"password":              true,
}

// serverUpdateFields are the mutable fields of a server. The name is
// immutable and comes from the URL, never from an update body.
var serverUpdateFields = map[string]bool{
	"mode":     true,
	"host":     true,
	"port":     true,
	"dbname":   true,
	"username": true,
	"password": true,
}

// tableFields are the accepted request fields for table registration and
// update.
var tableFields = map[string]bool{
	"federated_server_name":     true,
	"remote_schema_name":        true,
	"remote_table_name":         true,
	"local_table_name_override": true,
	"id_column_name":            true,
	"geom_column_name":          true,
	"webmercator_column_name":   true,
}

// DecodeServerAttributes parses a server request body, rejecting any field
// outside the allowed set before anything else happens. When forUpdate is
// true the name field is also rejected, since the name is immutable.
func DecodeServerAttributes(data []byte, forUpdate bool) (*ServerAttributes, error) {
	allowed := serverFields
	if forUpdate {
		allowed = serverUpdateFields
	}
	if err := checkAllowedFields(data, allowed); err != nil {
		return nil, err
	}

	var attrs ServerAttributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, NewValidationError("malformed request body: %v", err)
	}
	return &attrs, nil
}

// DecodeTableAttributes parses a table request body, rejecting any field
// outside the allowed set.
func DecodeTableAttributes(data []byte) (*TableAttributes, error) {
	if err := checkAllowedFields(data, tableFields); err != nil {
		return nil, err
	}

	var attrs TableAttributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, NewValidationError("malformed request body: %v", err)
	}
	return &attrs, nil
}

func checkAllowedFields(data []byte, allowed map[string]bool) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewValidationError("malformed request body: %v", err)
	}
	for field := range raw {
		if !allowed[field] {
			return NewValidationError("unknown field %q", field)
		}
	}
	return nil
}

// ValidateServerRegistration enforces the required-field and format
// contracts of a server registration, before any store call.
func ValidateServerRegistration(attrs *ServerAttributes) error {
	if attrs == nil {
		return NewValidationError("attributes are required")
	}

	if attrs.Name == "" {
		return NewValidationError("federated_server_name is required")
	}
	if attrs.Name != strings.ToLower(strings.TrimSpace(attrs.Name)) {
		return NewValidationError(
			"federated_server_name %q must be lowercase without surrounding whitespace", attrs.Name,
		)
	}

	return validateServerFields(attrs)
}

// ValidateServerUpdate enforces the required-field contracts of a server
// update. All mutable fields are replaced, so the same set is required as on
// registration, minus the immutable name.
func ValidateServerUpdate(attrs *ServerAttributes) error {
	if attrs == nil {
		return NewValidationError("attributes are required")
	}
	return validateServerFields(attrs)
}

func validateServerFields(attrs *ServerAttributes) error {
	for field, value := range map[string]string{
		"mode":     attrs.Mode,
		"host":     attrs.Host,
		"dbname":   attrs.DBName,
		"username": attrs.Username,
		"password": attrs.Password,
	} {
		if value == "" {
			return NewValidationError("%s is required", field)
		}
	}

	// Only read-only federation is currently supported. The comparison is
	// case-insensitive; the stored mode is always lowercase.
	if !strings.EqualFold(attrs.Mode, ModeReadOnly) {
		return NewValidationError("mode must be %q, got %q", ModeReadOnly, attrs.Mode)
	}

	return nil
}

// ValidateTableRegistration enforces the required fields of a table
// registration.
func ValidateTableRegistration(attrs *TableAttributes) error {
	if attrs == nil {
		return NewValidationError("attributes are required")
	}
	if attrs.RemoteTableName == "" {
		return NewValidationError("remote_table_name is required")
	}
	return requireIDColumn(attrs)
}

// ValidateTableUpdate enforces the required fields of a table update. Only
// the id column is required; identity fields come from the URL.
func ValidateTableUpdate(attrs *TableAttributes) error {
	if attrs == nil {
		return NewValidationError("attributes are required")
	}
	return requireIDColumn(attrs)
}

func requireIDColumn(attrs *TableAttributes) error {
	if attrs.IDColumnName == "" {
		return NewValidationError("id_column_name is required")
	}
	return nil
}

// NormalizedMode returns the canonical lowercase form of a mode value.
func NormalizedMode(mode string) string {
	return strings.ToLower(mode)
}

// String renders the identity for messages and location references.
func (id TableIdentity) String() string {
	return fmt.Sprintf("%s.%s.%s", id.Server, id.Schema, id.Table)
}
