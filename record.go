package boxinterop

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Exchange record field names.
const (
	FieldLabel               = "label"
	FieldSenderPrivateKey    = "sender_private_key_b64"
	FieldSenderPublicKey     = "sender_public_key_b64"
	FieldRecipientPrivateKey = "recipient_private_key_b64"
	FieldRecipientPublicKey  = "recipient_public_key_b64"
	FieldPlaintext           = "plaintext_utf8"
	FieldEnvelope            = "envelope_b64"
)

// recordFields lists the fields in the order writers emit them.
var recordFields = []string{
	FieldLabel,
	FieldSenderPrivateKey,
	FieldSenderPublicKey,
	FieldRecipientPrivateKey,
	FieldRecipientPublicKey,
	FieldPlaintext,
	FieldEnvelope,
}

// maxRecordLine bounds a single record line; envelopes are the long ones.
const maxRecordLine = 16 << 20

// WriteRecords writes vectors as exchange records separated by blank lines.
func WriteRecords(w io.Writer, vectors []*Vector) error {
	bw := bufio.NewWriter(w)
	for i, v := range vectors {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(FormatRecord(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatRecord renders one vector as an exchange record. Values that would
// not survive the line format (surrounding whitespace, control characters,
// a leading double quote) are written as JSON string literals.
func FormatRecord(v *Vector) string {
	var sb strings.Builder
	for _, field := range recordFields {
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(formatValue(fieldValue(v, field)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func fieldValue(v *Vector, field string) string {
	switch field {
	case FieldLabel:
		return v.Label
	case FieldSenderPrivateKey:
		return v.SenderPrivateKey
	case FieldSenderPublicKey:
		return v.SenderPublicKey
	case FieldRecipientPrivateKey:
		return v.RecipientPrivateKey
	case FieldRecipientPublicKey:
		return v.RecipientPublicKey
	case FieldPlaintext:
		return v.Plaintext
	case FieldEnvelope:
		return v.Envelope
	}
	return ""
}

func setFieldValue(v *Vector, field, value string) {
	switch field {
	case FieldLabel:
		v.Label = value
	case FieldSenderPrivateKey:
		v.SenderPrivateKey = value
	case FieldSenderPublicKey:
		v.SenderPublicKey = value
	case FieldRecipientPrivateKey:
		v.RecipientPrivateKey = value
	case FieldRecipientPublicKey:
		v.RecipientPublicKey = value
	case FieldPlaintext:
		v.Plaintext = value
	case FieldEnvelope:
		v.Envelope = value
	}
}

func isRecordField(field string) bool {
	for _, f := range recordFields {
		if f == field {
			return true
		}
	}
	return false
}

func needsQuoting(s string) bool {
	if s == "" {
		return false
	}
	if strings.TrimSpace(s) != s || strings.HasPrefix(s, `"`) {
		return true
	}
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

func formatValue(s string) string {
	if !needsQuoting(s) {
		return s
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// ParseRecords reads exchange records. Records are separated by blank
// lines; lines starting with '#' are comments. Every field must appear
// exactly once per record. Values are not validated here; the verifier
// reports bad values per vector.
func ParseRecords(r io.Reader) ([]*Vector, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	var (
		vectors []*Vector
		current *Vector
		seen    map[string]bool
		start   int
		lineNo  int
	)

	finish := func() error {
		if current == nil {
			return nil
		}
		for _, field := range recordFields {
			if !seen[field] {
				return &RecordError{Line: start, Message: fmt.Sprintf("record is missing %s", field)}
			}
		}
		vectors = append(vectors, current)
		current = nil
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			if err := finish(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &RecordError{Line: lineNo, Message: "expected \"key: value\""}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if !isRecordField(key) {
			return nil, &RecordError{Line: lineNo, Message: fmt.Sprintf("unknown field %q", key)}
		}

		if current == nil {
			current = &Vector{}
			seen = make(map[string]bool, len(recordFields))
			start = lineNo
		}
		if seen[key] {
			return nil, &RecordError{Line: lineNo, Message: fmt.Sprintf("duplicate field %q", key)}
		}

		if strings.HasPrefix(value, `"`) {
			var unquoted string
			if err := json.Unmarshal([]byte(value), &unquoted); err != nil {
				return nil, &RecordError{Line: lineNo, Message: fmt.Sprintf("invalid quoted value for %s: %v", key, err)}
			}
			value = unquoted
		}

		seen[key] = true
		setFieldValue(current, key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read exchange records: %w", err)
	}
	if err := finish(); err != nil {
		return nil, err
	}

	return vectors, nil
}
