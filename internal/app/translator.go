// internal/app/translator.go
package app

import (
	"fmt"

	"homework_status_bot/internal/domain/homework"
)

// Translator turns a homework item into the message sent to the chat.
type Translator struct {
	verdicts homework.VerdictTable
}

func NewTranslator(verdicts homework.VerdictTable) *Translator {
	return &Translator{verdicts: verdicts}
}

// Translate has no side effects: the same item always yields the same message.
func (t *Translator) Translate(item any) (string, error) {
	fields, ok := item.(map[string]any)
	if !ok {
		return "", &homework.SchemaError{Reason: fmt.Sprintf("homework is not an object (got %T)", item)}
	}

	name, err := stringField(fields, homework.KeyHomeworkName)
	if err != nil {
		return "", err
	}
	status, err := stringField(fields, homework.KeyStatus)
	if err != nil {
		return "", err
	}

	verdict, ok := t.verdicts.Verdict(homework.Status(status))
	if !ok {
		return "", &homework.UnknownStatusError{Status: status}
	}
	return fmt.Sprintf("Changed status of review \"%s\". %s", name, verdict), nil
}

func stringField(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return "", &homework.SchemaError{Key: key, Reason: "key is missing from homework"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &homework.SchemaError{Key: key, Reason: fmt.Sprintf("value is not a string (got %T)", v)}
	}
	return s, nil
}
