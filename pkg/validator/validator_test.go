package validator

import "testing"

type sample struct {
	Start string `json:"start" validate:"required,clock"`
	Day   string `json:"day" validate:"omitempty,date"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestValidate_CustomTags(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&sample{Start: "09:30", Day: "2026-10-19"}); err != nil {
		t.Fatalf("expected valid sample, got %v", err)
	}

	err := v.Validate(&sample{Start: "9:30", Day: "19/10/2026", Kind: "c"})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	formatted := v.FormatValidationErrors(err)
	if formatted["Start"] != "Start must be a time in HH:MM format" {
		t.Errorf("unexpected Start message: %q", formatted["Start"])
	}
	if formatted["Day"] != "Day must be a date in YYYY-MM-DD format" {
		t.Errorf("unexpected Day message: %q", formatted["Day"])
	}
	if formatted["Kind"] != "Kind must be one of: a b" {
		t.Errorf("unexpected Kind message: %q", formatted["Kind"])
	}
}
