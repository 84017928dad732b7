package validate

import (
	"net/url"
	"testing"
)

var bornSchema = Schema{Fields: []Field{
	{Name: "motherName", Label: "Mother name", Required: true},
	{Name: "motherPhone", Label: "Mother phone", Required: true},
	{Name: "fatherName", Label: "Father name"},
}}

func TestValidate_MissingRequired(t *testing.T) {
	form := url.Values{}
	form.Set("motherName", "Chantal")
	form.Set("motherPhone", "   ") // whitespace counts as missing

	errs := bornSchema.Validate(form)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0] != "Mother phone is required" {
		t.Errorf("unexpected message %q", errs[0])
	}
	if bornSchema.Ok(form) {
		t.Error("Ok should be false with missing fields")
	}
}

func TestValidate_OptionalFieldsIgnored(t *testing.T) {
	form := url.Values{}
	form.Set("motherName", "Chantal")
	form.Set("motherPhone", "0788123456")
	// fatherName absent on purpose

	if errs := bornSchema.Validate(form); len(errs) != 0 {
		t.Fatalf("optional field produced errors: %v", errs)
	}
	if !bornSchema.Ok(form) {
		t.Error("Ok should be true")
	}
}
