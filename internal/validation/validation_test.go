package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"  validate:"required,nohtml"`
	Email string  `json:"email" validate:"required,email"`
	Phone string  `json:"phone" validate:"omitempty,phone"`
	Zip   string  `json:"zipCode" validate:"omitempty,zipcode"`
	Kind  string  `json:"kind"  validate:"omitempty,oneof=a b"`
	Bill  float64 `json:"monthlyBill" validate:"omitempty,gt=0"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	errs, err := v.Struct(sample{Name: "Ada", Email: "ada@example.com", Phone: "(555) 123-4567", Zip: "12345-6789", Kind: "a", Bill: 10})
	require.NoError(t, err)
	require.Nil(t, errs)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	errs, err := v.Struct(sample{Name: "<b>x</b>", Email: "nope", Phone: "123", Zip: "1234", Kind: "c"})
	require.NoError(t, err)

	got := map[string]string{}
	for _, e := range errs {
		got[e.Field] = e.Message
	}
	require.Equal(t, "name must not contain HTML", got["name"])
	require.Equal(t, "Please enter a valid email address", got["email"])
	require.Equal(t, "Phone number must contain 10 to 15 digits", got["phone"])
	require.Equal(t, "Please enter a valid 5-digit ZIP code", got["zipCode"])
	require.Equal(t, "kind must be one of: a, b", got["kind"])
}

func TestStruct_Required(t *testing.T) {
	v := New()
	errs, err := v.Struct(sample{})
	require.NoError(t, err)

	want := []FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "email is required"},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("Struct() mismatch (-want +got):\n%s", diff)
	}
}

func TestStruct_NonStruct(t *testing.T) {
	_, err := New().Struct("not a struct")
	require.Error(t, err)
}

func TestValidPhone(t *testing.T) {
	cases := map[string]bool{
		"5551234567":         true,
		"+1 (555) 123-4567":  true,
		"555.123.4567":       true,
		"555-1234":           false,
		"1234567890123456":   false,
		"555-123-4567 ext 2": false,
		"":                   false,
	}
	for in, want := range cases {
		require.Equal(t, want, ValidPhone(in), in)
	}
}

func TestSanitize(t *testing.T) {
	require.Equal(t, "hello world", Text("  hello \t  world  "))
	require.Equal(t, "line one\nline two", Text("line one\r\nline two\x00"))
	require.Equal(t, "a b", Line("a\nb"))
	require.Equal(t, "ada@example.com", Email("  Ada@Example.COM "))
}

func TestValidZip(t *testing.T) {
	require.True(t, ValidZip("02139"))
	require.True(t, ValidZip("02139-1234"))
	require.False(t, ValidZip("0213"))
	require.False(t, ValidZip("02139 1234"))
}
