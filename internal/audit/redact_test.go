package audit

import (
	"reflect"
	"testing"
)

func TestRedactMap(t *testing.T) {
	in := map[string]any{
		"email":    "user@example.com",
		"password": "hunter2",
	}
	got := Redact(in).(map[string]any)
	if got["password"] != Marker {
		t.Errorf("password = %v, want %q", got["password"], Marker)
	}
	if got["email"] != "user@example.com" {
		t.Errorf("email = %v, want unchanged", got["email"])
	}
}

func TestRedactNested(t *testing.T) {
	in := map[string]any{
		"user": map[string]any{
			"Password": "secret",
			"profile": map[string]any{
				"password": "deep",
				"name":     "Ada",
			},
		},
		"items": []any{
			map[string]any{"password": "in-array"},
			"plain",
		},
	}
	got := Redact(in).(map[string]any)

	user := got["user"].(map[string]any)
	if user["Password"] != Marker {
		t.Errorf("key match must be case-insensitive, got %v", user["Password"])
	}
	profile := user["profile"].(map[string]any)
	if profile["password"] != Marker || profile["name"] != "Ada" {
		t.Errorf("nested object mishandled: %v", profile)
	}
	items := got["items"].([]any)
	if items[0].(map[string]any)["password"] != Marker {
		t.Errorf("array element mishandled: %v", items[0])
	}
	if items[1] != "plain" {
		t.Errorf("plain array element changed: %v", items[1])
	}
}

func TestRedactJSONString(t *testing.T) {
	got := Redact(`{"password":"x","note":"keep"}`)
	want := map[string]any{"password": Marker, "note": "keep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRedactMalformedStringUnchanged(t *testing.T) {
	in := `{"password": broken`
	if got := Redact(in); got != in {
		t.Errorf("malformed JSON must pass through unchanged, got %v", got)
	}
	if got := Redact("GET /api/v1/buildings?name=asc"); got != "GET /api/v1/buildings?name=asc" {
		t.Errorf("plain string must pass through unchanged, got %v", got)
	}
}

func TestRedactIdempotent(t *testing.T) {
	in := map[string]any{
		"password": "x",
		"nested":   map[string]any{"password": "y", "keep": "z"},
	}
	once := Redact(in)
	twice := Redact(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed output: %v vs %v", once, twice)
	}
}

func TestRedactStruct(t *testing.T) {
	type login struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	got := Redact(login{Email: "a@b.c", Password: "pw"}).(map[string]any)
	if got["password"] != Marker {
		t.Errorf("struct password = %v, want %q", got["password"], Marker)
	}
	if got["email"] != "a@b.c" {
		t.Errorf("struct email = %v, want unchanged", got["email"])
	}
}

func TestRedactNil(t *testing.T) {
	if got := Redact(nil); got != nil {
		t.Errorf("Redact(nil) = %v, want nil", got)
	}
}
