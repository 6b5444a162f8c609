package base

import (
	"bytes"
	"strings"
	"testing"
)

type testJsonRecord struct {
	Name  string
	Value int `json:",omitempty"`
}

func TestJsonSerializeRoundTrip(t *testing.T) {
	record := testJsonRecord{Name: "<sqlite>", Value: 3}

	buf := bytes.Buffer{}
	if err := JsonSerialize(&record, &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"Name":"<sqlite>","Value":3}` {
		t.Errorf("unexpected json: %s", got)
	}

	var decoded testJsonRecord
	if err := JsonDeserialize(&decoded, &buf); err != nil {
		t.Fatal(err)
	}
	if decoded != record {
		t.Errorf("round trip failed: %v != %v", decoded, record)
	}
}

func TestJsonSerializePrettyPrint(t *testing.T) {
	buf := bytes.Buffer{}
	if err := JsonSerialize(testJsonRecord{Name: "a"}, &buf, OptionJsonPrettyPrint(true)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "\n  \"Name\": \"a\"") {
		t.Errorf("expected indented json, got %q", got)
	}
}

func TestJsonDeserializeDisallowUnknownFields(t *testing.T) {
	var decoded testJsonRecord
	if err := JsonDeserialize(&decoded, strings.NewReader(`{"Name":"a","Other":1}`)); err == nil {
		t.Errorf("expected unknown field error")
	}
}
