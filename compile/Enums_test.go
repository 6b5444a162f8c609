package compile

import (
	"errors"
	"testing"
)

func TestDoubleQuotedStringsSet(t *testing.T) {
	tests := []struct {
		in   string
		want DoubleQuotedStrings
	}{
		{"none", DoubleQuotedStrings{}},
		{"DDL", DoubleQuotedStrings{InDDL: true}},
		{" dml ", DoubleQuotedStrings{InDML: true}},
		{"ddl|dml", DoubleQuotedStrings{InDDL: true, InDML: true}},
	}
	for _, test := range tests {
		var got DoubleQuotedStrings
		if err := got.Set(test.in); err != nil {
			t.Errorf("%q: %v", test.in, err)
		} else if got != test.want {
			t.Errorf("%q: expected %v, got %v", test.in, test.want, got)
		}
	}

	for _, in := range []string{"", " ", "DDL|", "|DML", "both"} {
		var got DoubleQuotedStrings
		if err := got.Set(in); err == nil {
			t.Errorf("%q: expected an error, got %v", in, got)
		}
	}
}

func TestSetRejectsEmptyDoubleQuotedStrings(t *testing.T) {
	var setting Setting
	if err := setting.Set("double_quoted_strings="); !errors.Is(err, ErrInvalidSettingValue) {
		t.Errorf("expected ErrInvalidSettingValue, got %v", err)
	}
}
