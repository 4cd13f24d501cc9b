package jsonfield

import (
	"reflect"
	"testing"
)

func TestStringSlice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"valid", `["中文","English"]`, []string{"中文", "English"}},
		{"empty column", ``, []string{}},
		{"null", `null`, []string{}},
		{"malformed", `["unterminated`, []string{}},
		{"wrong shape", `{"a":"b"}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringSlice([]byte(tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StringSlice(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStringMap(t *testing.T) {
	got := StringMap([]byte(`{"twitter":"https://twitter.com/giantcutie666"}`))
	if got["twitter"] != "https://twitter.com/giantcutie666" {
		t.Errorf("StringMap() = %#v", got)
	}

	for _, raw := range []string{"", "null", "not json", `[1,2]`} {
		if got := StringMap([]byte(raw)); got == nil || len(got) != 0 {
			t.Errorf("StringMap(%q) = %#v, want empty map", raw, got)
		}
	}
}

func TestWritersProduceValidJSON(t *testing.T) {
	if got := string(FromSlice(nil)); got != "[]" {
		t.Errorf("FromSlice(nil) = %s", got)
	}
	if got := string(FromMap(nil)); got != "{}" {
		t.Errorf("FromMap(nil) = %s", got)
	}
	if got := string(FromSlice([]string{"DeFi"})); got != `["DeFi"]` {
		t.Errorf("FromSlice() = %s", got)
	}
}
