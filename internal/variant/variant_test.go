package variant

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Variant
	}{
		{
			name: "numbered lines",
			in:   "1. [科技感] 7天续航\n2. [情感化] 守护每一刻",
			want: []Variant{{Style: "科技感", Content: "7天续航"}, {Style: "情感化", Content: "守护每一刻"}},
		},
		{
			name: "no brackets",
			in:   "no brackets here",
			want: nil,
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "without ordinal",
			in:   "[幽默风] 手表比你还能熬",
			want: []Variant{{Style: "幽默风", Content: "手表比你还能熬"}},
		},
		{
			name: "preamble and blank lines skipped",
			in:   "好的，以下是文案：\n\n1. [促销风] 限时优惠！\n\n   \n2. [痛点解决型]  告别充电焦虑  ",
			want: []Variant{{Style: "促销风", Content: "限时优惠！"}, {Style: "痛点解决型", Content: "告别充电焦虑"}},
		},
		{
			name: "blank style or content skipped",
			in:   "1. [] content\n2. [style]\n3. [  ]   \n4. [ok] fine",
			want: []Variant{{Style: "ok", Content: "fine"}},
		},
		{
			name: "crlf and indentation",
			in:   "  1.[A] first\r\n  2.   [B]second\r\n",
			want: []Variant{{Style: "A", Content: "first"}, {Style: "B", Content: "second"}},
		},
		{
			name: "label ends at first closing bracket",
			in:   "1. [a] b] c",
			want: []Variant{{Style: "a", Content: "b] c"}},
		},
		{
			name: "unclosed bracket skipped",
			in:   "1. [科技感 7天续航",
			want: nil,
		},
		{
			name: "bullet marker is not an ordinal",
			in:   "- [A] dash",
			want: nil,
		},
		{
			name: "multi-digit ordinal",
			in:   "12. [X] twelve",
			want: []Variant{{Style: "X", Content: "twelve"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	in := "1. [科技感] 7天超长续航\n2. [情感化] 守护你的每一刻\nnoise\n3. [促销风] 限时优惠"
	first := Parse(in)
	second := Parse(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse is not deterministic: %v vs %v", first, second)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(first))
	}
}

func TestParse_GrowingPrefixesNeverPanic(t *testing.T) {
	full := "1. [科技感] 7天超长续航+血氧监测\n2. [情感化] 守护你的每一刻❤️\n3. [促销风] 限时优惠！"
	prev := 0
	runes := []rune(full)
	for i := 0; i <= len(runes); i++ {
		got := Parse(string(runes[:i]))
		if len(got) < prev {
			t.Fatalf("variant count shrank at prefix %d: %d < %d", i, len(got), prev)
		}
		prev = len(got)
	}
	if prev != 3 {
		t.Errorf("expected 3 variants for full text, got %d", prev)
	}
}

func TestVariantString(t *testing.T) {
	v := Variant{Style: "情感化", Content: "守护每一刻"}
	if got := v.String(); got != "[情感化] 守护每一刻" {
		t.Errorf("unexpected String(): %q", got)
	}
}
