package shared

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == b {
		t.Error("expected unique IDs")
	}
	if len(strings.Split(a, "-")) != 5 {
		t.Errorf("expected UUID format, got %s", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	tc := []struct {
		name   string
		data   any
		pretty bool
		want   string
	}{
		{
			name: "compact",
			data: map[string]int{"covered": 7},
			want: `{"covered":7}`,
		},
		{
			name:   "pretty",
			data:   map[string]int{"covered": 7},
			pretty: true,
			want:   "{\n  \"covered\": 7\n}",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalJSON(tt.data, tt.pretty)
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("unmarshalable", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for unmarshalable value")
		}
	})
}
