package gemini

import (
	"errors"
	"reflect"
	"testing"
)

type analysisPayload struct {
	Name       string  `json:"name"`
	TrendScore float64 `json:"trendScore"`
	Niche      string  `json:"niche,omitempty"`
}

func TestDecodeStrictPayload(t *testing.T) {
	raw := `{"name":"Fitness","trendScore":8.5}`
	var got analysisPayload
	if err := Decode(raw, &got); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	want := analysisPayload{Name: "Fitness", TrendScore: 8.5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode = %+v, want %+v", got, want)
	}
}

func TestDecodeProseWrappedPayload(t *testing.T) {
	raw := "Here is the analysis you asked for:\n\n```json\n{\"name\":\"Fitness\",\"trendScore\":9}\n```\n\nLet me know if you need more."
	var got analysisPayload
	if err := Decode(raw, &got); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.Name != "Fitness" || got.TrendScore != 9 {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestDecodeArrayWrappedInProse(t *testing.T) {
	raw := `The concepts are: [{"name":"one","trendScore":1},{"name":"two","trendScore":2}] as requested.`
	var got []analysisPayload
	if err := Decode(raw, &got); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "one" || got[1].Name != "two" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestDecodeRepairsTrailingCommas(t *testing.T) {
	raw := `{"name":"Fitness","trendScore":7,}`
	var got analysisPayload
	if err := Decode(raw, &got); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.Name != "Fitness" || got.TrendScore != 7 {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestDecodeRepairsBareKeys(t *testing.T) {
	raw := `{name: "Fitness", trendScore: 6, niche: "gym"}`
	var got analysisPayload
	if err := Decode(raw, &got); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.Name != "Fitness" || got.TrendScore != 6 || got.Niche != "gym" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestDecodeRepairsNestedArrayWithTrailingCommas(t *testing.T) {
	raw := "Sure!\n[{\"name\":\"a\",\"trendScore\":1,},{\"name\":\"b\",\"trendScore\":2,},]"
	var got []analysisPayload
	if err := Decode(raw, &got); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestDecodeFailsWithoutRecoverableRegion(t *testing.T) {
	var got analysisPayload
	err := Decode("the model refused to answer", &got)
	if err == nil {
		t.Fatal("expected decode failure")
	}
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPayloadError, got %T: %v", err, err)
	}
	if malformed.Fragment == "" {
		t.Fatal("expected diagnostic fragment to be retained")
	}
}

func TestDecodeFailsOnIrreparableStructure(t *testing.T) {
	var got analysisPayload
	err := Decode(`{"name": "Fitness", "trendScore": }`, &got)
	if err == nil {
		t.Fatal("expected decode failure")
	}
	if !IsMalformedPayload(err) {
		t.Fatalf("expected malformed classification, got %v", err)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	var got analysisPayload
	if err := Decode("   \n\t ", &got); !IsMalformedPayload(err) {
		t.Fatalf("expected malformed classification, got %v", err)
	}
}

func TestLargestBracketedRegionPrefersWiderSpan(t *testing.T) {
	text := `ignore [1,2] but use {"name":"x","trendScore":3,"niche":"y"} trailing`
	got := largestBracketedRegion(text)
	// The greedy object span is wider than the array span.
	if got != `{"name":"x","trendScore":3,"niche":"y"}` {
		t.Fatalf("unexpected region: %q", got)
	}
}
