package llm

import "testing"

type testPayload struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

func TestExtractObjectClean(t *testing.T) {
	var got testPayload
	if err := ExtractObject(`{"sentiment":"negative","confidence":0.8}`, &got); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Sentiment != "negative" || got.Confidence != 0.8 {
		t.Fatalf("unexpected payload: %#v", got)
	}
}

func TestExtractObjectWithWrapper(t *testing.T) {
	raw := "Sure, here is the analysis you asked for:\n" +
		`{"sentiment":"positive","confidence":0.9}` + "\nLet me know if you need more."
	var got testPayload
	if err := ExtractObject(raw, &got); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Sentiment != "positive" {
		t.Fatalf("unexpected sentiment: %s", got.Sentiment)
	}
}

func TestExtractObjectFenced(t *testing.T) {
	raw := "```json\n{\"sentiment\":\"neutral\",\"confidence\":0.5}\n```"
	var got testPayload
	if err := ExtractObject(raw, &got); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Sentiment != "neutral" {
		t.Fatalf("unexpected sentiment: %s", got.Sentiment)
	}
}

func TestExtractObjectNoPayload(t *testing.T) {
	var got testPayload
	if err := ExtractObject("I could not analyze that content.", &got); err == nil {
		t.Fatal("expected error for response without payload")
	}
}

func TestExtractObjectMalformed(t *testing.T) {
	var got testPayload
	if err := ExtractObject(`{"sentiment": negative}`, &got); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestExtractArrayWithWrapper(t *testing.T) {
	raw := "Here are the items:\n```\n[{\"sentiment\":\"neutral\",\"confidence\":1}]\n```"
	var got []testPayload
	if err := ExtractArray(raw, &got); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 || got[0].Sentiment != "neutral" {
		t.Fatalf("unexpected payload: %#v", got)
	}
}
