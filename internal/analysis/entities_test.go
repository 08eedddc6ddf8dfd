package analysis

import "testing"

func TestExtractEntitiesPricingQuestion(t *testing.T) {
	entities := ExtractEntities("How much does a website cost?")

	if entities["product"] != "website" {
		t.Fatalf("unexpected product: %v", entities["product"])
	}
	if entities["budget"] != nil {
		t.Fatalf("expected nil budget, got %v", entities["budget"])
	}
	if entities["timeline"] != nil {
		t.Fatalf("expected nil timeline, got %v", entities["timeline"])
	}
}

func TestExtractBudgetDollarSign(t *testing.T) {
	entities := ExtractEntities("We have around $5,000 for this")
	if entities["budget"] != 5000.0 {
		t.Fatalf("unexpected budget: %v", entities["budget"])
	}
}

func TestExtractBudgetWordForm(t *testing.T) {
	entities := ExtractEntities("budget is roughly 2000 dollars")
	if entities["budget"] != 2000.0 {
		t.Fatalf("unexpected budget: %v", entities["budget"])
	}
}

func TestExtractBudgetThousandsSuffix(t *testing.T) {
	entities := ExtractEntities("we can spend $5k on it")
	if entities["budget"] != 5000.0 {
		t.Fatalf("unexpected budget: %v", entities["budget"])
	}
}

func TestExtractTimelineDuration(t *testing.T) {
	entities := ExtractEntities("we need it live in 2 weeks")
	if entities["timeline"] != "2 weeks" {
		t.Fatalf("unexpected timeline: %v", entities["timeline"])
	}
}

func TestExtractTimelineDeadline(t *testing.T) {
	entities := ExtractEntities("Must ship by the end of the month, it's urgent")
	if entities["timeline"] != "by the end of the month" {
		t.Fatalf("unexpected timeline: %v", entities["timeline"])
	}
}

func TestExtractProductPrefersLongerPhrase(t *testing.T) {
	entities := ExtractEntities("I want a mobile app for my store")
	if entities["product"] != "mobile app" {
		t.Fatalf("unexpected product: %v", entities["product"])
	}
}

func TestExtractEntitiesNoMatches(t *testing.T) {
	entities := ExtractEntities("hello there")
	for key, value := range entities {
		if value != nil {
			t.Fatalf("expected nil %s, got %v", key, value)
		}
	}
}

func TestExtractEntitiesDeterministic(t *testing.T) {
	text := "Need an e-commerce website, $12,500 budget, launch next month"
	first := ExtractEntities(text)
	second := ExtractEntities(text)
	for _, key := range []string{"product", "budget", "timeline"} {
		if first[key] != second[key] {
			t.Fatalf("nondeterministic %s: %v vs %v", key, first[key], second[key])
		}
	}
}
