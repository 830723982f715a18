package gemini

import "testing"

func TestExtractGroundingSourcesFiltersNonWebChunks(t *testing.T) {
	resp := &generateContentResponse{
		Candidates: []candidate{{
			GroundingMetadata: &groundingMetadata{
				GroundingChunks: []groundingChunk{
					{Web: &webSource{URI: "https://example.com/a", Title: "Source A"}},
					{RetrievedContext: &retrievedContext{URI: "corpus://doc/1", Title: "Internal"}},
					{Web: &webSource{URI: "https://example.com/b"}},
				},
			},
		}},
	}

	sources := extractGroundingSources(resp)
	if len(sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(sources))
	}
	if sources[0].Title != "Source A" || sources[0].URI != "https://example.com/a" {
		t.Fatalf("unexpected first source: %+v", sources[0])
	}
	if sources[1].Title != defaultSourceTitle {
		t.Fatalf("untitled source should fall back to %q, got %q", defaultSourceTitle, sources[1].Title)
	}
}

func TestExtractGroundingSourcesMissingMetadata(t *testing.T) {
	if got := extractGroundingSources(nil); got != nil {
		t.Fatalf("nil response should yield no sources, got %v", got)
	}
	if got := extractGroundingSources(&generateContentResponse{}); got != nil {
		t.Fatalf("empty response should yield no sources, got %v", got)
	}
	resp := &generateContentResponse{Candidates: []candidate{{}}}
	if got := extractGroundingSources(resp); got != nil {
		t.Fatalf("candidate without metadata should yield no sources, got %v", got)
	}
}

func TestExtractGroundingSourcesKeepsDuplicates(t *testing.T) {
	resp := &generateContentResponse{
		Candidates: []candidate{{
			GroundingMetadata: &groundingMetadata{
				GroundingChunks: []groundingChunk{
					{Web: &webSource{URI: "https://example.com", Title: "Same"}},
					{Web: &webSource{URI: "https://example.com", Title: "Same"}},
				},
			},
		}},
	}
	if got := extractGroundingSources(resp); len(got) != 2 {
		t.Fatalf("duplicates must be preserved, got %d sources", len(got))
	}
}

func TestExtractGroundingSourcesSkipsEmptyURIs(t *testing.T) {
	resp := &generateContentResponse{
		Candidates: []candidate{{
			GroundingMetadata: &groundingMetadata{
				GroundingChunks: []groundingChunk{
					{Web: &webSource{Title: "No link"}},
					{Web: &webSource{URI: "https://example.com", Title: "Linked"}},
				},
			},
		}},
	}
	got := extractGroundingSources(resp)
	if len(got) != 1 || got[0].Title != "Linked" {
		t.Fatalf("unexpected sources: %+v", got)
	}
}
