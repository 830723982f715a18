package gemini

const defaultSourceTitle = "Reference"

// extractGroundingSources pulls web citation metadata out of a response
// envelope. Missing metadata yields an empty list, never an error. Non-web
// citation kinds are discarded; order of first mention is preserved and
// duplicates are not collapsed. URIs pass through unvalidated.
func extractGroundingSources(resp *generateContentResponse) []GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}
	var sources []GroundingSource
	for _, chunk := range metadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = defaultSourceTitle
		}
		sources = append(sources, GroundingSource{Title: title, URI: chunk.Web.URI})
	}
	return sources
}
