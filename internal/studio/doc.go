// Package studio exposes the typed content operations behind the reelsmith
// CLI: niche analysis, strategy planning, concept and hook ideation, script
// writing, storyboarding, and media production. Each operation builds a fixed
// request contract, hands it to the generative client, and decodes the
// response into domain types.
package studio
