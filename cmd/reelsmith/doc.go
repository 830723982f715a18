// Command reelsmith is the CLI for planning and producing faceless-channel
// video content: niche analysis, strategy plans, concepts, hooks, scripts,
// storyboards, and voiceover/image/video assets.
package main
