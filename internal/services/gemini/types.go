package gemini

// CallDescriptor assembles everything one remote call needs: the prompt, the
// editorial system instruction, the expected response shape, and tool/media
// flags. Descriptors are built once per logical operation and treated as
// immutable afterwards.
type CallDescriptor struct {
	// Operation labels the logical operation for logs and error messages.
	Operation string
	Model     string
	Prompt    string
	System    string
	// Shape constrains the response structure when non-nil. Responses are
	// still routed through the self-healing decoder.
	Shape *Schema
	// WebGrounding enables the web-search tool; grounded responses may carry
	// citation metadata.
	WebGrounding bool
	// Modalities requests non-text output (e.g. AUDIO for voiceover synthesis).
	Modalities []string
	// Voice selects the prebuilt voice for audio synthesis.
	Voice string
	// AspectRatio applies to image and video generation.
	AspectRatio string
	// ThinkingBudget bounds reasoning depth; zero leaves the model default.
	ThinkingBudget int
}

// Result is the decoded outcome of a successful call. Ownership transfers to
// the caller; the raw response envelope is discarded after extraction.
type Result struct {
	Text    string
	Sources []GroundingSource
	Media   []MediaPart
}

// MediaPart holds one inline binary payload from a response.
type MediaPart struct {
	MimeType string
	Data     []byte
}

// GroundingSource links generated content to a supporting web source.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Request/response envelope DTOs for the generative language REST API. Only
// the fields Reelsmith consumes are modelled; unknown envelope sections are
// ignored during decoding.

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []tool            `json:"tools,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType   string          `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema         `json:"responseSchema,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
	ThinkingConfig     *thinkingConfig `json:"thinkingConfig,omitempty"`
	SpeechConfig       *speechConfig   `json:"speechConfig,omitempty"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type tool struct {
	GoogleSearch *googleSearch `json:"google_search,omitempty"`
}

type googleSearch struct{}

type generateContentResponse struct {
	Candidates []candidate   `json:"candidates"`
	Error      *apiErrorBody `json:"error,omitempty"`
}

type candidate struct {
	Content           content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata,omitempty"`
}

type groundingMetadata struct {
	GroundingChunks  []groundingChunk `json:"groundingChunks"`
	WebSearchQueries []string         `json:"webSearchQueries,omitempty"`
}

// groundingChunk is a tagged union: exactly one of the pointer fields is set
// depending on the citation kind. Only web citations are consumed.
type groundingChunk struct {
	Web              *webSource        `json:"web,omitempty"`
	RetrievedContext *retrievedContext `json:"retrievedContext,omitempty"`
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

type retrievedContext struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

type apiErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Long-running operation DTOs used by video generation.

type predictRequest struct {
	Instances  []predictInstance  `json:"instances"`
	Parameters *predictParameters `json:"parameters,omitempty"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type operationHandle struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Error    *apiErrorBody      `json:"error,omitempty"`
	Response *videoOperationRes `json:"response,omitempty"`
}

type videoOperationRes struct {
	GeneratedVideos []generatedVideo `json:"generatedVideos"`
}

type generatedVideo struct {
	Video *videoRef `json:"video,omitempty"`
}

type videoRef struct {
	URI string `json:"uri,omitempty"`
}
