// Package parsemode stamps a Telegram Bot API formatting directive
// ("parse mode") into outgoing request payloads so callers do not have to
// repeat it on every call.
//
// The router operates on the decoded wire payload (a JSON object), below any
// typed SDK layer, because the field names it writes are the wire contract:
// parse_mode, explanation_parse_mode, question_parse_mode and friends must
// match the Bot API byte-for-byte.
package parsemode

// ParseMode is a Telegram rich-text formatting directive. Its value is the
// literal string written into payload fields.
type ParseMode string

const (
	Markdown   ParseMode = "Markdown"
	MarkdownV2 ParseMode = "MarkdownV2"
	HTML       ParseMode = "HTML"
)

// Valid reports whether p is one of the parse modes the Bot API accepts.
func (p ParseMode) Valid() bool {
	switch p {
	case Markdown, MarkdownV2, HTML:
		return true
	}
	return false
}

func (p ParseMode) String() string {
	return string(p)
}

// Method identifies one Bot API operation by its wire name.
type Method string

const (
	MethodSendMessage        Method = "sendMessage"
	MethodCopyMessage        Method = "copyMessage"
	MethodSendPhoto          Method = "sendPhoto"
	MethodSendAudio          Method = "sendAudio"
	MethodSendDocument       Method = "sendDocument"
	MethodSendVideo          Method = "sendVideo"
	MethodSendAnimation      Method = "sendAnimation"
	MethodSendVoice          Method = "sendVoice"
	MethodSendPoll           Method = "sendPoll"
	MethodSendMediaGroup     Method = "sendMediaGroup"
	MethodEditMessageText    Method = "editMessageText"
	MethodEditMessageCaption Method = "editMessageCaption"
	MethodEditMessageMedia   Method = "editMessageMedia"
	MethodAnswerInlineQuery  Method = "answerInlineQuery"
)

func (m Method) String() string {
	return string(m)
}

// DefaultAllowedMethods returns the methods eligible for injection when no
// explicit allow list is configured: every Bot API method whose payload
// carries at least one formatting-aware field.
func DefaultAllowedMethods() []Method {
	return []Method{
		MethodSendMessage,
		MethodCopyMessage,
		MethodSendPhoto,
		MethodSendAudio,
		MethodSendDocument,
		MethodSendVideo,
		MethodSendAnimation,
		MethodSendVoice,
		MethodSendPoll,
		MethodSendMediaGroup,
		MethodEditMessageText,
		MethodEditMessageCaption,
		MethodEditMessageMedia,
		MethodAnswerInlineQuery,
	}
}

// Payload is one outgoing request body: a decoded JSON object. Binary
// attachments travel on a separate side channel (see pipeline.Request.Files)
// and are never visible to the router.
type Payload map[string]any
