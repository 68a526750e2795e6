package parsemode

import "maps"

// Router applies a single parse mode to eligible outgoing payloads. It is
// immutable after construction, so one instance may serve any number of
// concurrent calls without locking.
type Router struct {
	mode            ParseMode
	allowed         map[Method]struct{}
	disallowed      map[Method]struct{}
	pollQuestion    bool
	pollExplanation bool
}

// Option configures a Router.
type Option func(*Router)

// WithAllowedMethods replaces the default allow list. Duplicates collapse;
// order carries no meaning.
func WithAllowedMethods(methods ...Method) Option {
	return func(r *Router) {
		r.allowed = methodSet(methods)
	}
}

// WithDisallowedMethods sets methods that are never touched, even when they
// also appear in the allow list.
func WithDisallowedMethods(methods ...Method) Option {
	return func(r *Router) {
		r.disallowed = methodSet(methods)
	}
}

// WithPollQuestion controls stamping of question_parse_mode on sendPoll.
// Enabled by default.
func WithPollQuestion(enabled bool) Option {
	return func(r *Router) { r.pollQuestion = enabled }
}

// WithPollExplanation controls stamping of explanation_parse_mode on
// sendPoll. Enabled by default.
func WithPollExplanation(enabled bool) Option {
	return func(r *Router) { r.pollExplanation = enabled }
}

// New creates a Router that stamps mode into every eligible payload.
func New(mode ParseMode, opts ...Option) *Router {
	r := &Router{
		mode:            mode,
		allowed:         methodSet(DefaultAllowedMethods()),
		disallowed:      map[Method]struct{}{},
		pollQuestion:    true,
		pollExplanation: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the configured parse mode.
func (r *Router) Mode() ParseMode {
	return r.mode
}

// Eligible reports whether payloads for method are subject to injection:
// the method must be on the allow list and not on the deny list. The deny
// list always wins.
func (r *Router) Eligible(method Method) bool {
	if _, ok := r.allowed[method]; !ok {
		return false
	}
	if _, ok := r.disallowed[method]; ok {
		return false
	}
	return true
}

// Route returns payload with the parse mode stamped into the fields that
// accept it for the given method. Ineligible methods pass through untouched.
//
// The input is never mutated: anything Route writes to is cloned first, and
// untouched substructure is shared with the input. Route is total over any
// payload shape; substructure that is not what the method's rule expects is
// simply skipped.
func (r *Router) Route(method Method, payload Payload) Payload {
	if payload == nil || !r.Eligible(method) {
		return payload
	}
	if rule, ok := rules[method]; ok {
		return rule(r, payload)
	}
	return r.applyDefault(payload)
}

// rules dispatches the methods whose payload shape deviates from the plain
// top-level parse_mode field. Everything else falls through to applyDefault.
var rules = map[Method]func(*Router, Payload) Payload{
	MethodSendPoll:          (*Router).applyPoll,
	MethodAnswerInlineQuery: (*Router).applyInlineQuery,
	MethodEditMessageMedia:  (*Router).applyMessageMedia,
	MethodSendMediaGroup:    (*Router).applyMediaGroup,
}

// applyDefault stamps the top-level parse_mode field.
func (r *Router) applyDefault(p Payload) Payload {
	out := maps.Clone(p)
	out["parse_mode"] = r.mode.String()
	return out
}

// applyPoll stamps the two poll-specific fields. Polls have no generic
// parse_mode field on the wire.
func (r *Router) applyPoll(p Payload) Payload {
	if !r.pollQuestion && !r.pollExplanation {
		return p
	}
	out := maps.Clone(p)
	if r.pollExplanation {
		out["explanation_parse_mode"] = r.mode.String()
	}
	if r.pollQuestion {
		out["question_parse_mode"] = r.mode.String()
	}
	return out
}

// inlineResultTypes are the inline query result types that carry a caption
// and therefore a parse_mode field of their own.
var inlineResultTypes = map[string]struct{}{
	"voice":     {},
	"audio":     {},
	"video":     {},
	"photo":     {},
	"mpeg4_gif": {},
	"gif":       {},
	"document":  {},
}

// applyInlineQuery walks the results array. Each result gets parse_mode when
// its type is caption-bearing, and its input_message_content gets parse_mode
// when a message_text is present. The two checks are independent and may
// both fire on the same result.
func (r *Router) applyInlineQuery(p Payload) Payload {
	results, ok := p["results"].([]any)
	if !ok {
		return p
	}

	mutated := false
	next := make([]any, len(results))
	copy(next, results)

	for i, item := range results {
		result, ok := item.(map[string]any)
		if !ok {
			continue
		}

		setOwn := false
		if typ, ok := result["type"].(string); ok {
			_, setOwn = inlineResultTypes[typ]
		}

		var content map[string]any
		if c, ok := result["input_message_content"].(map[string]any); ok {
			if text, ok := c["message_text"]; ok && text != nil {
				content = c
			}
		}

		if !setOwn && content == nil {
			continue
		}

		clone := maps.Clone(result)
		if setOwn {
			clone["parse_mode"] = r.mode.String()
		}
		if content != nil {
			nested := maps.Clone(content)
			nested["parse_mode"] = r.mode.String()
			clone["input_message_content"] = nested
		}
		next[i] = clone
		mutated = true
	}

	if !mutated {
		return p
	}
	out := maps.Clone(p)
	out["results"] = next
	return out
}

// applyMessageMedia stamps media.parse_mode, but only when the media object
// already carries a caption. Without a caption there is nothing for the
// directive to format, so the object is left alone.
func (r *Router) applyMessageMedia(p Payload) Payload {
	media, ok := p["media"].(map[string]any)
	if !ok {
		return p
	}
	if caption, ok := media["caption"]; !ok || caption == nil {
		return p
	}
	clone := maps.Clone(media)
	clone["parse_mode"] = r.mode.String()
	out := maps.Clone(p)
	out["media"] = clone
	return out
}

// applyMediaGroup stamps parse_mode on each media item that has a caption.
// Items without a caption are skipped individually, not all-or-nothing.
func (r *Router) applyMediaGroup(p Payload) Payload {
	items, ok := p["media"].([]any)
	if !ok {
		return p
	}

	mutated := false
	next := make([]any, len(items))
	copy(next, items)

	for i, item := range items {
		media, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if caption, ok := media["caption"]; !ok || caption == nil {
			continue
		}
		clone := maps.Clone(media)
		clone["parse_mode"] = r.mode.String()
		next[i] = clone
		mutated = true
	}

	if !mutated {
		return p
	}
	out := maps.Clone(p)
	out["media"] = next
	return out
}

func methodSet(methods []Method) map[Method]struct{} {
	set := make(map[Method]struct{}, len(methods))
	for _, m := range methods {
		set[m] = struct{}{}
	}
	return set
}
