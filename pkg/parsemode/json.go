package parsemode

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// RouteJSON is Route for callers holding an already-encoded payload: it
// stamps the parse mode directly into the raw JSON object and returns the
// rewritten bytes. The input slice is never modified.
//
// Semantics match Route exactly. Bytes that are not a JSON object pass
// through untouched, as does any substructure that is not the shape the
// method's rule expects.
func (r *Router) RouteJSON(method Method, raw []byte) []byte {
	if !r.Eligible(method) {
		return raw
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return raw
	}

	switch method {
	case MethodSendPoll:
		return r.routeJSONPoll(raw)
	case MethodAnswerInlineQuery:
		return r.routeJSONInlineQuery(raw)
	case MethodEditMessageMedia:
		return r.routeJSONMessageMedia(raw)
	case MethodSendMediaGroup:
		return r.routeJSONMediaGroup(raw)
	}
	return setJSON(raw, "parse_mode", r.mode.String())
}

func (r *Router) routeJSONPoll(raw []byte) []byte {
	if r.pollExplanation {
		raw = setJSON(raw, "explanation_parse_mode", r.mode.String())
	}
	if r.pollQuestion {
		raw = setJSON(raw, "question_parse_mode", r.mode.String())
	}
	return raw
}

func (r *Router) routeJSONInlineQuery(raw []byte) []byte {
	results := gjson.GetBytes(raw, "results")
	if !results.IsArray() {
		return raw
	}
	for i, result := range results.Array() {
		if !result.IsObject() {
			continue
		}
		prefix := "results." + strconv.Itoa(i)

		if _, ok := inlineResultTypes[result.Get("type").String()]; ok {
			raw = setJSON(raw, prefix+".parse_mode", r.mode.String())
		}
		if result.Get("input_message_content").IsObject() &&
			present(result.Get("input_message_content.message_text")) {
			raw = setJSON(raw, prefix+".input_message_content.parse_mode", r.mode.String())
		}
	}
	return raw
}

func (r *Router) routeJSONMessageMedia(raw []byte) []byte {
	if !gjson.GetBytes(raw, "media").IsObject() {
		return raw
	}
	if !present(gjson.GetBytes(raw, "media.caption")) {
		return raw
	}
	return setJSON(raw, "media.parse_mode", r.mode.String())
}

func (r *Router) routeJSONMediaGroup(raw []byte) []byte {
	items := gjson.GetBytes(raw, "media")
	if !items.IsArray() {
		return raw
	}
	for i, item := range items.Array() {
		if !item.IsObject() || !present(item.Get("caption")) {
			continue
		}
		raw = setJSON(raw, "media."+strconv.Itoa(i)+".parse_mode", r.mode.String())
	}
	return raw
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

// setJSON is a fail-open sjson.SetBytes: on error the input is returned
// unchanged so the call still goes out.
func setJSON(raw []byte, path, value string) []byte {
	out, err := sjson.SetBytes(raw, path, value)
	if err != nil {
		return raw
	}
	return out
}
