package parsemode

import (
	"reflect"
	"testing"
)

func TestRoute_DefaultRule(t *testing.T) {
	r := New(HTML)

	got := r.Route(MethodSendMessage, Payload{"text": "hi"})
	want := Payload{"text": "hi", "parse_mode": "HTML"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("payload: got %v, want %v", got, want)
	}
}

func TestRoute_NotAllowed(t *testing.T) {
	r := New(HTML, WithAllowedMethods(MethodSendMessage))

	in := Payload{"question": "q?"}
	got := r.Route(MethodSendPoll, in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("expected pass-through, got %v", got)
	}
}

func TestRoute_DisallowedWins(t *testing.T) {
	r := New(HTML,
		WithAllowedMethods(MethodSendMessage, MethodSendPhoto),
		WithDisallowedMethods(MethodSendPhoto),
	)

	in := Payload{"caption": "c"}
	got := r.Route(MethodSendPhoto, in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("deny list must win over allow list, got %v", got)
	}
	if _, ok := got["parse_mode"]; ok {
		t.Error("parse_mode must not be set for a disallowed method")
	}
}

func TestRoute_AllowListCollapsesDuplicates(t *testing.T) {
	r := New(HTML, WithAllowedMethods(MethodSendMessage, MethodSendMessage))

	got := r.Route(MethodSendMessage, Payload{"text": "hi"})
	if got["parse_mode"] != "HTML" {
		t.Errorf("parse_mode: got %v, want HTML", got["parse_mode"])
	}
}

func TestRoute_InputNotMutated(t *testing.T) {
	r := New(MarkdownV2)

	in := Payload{"text": "hi"}
	r.Route(MethodSendMessage, in)
	if _, ok := in["parse_mode"]; ok {
		t.Error("input payload was mutated")
	}
}

func TestRoute_SendPoll(t *testing.T) {
	tests := []struct {
		name            string
		opts            []Option
		wantQuestion    bool
		wantExplanation bool
	}{
		{"both flags default on", nil, true, true},
		{"question off", []Option{WithPollQuestion(false)}, false, true},
		{"explanation off", []Option{WithPollExplanation(false)}, true, false},
		{"both off", []Option{WithPollQuestion(false), WithPollExplanation(false)}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(MarkdownV2, tt.opts...)
			got := r.Route(MethodSendPoll, Payload{"question": "q?"})

			if _, ok := got["parse_mode"]; ok {
				t.Error("sendPoll must never set the generic parse_mode field")
			}

			q, qOK := got["question_parse_mode"]
			if qOK != tt.wantQuestion {
				t.Errorf("question_parse_mode present=%v, want %v", qOK, tt.wantQuestion)
			}
			if qOK && q != "MarkdownV2" {
				t.Errorf("question_parse_mode: got %v", q)
			}

			e, eOK := got["explanation_parse_mode"]
			if eOK != tt.wantExplanation {
				t.Errorf("explanation_parse_mode present=%v, want %v", eOK, tt.wantExplanation)
			}
			if eOK && e != "MarkdownV2" {
				t.Errorf("explanation_parse_mode: got %v", e)
			}
		})
	}
}

func TestRoute_EditMessageMedia(t *testing.T) {
	r := New(HTML)

	t.Run("with caption", func(t *testing.T) {
		got := r.Route(MethodEditMessageMedia, Payload{
			"media": map[string]any{"type": "photo", "caption": "x"},
		})
		media := got["media"].(map[string]any)
		if media["parse_mode"] != "HTML" {
			t.Errorf("media.parse_mode: got %v, want HTML", media["parse_mode"])
		}
	})

	t.Run("without caption", func(t *testing.T) {
		got := r.Route(MethodEditMessageMedia, Payload{
			"media": map[string]any{"type": "photo"},
		})
		media := got["media"].(map[string]any)
		if _, ok := media["parse_mode"]; ok {
			t.Error("parse_mode must not be set without a caption")
		}
	})

	t.Run("null caption", func(t *testing.T) {
		got := r.Route(MethodEditMessageMedia, Payload{
			"media": map[string]any{"type": "photo", "caption": nil},
		})
		media := got["media"].(map[string]any)
		if _, ok := media["parse_mode"]; ok {
			t.Error("a null caption counts as absent")
		}
	})

	t.Run("media not an object", func(t *testing.T) {
		in := Payload{"media": "oops"}
		got := r.Route(MethodEditMessageMedia, in)
		if !reflect.DeepEqual(got, in) {
			t.Errorf("malformed media must pass through, got %v", got)
		}
	})
}

func TestRoute_SendMediaGroup(t *testing.T) {
	r := New(Markdown)

	got := r.Route(MethodSendMediaGroup, Payload{
		"media": []any{
			map[string]any{"type": "photo", "caption": "a"},
			map[string]any{"type": "photo"},
			map[string]any{"type": "video", "caption": "b"},
		},
	})

	items := got["media"].([]any)
	first := items[0].(map[string]any)
	if first["parse_mode"] != "Markdown" {
		t.Errorf("item 0 parse_mode: got %v", first["parse_mode"])
	}
	second := items[1].(map[string]any)
	if _, ok := second["parse_mode"]; ok {
		t.Error("captionless item 1 must be skipped")
	}
	third := items[2].(map[string]any)
	if third["parse_mode"] != "Markdown" {
		t.Errorf("item 2 parse_mode: got %v", third["parse_mode"])
	}
}

func TestRoute_AnswerInlineQuery(t *testing.T) {
	r := New(HTML)

	got := r.Route(MethodAnswerInlineQuery, Payload{
		"results": []any{
			map[string]any{"type": "photo"},
			map[string]any{"type": "sticker"},
			map[string]any{
				"type":                  "article",
				"input_message_content": map[string]any{"message_text": "hi"},
			},
			map[string]any{
				"type":                  "gif",
				"input_message_content": map[string]any{"message_text": "both"},
			},
		},
	})

	results := got["results"].([]any)

	photo := results[0].(map[string]any)
	if photo["parse_mode"] != "HTML" {
		t.Errorf("photo result parse_mode: got %v", photo["parse_mode"])
	}

	sticker := results[1].(map[string]any)
	if _, ok := sticker["parse_mode"]; ok {
		t.Error("sticker result must not get parse_mode")
	}

	article := results[2].(map[string]any)
	if _, ok := article["parse_mode"]; ok {
		t.Error("article result must not get its own parse_mode")
	}
	content := article["input_message_content"].(map[string]any)
	if content["parse_mode"] != "HTML" {
		t.Errorf("article input_message_content.parse_mode: got %v", content["parse_mode"])
	}

	// Both checks fire independently on the same result.
	gif := results[3].(map[string]any)
	if gif["parse_mode"] != "HTML" {
		t.Errorf("gif result parse_mode: got %v", gif["parse_mode"])
	}
	gifContent := gif["input_message_content"].(map[string]any)
	if gifContent["parse_mode"] != "HTML" {
		t.Errorf("gif input_message_content.parse_mode: got %v", gifContent["parse_mode"])
	}
}

func TestRoute_AnswerInlineQuery_NoMessageText(t *testing.T) {
	r := New(HTML)

	got := r.Route(MethodAnswerInlineQuery, Payload{
		"results": []any{
			map[string]any{
				"type":                  "article",
				"input_message_content": map[string]any{"latitude": 1.5},
			},
		},
	})

	content := got["results"].([]any)[0].(map[string]any)["input_message_content"].(map[string]any)
	if _, ok := content["parse_mode"]; ok {
		t.Error("input_message_content without message_text must be left alone")
	}
}

func TestRoute_Idempotent(t *testing.T) {
	r := New(HTML)

	once := r.Route(MethodSendMessage, Payload{"text": "hi"})
	twice := r.Route(MethodSendMessage, once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed the payload: %v vs %v", once, twice)
	}
}

func TestRoute_NilPayload(t *testing.T) {
	r := New(HTML)
	if got := r.Route(MethodSendMessage, nil); got != nil {
		t.Errorf("nil payload must pass through, got %v", got)
	}
}

func TestEligible(t *testing.T) {
	r := New(HTML, WithDisallowedMethods(MethodSendVoice))

	if !r.Eligible(MethodSendMessage) {
		t.Error("sendMessage should be eligible by default")
	}
	if r.Eligible(MethodSendVoice) {
		t.Error("sendVoice is disallowed")
	}
	if r.Eligible(Method("getMe")) {
		t.Error("methods outside the allow list are not eligible")
	}
}

func TestParseModeValid(t *testing.T) {
	for _, mode := range []ParseMode{Markdown, MarkdownV2, HTML} {
		if !mode.Valid() {
			t.Errorf("%s should be valid", mode)
		}
	}
	if ParseMode("BBCode").Valid() {
		t.Error("unknown mode should be invalid")
	}
}
