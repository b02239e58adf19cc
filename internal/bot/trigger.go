package bot

import "strings"

// Trigger decides whether an inbound event addresses the bot and extracts the
// effective prompt from it.
type Trigger struct {
	// Wake is the case-insensitive wake phrase, e.g. "hello lain".
	Wake string

	// DefaultPrompt is substituted when the stripped prompt is empty.
	DefaultPrompt string
}

// TriggerResult is the outcome of resolving one event.
type TriggerResult struct {
	Addressed bool
	Prompt    string
	ImageURL  string
}

// Resolve inspects an event and extracts the prompt. The bot is addressed
// when it appears in the mention list or the content contains the wake phrase
// as a case-insensitive substring. Events authored by the bot itself are
// never addressed.
func (t Trigger) Resolve(ev Event) TriggerResult {
	if ev.AuthorID == ev.SelfID {
		return TriggerResult{}
	}

	wake := strings.ToLower(t.Wake)
	if !ev.Mentioned && !strings.Contains(strings.ToLower(ev.Content), wake) {
		return TriggerResult{}
	}

	// Strip both mention token forms, then the first occurrence of the wake
	// phrase, then trim.
	prompt := ev.Content
	prompt = strings.ReplaceAll(prompt, "<@!"+ev.SelfID+">", "")
	prompt = strings.ReplaceAll(prompt, "<@"+ev.SelfID+">", "")
	prompt = strings.TrimSpace(stripFirstFold(prompt, wake))

	if prompt == "" {
		prompt = t.DefaultPrompt
	}

	res := TriggerResult{
		Addressed: true,
		Prompt:    prompt,
	}
	if len(ev.Attachments) > 0 {
		res.ImageURL = ev.Attachments[0].URL
	}
	return res
}

// stripFirstFold removes the first case-insensitive occurrence of phrase
// from s. Matching walks rune windows with EqualFold; byte offsets into a
// lowered copy would skew for runes whose encoding changes length under
// case folding.
func stripFirstFold(s, phrase string) string {
	if phrase == "" {
		return s
	}

	runes := []rune(s)
	width := len([]rune(phrase))
	for i := 0; i+width <= len(runes); i++ {
		if strings.EqualFold(string(runes[i:i+width]), phrase) {
			return string(runes[:i]) + string(runes[i+width:])
		}
	}
	return s
}
