package reasoning

import (
	"context"

	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/llm"
)

const (
	translateTemperature = 0.2
	translateMaxTokens   = 400
)

var translationPrompts = map[language.Code]string{
	language.Hindi:   "Translate the user content into Hindi. Output plain text only. No markdown, no asterisks, no headings.",
	language.Punjabi: "Translate the user content into Punjabi (Gurmukhi script). Output plain text only. No markdown, no asterisks, no headings.",
	language.English: "Translate the user content into English. Output plain text only. No markdown, no asterisks, no headings.",
}

// ForceTranslate re-renders text in the session language when the model
// answered in the wrong script. The caller keeps the original on error.
func (c *Client) ForceTranslate(ctx context.Context, text string, lang language.Code) (string, error) {
	prompt, ok := translationPrompts[lang]
	if !ok {
		prompt = translationPrompts[language.English]
	}
	input := llm.Context{
		Messages:    llm.System(prompt, llm.User(text)),
		Temperature: translateTemperature,
		MaxTokens:   translateMaxTokens,
	}
	resp, _, err := c.generate(ctx, input)
	if err != nil {
		return "", err
	}
	return SanitizePlainText(resp.Text), nil
}
