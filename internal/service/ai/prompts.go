package ai

import "boildown/internal/model"

// SystemPrompt is sent with every summarization request.
const SystemPrompt = "You are a helpful AI assistant that specializes in summarizing text. " +
	"Your summaries are concise, accurate, and capture the essence of the original text."

const (
	wordPromptPrefix     = "Summarize the following text into a single word that captures its essence:\n\n"
	sentencePromptPrefix = "Summarize the following text into a single, concise sentence:\n\n"
)

// GetSummarizePrompt returns the user prompt for text in the given mode.
// Anything other than word is treated as sentence.
func GetSummarizePrompt(text string, mode model.SummaryType) string {
	if mode == model.SummaryTypeWord {
		return wordPromptPrefix + text
	}
	return sentencePromptPrefix + text
}
