// Package gemini implements the classifier on Google's Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// classifierPrompt carries the XML contract the intent parser decodes.
// Changing the envelope here means changing the parser too.
const classifierPrompt = `You are a system that determines user intent for fitness data.
Classify messages into one of four intents: 'query', 'log', 'set_goal' or 'check_goals'.

For 'log', classify whether each metric is **set** or **incremented**.
- If the user says "set sleep score to 85 and add 50 pushups", return:
  - <Pushups value="50" increment="true" />
  - <SleepScore value="85" increment="false" />
Provide the output in XML format:
<response>
    <intent>log</intent>
    <details>
        <date>today</date>
        <metrics>
            <Pushups value="50" increment="true" />
            <Steps value="1000" increment="true" />
            <SleepScore value="85" increment="false" />
        </metrics>
    </details>
</response>
Valid metric tags are Pushups, Steps, SleepScore, SleepDuration and WorkedOut.

For 'query':
<response>
    <intent>query</intent>
    <details>
        <metric>Sleep Score</metric>
        <date>yesterday</date>
    </details>
</response>

For 'set_goal' (the user wants a daily target for a metric):
<response>
    <intent>set_goal</intent>
    <details>
        <metric>Steps</metric>
        <target>10000</target>
    </details>
</response>

For 'check_goals' (the user asks about progress; timeframe is one of today, week, month):
<response>
    <intent>check_goals</intent>
    <details>
        <timeframe>week</timeframe>
    </details>
</response>

Always return a valid XML response.
Dates are either 'today', 'yesterday' or M/D/YYYY.
For sleep duration, always return it in the format HH:MM:SS.
For workout status, return 'Y' if the user worked out and 'N' otherwise.
Classify this message: '%s'`

// Classifier sends user messages to Gemini and returns the raw model
// output for the intent parser to decode.
type Classifier struct {
	client *genai.Client
	model  string
}

func NewClassifier(ctx context.Context, apiKey, model string) (*Classifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Classifier{client: client, model: model}, nil
}

func (c *Classifier) Classify(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(classifierPrompt, message)
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}
	return text, nil
}
