package interview

import (
	"context"
	"log"
	"strings"

	"github.com/askasha/asha-agent/internal/llm"
	"github.com/askasha/asha-agent/internal/prompts"
	"github.com/askasha/asha-agent/internal/types"
)

// maxQuestions is how many interview questions are asked before the
// session moves to its concluding stage.
const maxQuestions = 5

// Scripted prompts for the setup stages.
const (
	askRoleText       = "Welcome to your mock interview! What role would you like to practice for?"
	askExperienceText = "Got it. How many years of experience do you have in this area?"
	askSkillsText     = "Thanks! Which skills would you like the interview to focus on? List a few, separated by commas."
)

// fallbackQuestion is asked when question generation fails mid-interview.
const fallbackQuestion = "Tell me about a challenging problem you solved recently and how you approached it."

// fallbackFeedback stands in when feedback generation fails.
const fallbackFeedback = "Thanks for completing the interview! You communicated your experience clearly. Keep practicing concrete examples with measurable outcomes, and you'll keep improving."

// Conductor advances interview sessions. All model failures degrade to
// fixed text, so every call produces a usable reply.
type Conductor struct {
	client llm.Client
	store  *Store
}

// NewConductor creates a conductor over the given store.
func NewConductor(client llm.Client, store *Store) *Conductor {
	return &Conductor{client: client, store: store}
}

// Start creates a session and returns it with the opening prompt.
func (c *Conductor) Start() (*Session, string) {
	return c.store.Create(), askRoleText
}

// Send processes one candidate message for the session and returns the
// interviewer's reply. done reports that the session concluded and was
// removed from the store.
func (c *Conductor) Send(ctx context.Context, sessionID, message string) (reply string, done bool, err error) {
	session, err := c.store.Get(sessionID)
	if err != nil {
		return "", false, err
	}

	switch session.Stage {
	case StageAskRole:
		session.Role = strings.TrimSpace(message)
		session.Stage = StageAskExperience
		return askExperienceText, false, nil

	case StageAskExperience:
		session.Experience = strings.TrimSpace(message)
		session.Stage = StageAskSkills
		return askSkillsText, false, nil

	case StageAskSkills:
		session.Skills = strings.TrimSpace(message)
		session.Stage = StageStartInterview
		question := c.nextQuestion(ctx, session, "")
		session.QuestionsAsked++
		session.Stage = StageInterviewing
		return question, false, nil

	case StageInterviewing:
		question := c.nextQuestion(ctx, session, message)
		session.Transcript = append(session.Transcript, types.ConversationTurn{
			UserMessage:   message,
			AssistantText: question,
		})
		session.QuestionsAsked++
		if session.QuestionsAsked >= maxQuestions {
			session.Stage = StageConcluding
		}
		return question, false, nil

	default: // StageConcluding
		session.Transcript = append(session.Transcript, types.ConversationTurn{UserMessage: message})
		feedback := c.feedback(ctx, session)
		c.store.Delete(session.ID)
		return feedback, true, nil
	}
}

// End concludes a session early, returning feedback on whatever transcript
// exists, and removes it from the store.
func (c *Conductor) End(ctx context.Context, sessionID string) (string, error) {
	session, err := c.store.Get(sessionID)
	if err != nil {
		return "", err
	}
	feedback := c.feedback(ctx, session)
	c.store.Delete(session.ID)
	return feedback, nil
}

func (c *Conductor) nextQuestion(ctx context.Context, session *Session, lastAnswer string) string {
	systemPrompt := prompts.Format(prompts.MustGet("agent.json", "interview-conduct"), map[string]string{
		"Role":       session.Role,
		"Experience": session.Experience,
		"Skills":     session.Skills,
	})

	messages := []llm.Message{llm.System(systemPrompt)}
	for _, turn := range session.Transcript {
		if turn.AssistantText != "" {
			messages = append(messages, llm.Assistant(turn.AssistantText))
		}
		if turn.UserMessage != "" {
			messages = append(messages, llm.User(turn.UserMessage))
		}
	}
	if lastAnswer != "" {
		messages = append(messages, llm.User(lastAnswer))
	} else {
		messages = append(messages, llm.User("Please ask your first question."))
	}

	question, err := c.client.Complete(ctx, messages, llm.TierStandard)
	if err != nil {
		log.Printf("interview: question generation failed for session %s: %v", session.ID, err)
		return fallbackQuestion
	}
	return strings.TrimSpace(question)
}

func (c *Conductor) feedback(ctx context.Context, session *Session) string {
	systemPrompt := prompts.Format(prompts.MustGet("agent.json", "interview-feedback"), map[string]string{
		"Role":       session.Role,
		"Experience": session.Experience,
		"Skills":     session.Skills,
	})

	var sb strings.Builder
	for _, turn := range session.Transcript {
		if turn.AssistantText != "" {
			sb.WriteString("Interviewer: " + turn.AssistantText + "\n")
		}
		if turn.UserMessage != "" {
			sb.WriteString("Candidate: " + turn.UserMessage + "\n")
		}
	}

	feedback, err := c.client.Complete(ctx, []llm.Message{
		llm.System(systemPrompt),
		llm.User("Interview transcript:\n" + sb.String()),
	}, llm.TierStandard)
	if err != nil {
		log.Printf("interview: feedback generation failed for session %s: %v", session.ID, err)
		return fallbackFeedback
	}
	return strings.TrimSpace(feedback)
}
